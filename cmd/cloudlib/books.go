package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/cloudlibrary/cloudlib/internal/catalog"
	"github.com/cloudlibrary/cloudlib/internal/domain"
	"github.com/cloudlibrary/cloudlib/internal/tui/styles"
	"github.com/spf13/cobra"
)

func booksCmd(configDir *string) *cobra.Command {
	var (
		search  string
		authors bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "books",
		Short: "List the catalog",
		Long: `List every book in the catalog, or only those whose title contains
the --search text (case-insensitive). Output keeps the server's order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(*configDir)
			if err != nil {
				return err
			}
			defer a.Close()

			if !a.cfg.IsConfigured() {
				return fmt.Errorf("server.url is not set; run cloudlib once interactively or set CLOUDLIB_SERVER_URL")
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, cancel := context.WithTimeout(ctx, a.cfg.Server.Timeout)
			defer cancel()

			client, err := a.client()
			if err != nil {
				return err
			}
			svc := catalog.NewService(client, a.logger)
			books, err := svc.ListBooks(ctx)
			if err != nil {
				return fmt.Errorf("failed to list books: %w", err)
			}

			opts := catalog.FilterOptions{MatchAuthor: authors || a.cfg.UI.SearchAuthors}
			visible := catalog.Filter(books, search, opts)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(visible)
			}

			if len(visible) == 0 {
				if search == "" {
					fmt.Fprintln(out, "No books available.")
					return nil
				}
				fmt.Fprintf(out, "No books match %q.\n", search)
				if suggestions := catalog.Suggest(books, search, 3); len(suggestions) > 0 {
					fmt.Fprintln(out, "Did you mean:")
					for _, s := range suggestions {
						fmt.Fprintf(out, "  %s\n", s)
					}
				}
				return nil
			}

			fmt.Fprintln(out, renderBookTable(visible))
			fmt.Fprintf(out, "%d of %d books\n", len(visible), len(books))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "only list books whose title contains this text")
	cmd.Flags().BoolVar(&authors, "authors", false, "also match --search against authors")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	return cmd
}

func renderBookTable(books []domain.Book) string {
	headerStyle := lipgloss.NewStyle().Foreground(styles.Teal).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	dimStyle := cellStyle.Foreground(styles.DimGray)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.DimGray)).
		Headers("ID", "TITLE", "AUTHOR", "CATEGORY").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0 || col == 3:
				return dimStyle
			default:
				return cellStyle
			}
		})

	for _, b := range books {
		t.Row(strconv.FormatInt(b.ID, 10), b.Title, b.DisplayAuthor(), b.CategoryName())
	}
	return t.Render()
}
