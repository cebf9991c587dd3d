package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/cloudlibrary/cloudlib/internal/adapter"
	"github.com/cloudlibrary/cloudlib/internal/adapter/source/cloudlibrary"
	"github.com/cloudlibrary/cloudlib/internal/tui/styles"
)

const probeTimeout = 15 * time.Second

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                        \r"

// runSetupFlow asks for the server URL, checks it answers like a
// CloudLibrary backend, and saves it
func runSetupFlow(ctx context.Context, in io.Reader, out io.Writer, a *app) error {
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.HeadlineStyle.Render("Welcome to CloudLibrary!"))
	fmt.Fprintln(out)

	reader := bufio.NewReader(in)
	var serverURL string

	// Loop until we get a reachable server
	for {
		fmt.Fprint(out, "Enter your CloudLibrary server URL (e.g., http://localhost:8080): ")
		input, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && input != "") {
			return fmt.Errorf("failed to read input: %w", err)
		}
		serverURL = strings.TrimRight(strings.TrimSpace(input), "/")

		if serverURL == "" {
			fmt.Fprintln(out, "Server URL cannot be empty. Please try again.")
			continue
		}
		if err := adapter.ValidateServerURL(serverURL); err != nil {
			fmt.Fprintf(out, "%s\n", styles.ErrorStyle.Render("✗ "+err.Error()))
			continue
		}

		fmt.Fprintln(out)
		count, err := probeWithSpinner(ctx, out, serverURL)
		if err != nil {
			a.logger.Warn("server probe failed", "url", serverURL, "error", err)
			fmt.Fprintf(out, "%s\n", styles.ErrorStyle.Render("✗ Could not reach a CloudLibrary server: "+err.Error()))
			fmt.Fprintln(out, "Please check the URL and try again.")
			fmt.Fprintln(out)
			continue
		}

		fmt.Fprintf(out, "%s\n", styles.SuccessStyle.Render(fmt.Sprintf("✓ Connected: %d books in the catalog", count)))
		break
	}

	a.cfg.Server.URL = serverURL
	if err := a.loader.SaveConfig(a.cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	a.logger.Info("configuration saved", "dir", a.loader.Dir(), "server", serverURL)

	fmt.Fprintln(out, styles.SuccessStyle.Render("✓ Configuration saved!"))
	fmt.Fprintln(out)
	return nil
}

// probeWithSpinner probes the server while drawing a spinner
func probeWithSpinner(ctx context.Context, out io.Writer, serverURL string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	type result struct {
		count int
		err   error
	}
	resultCh := make(chan result, 1)

	go func() {
		count, err := cloudlibrary.Probe(ctx, serverURL)
		resultCh <- result{count, err}
	}()

	frames := spinner.MiniDot.Frames
	frame := 0
	fmt.Fprintf(out, "\r%s Contacting server...", styles.SpinnerStyle.Render(frames[frame]))

	ticker := time.NewTicker(spinner.MiniDot.FPS)
	defer ticker.Stop()

	for {
		select {
		case res := <-resultCh:
			fmt.Fprint(out, clearSpinnerLine)
			return res.count, res.err

		case <-ticker.C:
			frame++
			fmt.Fprintf(out, "\r%s Contacting server...", styles.SpinnerStyle.Render(frames[frame%len(frames)]))

		case <-ctx.Done():
			fmt.Fprint(out, clearSpinnerLine)
			return 0, fmt.Errorf("timed out after %s", probeTimeout)
		}
	}
}
