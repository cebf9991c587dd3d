package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cloudlibrary/cloudlib/internal/adapter"
	"github.com/cloudlibrary/cloudlib/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const booksJSON = `[
	{"id": 1, "title": "Clean Code", "author": "Robert C. Martin", "category": {"id": 1, "name": "Software"}},
	{"id": 2, "title": "The Pragmatic Programmer", "author": "Andrew Hunt"},
	{"id": 3, "title": "Refactoring", "author": "Martin Fowler"}
]`

func catalogServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/books" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, booksJSON)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// execute runs the CLI with an isolated config directory and log file
func execute(t *testing.T, serverURL string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CLOUDLIB_SERVER_URL", serverURL)
	t.Setenv("CLOUDLIB_LOGGING_FILE", filepath.Join(dir, "cloudlib.log"))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", dir}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestBooksCommand(t *testing.T) {
	srv := catalogServer(t)

	out, err := execute(t, srv.URL, "books")
	require.NoError(t, err)
	assert.Contains(t, out, "Clean Code")
	assert.Contains(t, out, "The Pragmatic Programmer")
	assert.Contains(t, out, "Refactoring")
	assert.Contains(t, out, "3 of 3 books")

	// Server order is preserved
	assert.Less(t, strings.Index(out, "Clean Code"), strings.Index(out, "Refactoring"))
}

func TestBooksCommandSearch(t *testing.T) {
	srv := catalogServer(t)

	out, err := execute(t, srv.URL, "books", "--search", "CLEAN")
	require.NoError(t, err)
	assert.Contains(t, out, "Clean Code")
	assert.NotContains(t, out, "Refactoring")
	assert.Contains(t, out, "1 of 3 books")

	out, err = execute(t, srv.URL, "books", "--search", "fowler", "--authors")
	require.NoError(t, err)
	assert.Contains(t, out, "Refactoring")
	assert.Contains(t, out, "1 of 3 books")
}

func TestBooksCommandNoMatches(t *testing.T) {
	srv := catalogServer(t)

	out, err := execute(t, srv.URL, "books", "--search", "refactorng")
	require.NoError(t, err)
	assert.Contains(t, out, `No books match "refactorng"`)
	assert.Contains(t, out, "Did you mean:")
	assert.Contains(t, out, "Refactoring")
}

func TestBooksCommandJSON(t *testing.T) {
	srv := catalogServer(t)

	out, err := execute(t, srv.URL, "books", "--json", "-s", "pragmatic")
	require.NoError(t, err)

	var books []domain.Book
	require.NoError(t, json.Unmarshal([]byte(out), &books))
	require.Len(t, books, 1)
	assert.Equal(t, int64(2), books[0].ID)
}

func TestBooksCommandRequiresServer(t *testing.T) {
	_, err := execute(t, "", "books")
	assert.ErrorContains(t, err, "server.url is not set")
}

func TestBooksCommandServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := execute(t, srv.URL, "books")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrServerOffline)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestSetupFlowSavesServer(t *testing.T) {
	srv := catalogServer(t)
	dir := t.TempDir()

	loader := adapter.NewLoader(dir)
	cfg := adapter.DefaultConfig()
	a := &app{cfg: cfg, loader: loader, logger: adapter.NullLogger(), closer: io.NopCloser(nil)}

	in := strings.NewReader("\nnot a url\n" + srv.URL + "/\n")
	var out bytes.Buffer
	require.NoError(t, runSetupFlow(context.Background(), in, &out, a))

	assert.Contains(t, out.String(), "Server URL cannot be empty")
	assert.Contains(t, out.String(), "3 books in the catalog")
	assert.Equal(t, srv.URL, cfg.Server.URL)

	saved, err := adapter.NewLoader(dir).LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, srv.URL, saved.Server.URL)
}
