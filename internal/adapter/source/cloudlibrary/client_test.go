package cloudlibrary

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cloudlibrary/cloudlib/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const booksJSON = `[
	{"id": 1, "title": "Clean Code", "author": "Robert C. Martin", "description": "Craftsmanship",
	 "category": {"id": 3, "name": "Software"}, "posts": [], "ratings": []},
	{"id": 2, "title": "Cien años de soledad", "author": "Gabriel García Márquez", "category": null}
]`

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL+"/", time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	c.http.RetryWaitMin = time.Millisecond
	c.http.RetryWaitMax = 5 * time.Millisecond
	return c
}

func TestListBooks(t *testing.T) {
	var requestID string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/books", r.URL.Path)
		requestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, booksJSON)
	})

	books, err := c.ListBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 2)

	assert.Equal(t, "Clean Code", books[0].Title)
	assert.Equal(t, "Software", books[0].CategoryName())
	assert.Equal(t, "Cien años de soledad", books[1].Title)
	assert.Nil(t, books[1].Category)
	assert.NotEmpty(t, requestID)
}

func TestListBooksEmpty(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})

	books, err := c.ListBooks(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestListBooksRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, booksJSON)
	})

	books, err := c.ListBooks(context.Background())
	require.NoError(t, err)
	assert.Len(t, books, 2)
	assert.Equal(t, int32(3), calls.Load())
}

func TestListBooksErrors(t *testing.T) {
	t.Run("unexpected status", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := c.ListBooks(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnexpectedStatus)

		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusNotFound, se.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"not": "an array"}`)
		})

		_, err := c.ListBooks(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse books response")
	})

	t.Run("server offline", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		c := NewClient(url, time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
		c.http.RetryMax = 0

		_, err := c.ListBooks(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrServerOffline)
	})

	t.Run("cancelled context", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, booksJSON)
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.ListBooks(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "accepted", status: http.StatusOK, body: "true"},
		{name: "rejected", status: http.StatusOK, body: "false", wantErr: domain.ErrAuthFailed},
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: domain.ErrAuthFailed},
		{name: "server error", status: http.StatusInternalServerError, wantErr: domain.ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/users/login", r.URL.Path)
				assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
				assert.NoError(t, r.ParseForm())
				assert.Equal(t, "ana@example.com", r.PostForm.Get("email"))
				assert.Equal(t, "s3cret!", r.PostForm.Get("password"))

				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			user, err := c.Login(context.Background(), domain.Credentials{
				Email:    "ana@example.com",
				Password: "s3cret!",
			})
			// Login is never retried
			assert.Equal(t, int32(1), calls.Load())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ana@example.com", user.Email)
		})
	}
}

func TestRegister(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/users/register", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var in UserDTO
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, "Ana", in.Name)
			assert.Equal(t, "pa55word", in.Password)

			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(UserDTO{ID: 7, Name: in.Name, Email: in.Email, Password: in.Password})
		})

		user, err := c.Register(context.Background(), domain.Registration{
			Name:     "Ana",
			Email:    "ana@example.com",
			Password: "pa55word",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.User{ID: 7, Name: "Ana", Email: "ana@example.com"}, user)
	})

	t.Run("conflict", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
		})

		_, err := c.Register(context.Background(), domain.Registration{
			Name:     "Ana",
			Email:    "ana@example.com",
			Password: "pa55word",
		})
		assert.ErrorIs(t, err, domain.ErrUserExists)
	})
}

func TestProbe(t *testing.T) {
	t.Run("cloudlibrary server", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, booksJSON)
		}))
		defer srv.Close()

		n, err := Probe(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("some other server", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "<html></html>")
		}))
		defer srv.Close()

		_, err := Probe(context.Background(), srv.URL)
		assert.ErrorContains(t, err, "not a CloudLibrary server")
	})
}

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    float64
		wantErr error
	}{
		{name: "rated", status: http.StatusOK, body: `4.5`, want: 4.5},
		{name: "unrated", status: http.StatusOK, body: `0.0`, want: 0},
		{name: "null average", status: http.StatusOK, body: `null`, want: 0},
		{name: "unknown book", status: http.StatusNotFound, wantErr: domain.ErrUnexpectedStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/api/books/7/average-rating", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			got, err := c.AverageRating(context.Background(), 7)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				var statusErr *StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, http.StatusNotFound, statusErr.Code)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestAverageRatingMalformed(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"average": 4}`)
	})

	_, err := c.AverageRating(context.Background(), 1)
	assert.ErrorContains(t, err, "failed to parse rating response")
}
