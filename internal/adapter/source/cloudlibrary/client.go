package cloudlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cloudlibrary/cloudlib/internal/domain"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	defaultTimeout = 30 * time.Second
	maxRetries     = 3
	baseRetryDelay = 500 * time.Millisecond
	maxRetryDelay  = 2 * time.Second
	maxBodyBytes   = 10 << 20
)

// Client talks to the CloudLibrary REST API.
// It implements domain.BookLister, domain.Authenticator and domain.RatingReader.
type Client struct {
	baseURL string
	http    *retryablehttp.Client // idempotent requests: retried on 5xx / network errors
	once    *retryablehttp.Client // non-idempotent requests: never retried
	logger  *slog.Logger
}

// NewClient creates a new CloudLibrary API client
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    newRetryClient(timeout, maxRetries, logger),
		once:    newRetryClient(timeout, 0, logger),
		logger:  logger,
	}
}

func newRetryClient(timeout time.Duration, retries int, logger *slog.Logger) *retryablehttp.Client {
	rc := retryablehttp.NewClient()
	rc.HTTPClient.Timeout = timeout
	rc.RetryMax = retries
	rc.RetryWaitMin = baseRetryDelay
	rc.RetryWaitMax = maxRetryDelay
	// Hand the final response back so status codes can be mapped to domain errors
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	// *slog.Logger satisfies retryablehttp.LeveledLogger; the default writes to stderr
	rc.Logger = logger
	return rc
}

// ListBooks returns the whole catalog (GET /api/books)
func (c *Client) ListBooks(ctx context.Context) ([]domain.Book, error) {
	body, err := c.doRequest(ctx, c.http, http.MethodGet, "/api/books", nil, "")
	if err != nil {
		return nil, err
	}

	var dtos []BookDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, fmt.Errorf("failed to parse books response: %w", err)
	}
	return MapBooks(dtos), nil
}

// doRequest performs a request and returns the body of a 2xx response.
// Network failures map to ErrServerOffline, other non-2xx statuses to
// ErrUnexpectedStatus.
func (c *Client) doRequest(
	ctx context.Context,
	client *retryablehttp.Client,
	method, path string,
	body interface{},
	contentType string,
) ([]byte, error) {
	reqURL := c.baseURL + path

	req, err := retryablehttp.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.logger.Debug("cloudlibrary request", "method", method, "path", path, "requestID", requestID)

	resp, err := client.Do(req)
	if ctx.Err() != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, ctx.Err()
	}
	if err != nil && resp == nil {
		c.logger.Error("cloudlibrary request failed", "error", err, "path", path, "requestID", requestID)
		return nil, fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("cloudlibrary request error",
			"status", resp.StatusCode,
			"body", string(respBody),
			"method", method,
			"path", path,
			"requestID", requestID,
		)
		return respBody, &StatusError{Method: method, Path: path, Code: resp.StatusCode}
	}

	return respBody, nil
}

// StatusError reports a non-2xx response. It matches domain.ErrUnexpectedStatus.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s returned %d %s", e.Method, e.Path, e.Code, http.StatusText(e.Code))
}

// Is lets errors.Is(err, domain.ErrUnexpectedStatus) match any StatusError
func (e *StatusError) Is(target error) bool {
	return target == domain.ErrUnexpectedStatus
}

func formBody(values url.Values) []byte {
	return []byte(values.Encode())
}
