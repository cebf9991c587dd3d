package cloudlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const probeTimeout = 10 * time.Second

// Probe checks that serverURL hosts a CloudLibrary backend by requesting
// the (public) book listing and checking it decodes as a JSON array.
// Returns the number of books on success.
func Probe(ctx context.Context, serverURL string) (int, error) {
	serverURL = strings.TrimRight(serverURL, "/")

	client := &http.Client{Timeout: probeTimeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, serverURL+"/api/books", nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}

	var books []json.RawMessage
	if err := json.Unmarshal(body, &books); err != nil {
		return 0, fmt.Errorf("not a CloudLibrary server: %w", err)
	}
	return len(books), nil
}
