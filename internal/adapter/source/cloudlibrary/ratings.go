package cloudlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// AverageRating returns the mean rating of a book
// (GET /api/books/{id}/average-rating). Unrated books report 0.
func (c *Client) AverageRating(ctx context.Context, bookID int64) (float64, error) {
	path := fmt.Sprintf("/api/books/%d/average-rating", bookID)
	body, err := c.doRequest(ctx, c.http, http.MethodGet, path, nil, "")
	if err != nil {
		return 0, err
	}

	// Older servers answer null instead of 0 for unrated books
	var avg *float64
	if err := json.Unmarshal(body, &avg); err != nil {
		return 0, fmt.Errorf("failed to parse rating response: %w", err)
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
