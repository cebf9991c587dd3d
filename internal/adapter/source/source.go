package source

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cloudlibrary/cloudlib/internal/adapter"
	"github.com/cloudlibrary/cloudlib/internal/adapter/source/cloudlibrary"
	"github.com/cloudlibrary/cloudlib/internal/domain"
)

// Backend combines the provider interfaces a catalog backend must implement
type Backend interface {
	domain.BookLister    // Catalog: ListBooks
	domain.Authenticator // Accounts: Login, Register
	domain.RatingReader  // Ratings: AverageRating
}

// Config contains the configuration needed to create a Backend
type Config struct {
	URL     string
	Timeout time.Duration
}

// FromConfig extracts the backend settings from the application config
func FromConfig(cfg *adapter.Config) *Config {
	return &Config{URL: cfg.Server.URL, Timeout: cfg.Server.Timeout}
}

var _ Backend = (*cloudlibrary.Client)(nil)

// NewClient creates the Backend for cfg
func NewClient(cfg *Config, logger *slog.Logger) (Backend, error) {
	if cfg == nil {
		return nil, fmt.Errorf("source config is nil")
	}

	if cfg.URL == "" {
		return nil, fmt.Errorf("server URL is required")
	}

	if err := adapter.ValidateServerURL(cfg.URL); err != nil {
		return nil, err
	}

	return cloudlibrary.NewClient(cfg.URL, cfg.Timeout, logger), nil
}
