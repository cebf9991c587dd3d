package source

import (
	"testing"
	"time"

	"github.com/cloudlibrary/cloudlib/internal/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr string
	}{
		{name: "nil config", cfg: nil, wantErr: "source config is nil"},
		{name: "missing url", cfg: &Config{}, wantErr: "server URL is required"},
		{name: "bad url", cfg: &Config{URL: "localhost:8080"}, wantErr: "invalid server URL"},
		{name: "valid", cfg: &Config{URL: "http://localhost:8080", Timeout: time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend, err := NewClient(tt.cfg, adapter.NullLogger())
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				assert.Nil(t, backend)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, backend)
		})
	}
}

func TestFromConfig(t *testing.T) {
	cfg := adapter.DefaultConfig()
	cfg.Server.URL = "https://books.example.com"

	got := FromConfig(cfg)
	assert.Equal(t, "https://books.example.com", got.URL)
	assert.Equal(t, 30*time.Second, got.Timeout)
}
