package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudlibrary/cloudlib/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_StartTransitionsToLoading(t *testing.T) {
	l := NewLoader()
	assert.Equal(t, StatusIdle, l.Status())

	req, ok := l.Start(context.Background())
	require.True(t, ok)
	assert.Equal(t, StatusLoading, l.Status())
	assert.Equal(t, uint64(1), req.ID)
	assert.NoError(t, req.Ctx.Err())
}

func TestLoader_StartOnlyOnce(t *testing.T) {
	l := NewLoader()
	_, ok := l.Start(context.Background())
	require.True(t, ok)

	// Second start while Loading must not issue a fetch
	_, ok = l.Start(context.Background())
	assert.False(t, ok)
	assert.Equal(t, uint64(1), l.Generation())

	require.True(t, l.Resolve(1, nil))

	// Nor once Loaded
	_, ok = l.Start(context.Background())
	assert.False(t, ok)
}

func TestLoader_SettlesExactlyOnce(t *testing.T) {
	books := []domain.Book{{ID: 1, Title: "Clean Code"}}
	boom := errors.New("boom")

	tests := []struct {
		name       string
		settle     func(l *Loader, id uint64) bool
		wantStatus Status
	}{
		{
			name:       "resolve then fail",
			settle:     func(l *Loader, id uint64) bool { return l.Resolve(id, books) },
			wantStatus: StatusLoaded,
		},
		{
			name:       "fail then resolve",
			settle:     func(l *Loader, id uint64) bool { return l.Fail(id, boom) },
			wantStatus: StatusFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLoader()
			req, ok := l.Start(context.Background())
			require.True(t, ok)

			require.True(t, tt.settle(l, req.ID))
			assert.Equal(t, tt.wantStatus, l.Status())

			// The opposite outcome for the same request is rejected
			assert.False(t, l.Resolve(req.ID, books))
			assert.False(t, l.Fail(req.ID, boom))
			assert.Equal(t, tt.wantStatus, l.Status())
		})
	}
}

func TestLoader_EmptyResultIsLoaded(t *testing.T) {
	l := NewLoader()
	req, _ := l.Start(context.Background())

	require.True(t, l.Resolve(req.ID, nil))
	assert.Equal(t, StatusLoaded, l.Status())
	assert.NotNil(t, l.Books())
	assert.Empty(t, l.Books())
	assert.NoError(t, l.Err())
}

func TestLoader_RetryOnlyFromFailed(t *testing.T) {
	l := NewLoader()

	_, err := l.Retry(context.Background())
	assert.ErrorIs(t, err, ErrRetryNotAllowed, "retry from Idle")

	req, _ := l.Start(context.Background())
	_, err = l.Retry(context.Background())
	assert.ErrorIs(t, err, ErrRetryNotAllowed, "retry while Loading")

	require.True(t, l.Fail(req.ID, errors.New("offline")))
	assert.Equal(t, StatusFailed, l.Status())
	assert.EqualError(t, l.Err(), "offline")

	retry, err := l.Retry(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusLoading, l.Status())
	assert.Equal(t, req.ID+1, retry.ID)
	assert.NoError(t, l.Err(), "retry clears the previous reason")

	_, err = l.Retry(context.Background())
	assert.ErrorIs(t, err, ErrRetryNotAllowed, "second retry while Loading")

	require.True(t, l.Resolve(retry.ID, []domain.Book{{ID: 1, Title: "Refactoring"}}))
	_, err = l.Retry(context.Background())
	assert.ErrorIs(t, err, ErrRetryNotAllowed, "retry from Loaded")
}

func TestLoader_StaleGenerationDiscarded(t *testing.T) {
	l := NewLoader()
	first, _ := l.Start(context.Background())
	require.True(t, l.Fail(first.ID, errors.New("offline")))

	second, err := l.Retry(context.Background())
	require.NoError(t, err)

	// A late answer for the first request must not win
	assert.False(t, l.Resolve(first.ID, []domain.Book{{ID: 9, Title: "Stale"}}))
	assert.Equal(t, StatusLoading, l.Status())

	require.True(t, l.Resolve(second.ID, []domain.Book{{ID: 1, Title: "Fresh"}}))
	require.Len(t, l.Books(), 1)
	assert.Equal(t, "Fresh", l.Books()[0].Title)
}

func TestLoader_UnmountDiscardsInFlight(t *testing.T) {
	l := NewLoader()
	req, _ := l.Start(context.Background())

	l.Unmount()
	assert.False(t, l.Mounted())
	assert.ErrorIs(t, req.Ctx.Err(), context.Canceled)

	assert.False(t, l.Resolve(req.ID, []domain.Book{{ID: 1, Title: "Clean Code"}}))
	assert.False(t, l.Fail(req.ID, errors.New("late")))
	assert.Equal(t, StatusLoading, l.Status())
	assert.Nil(t, l.Books())

	_, ok := l.Start(context.Background())
	assert.False(t, ok)
}

func TestLoader_SettlingReleasesContext(t *testing.T) {
	l := NewLoader()
	req, _ := l.Start(context.Background())
	require.True(t, l.Resolve(req.ID, nil))
	assert.ErrorIs(t, req.Ctx.Err(), context.Canceled)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Idle", StatusIdle.String())
	assert.Equal(t, "Loading", StatusLoading.String())
	assert.Equal(t, "Loaded", StatusLoaded.String())
	assert.Equal(t, "Failed", StatusFailed.String())
	assert.Equal(t, "Unknown", Status(42).String())
}
