package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// With no Redis configured, Client stays nil and every helper must be a
// transparent no-op so handlers never have to branch on cache availability.

func TestGetJSONWithoutClient(t *testing.T) {
	var dest []string
	found, err := GetJSON(context.Background(), "feed:all:someone", &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSetJSONWithoutClient(t *testing.T) {
	assert.NoError(t, SetJSON(context.Background(), "feed:all:someone", []string{"a"}, time.Minute))
}

func TestInvalidateWithoutClient(t *testing.T) {
	assert.NotPanics(t, func() {
		Invalidate(context.Background(), "feed:all:someone")
	})
}

func TestCacheAsideWithoutClientCallsFetch(t *testing.T) {
	var dest []string
	calls := 0

	fetch := func() error {
		calls++
		dest = []string{"post-1", "post-2"}
		return nil
	}

	require.NoError(t, CacheAside(context.Background(), "feed:friends:someone", &dest, time.Minute, fetch))
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"post-1", "post-2"}, dest)

	// no cache to hit, so the next call fetches again
	require.NoError(t, CacheAside(context.Background(), "feed:friends:someone", &dest, time.Minute, fetch))
	assert.Equal(t, 2, calls)
}

func TestCacheAsideFetchError(t *testing.T) {
	var dest []string
	err := CacheAside(context.Background(), "feed:friends:someone", &dest, time.Minute, func() error {
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
}
