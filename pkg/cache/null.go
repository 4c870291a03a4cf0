package cache

import (
	"context"
	"time"
)

// NullCache stores nothing, so every load rebuilds the graph from its source
// file. Reason records why caching is off (for example "--no-cache" or an
// unreachable backend) and is empty for the zero value.
type NullCache struct {
	Reason string
}

// NewNullCache returns a NullCache without a reason, the runner's default
// when no cache is supplied.
func NewNullCache() Cache {
	return &NullCache{}
}

// Disabled returns a NullCache that remembers why caching was turned off.
func Disabled(reason string) *NullCache {
	return &NullCache{Reason: reason}
}

// Get always misses.
func (c *NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards data.
func (c *NullCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (c *NullCache) Delete(context.Context, string) error { return nil }
func (c *NullCache) Close() error                         { return nil }

// String names the backend for log records, e.g. "none (--no-cache)".
func (c *NullCache) String() string {
	if c.Reason == "" {
		return "none"
	}
	return "none (" + c.Reason + ")"
}

var _ Cache = (*NullCache)(nil)
