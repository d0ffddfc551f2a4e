package database

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"devevents/internal/domain"
)

// DialFunc opens a handle for the given connection string.
type DialFunc[T any] func(ctx context.Context, dsn string) (T, error)

// CloseFunc releases a handle opened by a DialFunc.
type CloseFunc[T any] func(ctx context.Context, handle T) error

// Connector lazily opens one shared handle and caches it for the process
// lifetime. Concurrent Acquire calls made while a dial is in flight wait on
// that dial instead of starting their own. A failed dial is not cached, so the
// next Acquire tries again.
type Connector[T any] struct {
	name  string
	dsn   string
	dial  DialFunc[T]
	close CloseFunc[T]

	mu     sync.RWMutex
	handle T
	ready  bool
	group  singleflight.Group
}

// NewConnector returns a Connector for dsn. name is used in error messages.
func NewConnector[T any](name, dsn string, dial DialFunc[T], closeFn CloseFunc[T]) *Connector[T] {
	return &Connector[T]{
		name:  name,
		dsn:   dsn,
		dial:  dial,
		close: closeFn,
	}
}

// Acquire returns the shared handle, dialing on first use.
func (c *Connector[T]) Acquire(ctx context.Context) (T, error) {
	var zero T
	if c.dsn == "" {
		return zero, fmt.Errorf("%w: %s connection string is not set", domain.ErrConfiguration, c.name)
	}

	c.mu.RLock()
	if c.ready {
		h := c.handle
		c.mu.RUnlock()
		return h, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do("connect", func() (any, error) {
		c.mu.RLock()
		if c.ready {
			h := c.handle
			c.mu.RUnlock()
			return h, nil
		}
		c.mu.RUnlock()

		h, err := c.dial(context.WithoutCancel(ctx), c.dsn)
		if err != nil {
			return zero, fmt.Errorf("%w: failed to connect to %s: %w", domain.ErrConnection, c.name, err)
		}
		c.mu.Lock()
		c.handle = h
		c.ready = true
		c.mu.Unlock()
		return h, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// Close releases the cached handle, if any.
func (c *Connector[T]) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ready {
		return nil
	}
	c.ready = false
	var zero T
	h := c.handle
	c.handle = zero
	if c.close == nil {
		return nil
	}
	return c.close(ctx, h)
}

// Ping acquires the handle and checks it with ping.
func (c *Connector[T]) Ping(ctx context.Context, ping func(context.Context, T) error) error {
	h, err := c.Acquire(ctx)
	if err != nil {
		return err
	}
	return ping(ctx, h)
}
