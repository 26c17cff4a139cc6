package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Config holds retry configuration.
type Config struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// Option is a functional option for retry configuration.
type Option func(*Config)

func newConfig(opts []Option) *Config {
	cfg := &Config{
		MaxRetries:   5,
		InitialDelay: 1 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// next returns the delay following d, capped at MaxDelay.
func (c *Config) next(d time.Duration) time.Duration {
	d = time.Duration(float64(d) * c.Multiplier)
	if d > c.MaxDelay {
		d = c.MaxDelay
	}
	return d
}

// Do executes the operation with exponential backoff retry.
// It retries up to MaxRetries times after the first attempt. Errors wrapped
// with Fatal() are returned immediately. Context cancellation is respected
// between attempts.
func Do(ctx context.Context, operation func() error, opts ...Option) error {
	cfg := newConfig(opts)

	delay := cfg.InitialDelay
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		if IsFatal(err) {
			return fmt.Errorf("fatal error (not retrying): %w", err)
		}

		if attempt < cfg.MaxRetries {
			if err := sleep(ctx, delay); err != nil {
				return fmt.Errorf("context cancelled after %d attempts: %w", attempt+1, err)
			}
			delay = cfg.next(delay)
		}
	}

	return fmt.Errorf("operation failed after %d retries: %w", cfg.MaxRetries+1, lastErr)
}

// ErrNotDone is returned by Poll when the attempt budget is spent before the
// condition reported done.
var ErrNotDone = errors.New("condition not met")

// Poll evaluates condition until it returns true, returns an error, or the
// attempt budget is spent. A zero MaxRetries (see WithMaxRetries) means the
// condition is evaluated until the context ends. Errors from condition are
// returned as-is and stop polling.
func Poll(ctx context.Context, condition func(context.Context) (bool, error), opts ...Option) error {
	cfg := newConfig(opts)

	delay := cfg.InitialDelay
	for attempt := 0; cfg.MaxRetries == 0 || attempt <= cfg.MaxRetries; attempt++ {
		done, err := condition(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if err := sleep(ctx, delay); err != nil {
			return fmt.Errorf("gave up after %d checks: %w", attempt+1, err)
		}
		delay = cfg.next(delay)
	}

	return fmt.Errorf("gave up after %d checks: %w", cfg.MaxRetries+1, ErrNotDone)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// WithMaxRetries sets the maximum number of retries.
func WithMaxRetries(n int) Option {
	return func(c *Config) {
		c.MaxRetries = n
	}
}

// WithInitialDelay sets the initial delay between retries.
func WithInitialDelay(d time.Duration) Option {
	return func(c *Config) {
		c.InitialDelay = d
	}
}

// WithMaxDelay sets the maximum delay between retries.
func WithMaxDelay(d time.Duration) Option {
	return func(c *Config) {
		c.MaxDelay = d
	}
}

// WithMultiplier sets the backoff multiplier.
func WithMultiplier(m float64) Option {
	return func(c *Config) {
		c.Multiplier = m
	}
}

// FatalError wraps an error to mark it as fatal (non-retryable).
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Fatal marks an error as fatal (non-retryable).
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

// IsFatal checks if an error is fatal (non-retryable).
func IsFatal(err error) bool {
	var fatalErr *FatalError
	return errors.As(err, &fatalErr)
}
