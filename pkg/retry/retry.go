package retry

import (
	"context"
	"math/rand"
	"time"
)

type Operation = func() error

// Retryable decides whether a failed attempt is worth repeating.
// Returning false surfaces the error immediately.
type Retryable = func(error) bool

type Config struct {
	MaxRetries    int
	BackoffFactor float64
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	Jitter        time.Duration
}

func NewDefaultConfig() *Config {
	return &Config{
		MaxRetries:    3,
		BackoffFactor: 2.0,
		InitialDelay:  500 * time.Millisecond,
		MaxDelay:      30 * time.Second,
		Jitter:        100 * time.Millisecond,
	}
}

type Retrier struct {
	config *Config
}

func NewRetrier(config *Config) *Retrier {
	return &Retrier{config: config}
}

func NewDefaultRetrier() *Retrier {
	return NewRetrier(NewDefaultConfig())
}

// Attempts returns the total number of calls Do may make.
func (r *Retrier) Attempts() int {
	return r.config.MaxRetries + 1
}

func (r *Retrier) Do(ctx context.Context, op Operation) error {
	return r.DoRetryable(ctx, op, func(error) bool { return true })
}

// DoRetryable runs op until it succeeds, the attempt budget runs out,
// retryable rejects the error, or ctx is cancelled during backoff.
func (r *Retrier) DoRetryable(ctx context.Context, op Operation, retryable Retryable) error {
	var err error
	delay := r.config.InitialDelay
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		err = op()
		if err == nil {
			return nil
		}

		if !retryable(err) || attempt == r.config.MaxRetries {
			return err
		}

		jitter := time.Duration(rnd.Float64() * float64(r.config.Jitter))
		nextDelay := delay + jitter
		if nextDelay > r.config.MaxDelay {
			nextDelay = r.config.MaxDelay + jitter
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(nextDelay):
		}

		delay = time.Duration(float64(delay) * r.config.BackoffFactor)
		if delay > r.config.MaxDelay {
			delay = r.config.MaxDelay
		}
	}
	return err
}
