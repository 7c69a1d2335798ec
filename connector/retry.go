package connector

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

func retryPing(ctx context.Context, opts *RetryConfig, db pinger) error {
	if opts == nil {
		return errors.Wrap(db.PingContext(ctx), "ping")
	}

	delay := opts.BaseDelay
	if delay == 0 {
		delay = time.Second // default
	}
	backoff := opts.Backoff
	if backoff < 1 {
		backoff = 2
	}

	var err error
	for i := 0; i < opts.MaxRetries; i++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		if i == opts.MaxRetries-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay = time.Duration(float64(delay) * backoff)
			if delay > opts.MaxDelay && opts.MaxDelay > 0 {
				delay = opts.MaxDelay
			}
		}
	}
	return errors.Wrapf(err, "failed to connect after %d retries", opts.MaxRetries)
}
