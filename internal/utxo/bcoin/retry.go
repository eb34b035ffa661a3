package bcoin

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const (
	// DefaultRetryAttempts is the total number of tries for a read that keeps timing out.
	DefaultRetryAttempts = 3
	// DefaultRetryPause is the fixed wait between tries.
	DefaultRetryPause = 3 * time.Second
)

// retryingRequester retries reads that time out. Writes pass through untouched.
type retryingRequester struct {
	next     Requester
	attempts int
	pause    time.Duration
	logger   *zap.Logger
}

func newRetryingRequester(next Requester, attempts int, pause time.Duration, logger *zap.Logger) *retryingRequester {
	if attempts < 1 {
		attempts = 1
	}
	if pause < 0 {
		pause = 0
	}
	return &retryingRequester{
		next:     next,
		attempts: attempts,
		pause:    pause,
		logger:   logger,
	}
}

func (r *retryingRequester) Get(ctx context.Context, path string, query url.Values, out any) error {
	attempt := 0
	operation := func() error {
		attempt++
		err := r.next.Get(ctx, path, query, out)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || !isTimeout(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		r.logger.Warn("bcoin read timed out, retrying",
			zap.String("path", path),
			zap.Int("attempt", attempt),
			zap.Duration("pause", wait),
			zap.Error(err))
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(r.pause), uint64(r.attempts-1)),
		ctx,
	)
	err := backoff.RetryNotify(operation, policy, notify)
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(err, ctxErr) {
			return err
		}
		return fmt.Errorf("%w: %w", ctxErr, err)
	}
	if isTimeout(err) {
		return fmt.Errorf("%w: %s after %d attempts: %w", ErrMaxRetriesExceeded, path, attempt, err)
	}
	return err
}

func (r *retryingRequester) Post(ctx context.Context, path string, body, out any) error {
	return r.next.Post(ctx, path, body, out)
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
