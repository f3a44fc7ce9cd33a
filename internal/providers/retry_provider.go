package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/goal-light/internal/domain/games"
	"github.com/preston-bernstein/goal-light/internal/metrics"
)

const (
	defaultMaxRetries = 3
	defaultRetryDelay = time.Second
)

// retryingProvider retries failed calls with a constant delay, dropping the
// inner provider's credentials before every retry.
type retryingProvider struct {
	inner        ScheduleProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxRetries   int
	delay        time.Duration
}

// NewRetryingProvider wraps inner with retries. Non-positive maxRetries/delay select the defaults (3 retries, 1s).
func NewRetryingProvider(inner ScheduleProvider, logger *slog.Logger, recorder *metrics.Recorder, providerName string, maxRetries int, delay time.Duration) ScheduleProvider {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if delay <= 0 {
		delay = defaultRetryDelay
	}
	if providerName == "" {
		providerName = "provider"
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      recorder,
		providerName: providerName,
		maxRetries:   maxRetries,
		delay:        delay,
	}
}

func (r *retryingProvider) FetchSeasonGames(ctx context.Context, season int, team string) ([]games.Game, error) {
	return retry(ctx, r, "season games", func() ([]games.Game, error) {
		return r.inner.FetchSeasonGames(ctx, season, team)
	})
}

func (r *retryingProvider) FetchGameReport(ctx context.Context, season int, gameID string) (*games.GameReport, error) {
	return retry(ctx, r, "game report", func() (*games.GameReport, error) {
		return r.inner.FetchGameReport(ctx, season, gameID)
	})
}

// Close releases resources held by the wrapped provider.
func (r *retryingProvider) Close() {
	if c, ok := r.inner.(Closer); ok {
		c.Close()
	}
}

func retry[T any](ctx context.Context, r *retryingProvider, op string, fn func() (T, error)) (T, error) {
	var zero T
	if r.inner == nil {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider unavailable")
		return zero, ErrProviderUnavailable
	}

	policy := &retryAfterBackOff{base: backoff.NewConstantBackOff(r.delay)}
	bo := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(r.maxRetries)), ctx)

	attempt := 0
	operation := func() (T, error) {
		attempt++
		if attempt > 1 {
			r.resetCredentials()
		}
		start := time.Now()
		res, err := fn()
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return res, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return zero, backoff.Permanent(err)
		}
		if rlErr, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.providerName, rlErr.RetryAfter)
			policy.retryAfter = rlErr.RetryAfter
		}
		return zero, err
	}
	notify := func(err error, next time.Duration) {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider call failed, refreshing credentials and retrying",
			"op", op,
			"attempt", attempt,
			"max_retries", r.maxRetries,
			"retry_in_ms", next.Milliseconds(),
			"error", err,
		)
	}

	res, err := backoff.RetryNotifyWithData(operation, bo, notify)
	if err != nil {
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider call gave up", "op", op, "attempts", attempt, "error", err)
		return zero, err
	}
	return res, nil
}

func (r *retryingProvider) resetCredentials() {
	if rc, ok := r.inner.(CredentialResetter); ok {
		rc.ResetCredentials()
	}
}

// retryAfterBackOff stretches the next delay to an upstream Retry-After hint.
type retryAfterBackOff struct {
	base       backoff.BackOff
	retryAfter time.Duration
}

func (b *retryAfterBackOff) Reset() {
	b.base.Reset()
	b.retryAfter = 0
}

func (b *retryAfterBackOff) NextBackOff() time.Duration {
	next := b.base.NextBackOff()
	if next == backoff.Stop {
		return next
	}
	if b.retryAfter > next {
		next = b.retryAfter
	}
	b.retryAfter = 0
	return next
}
