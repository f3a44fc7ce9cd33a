package providers

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/goal-light/internal/domain/games"
)

const defaultPerMinute = 60

// rateLimitedProvider wraps a ScheduleProvider and spaces calls to stay under an upstream quota.
type rateLimitedProvider struct {
	next    ScheduleProvider
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewRateLimitedProvider returns a provider allowing at most perMinute calls per minute.
// Calls block until a token is available or ctx ends.
func NewRateLimitedProvider(next ScheduleProvider, perMinute int, logger *slog.Logger) ScheduleProvider {
	if perMinute <= 0 {
		perMinute = defaultPerMinute
	}
	return &rateLimitedProvider{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 1),
		logger:  logger,
	}
}

func (p *rateLimitedProvider) FetchSeasonGames(ctx context.Context, season int, team string) ([]games.Game, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	return p.next.FetchSeasonGames(ctx, season, team)
}

func (p *rateLimitedProvider) FetchGameReport(ctx context.Context, season int, gameID string) (*games.GameReport, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	return p.next.FetchGameReport(ctx, season, gameID)
}

// ResetCredentials forwards to the wrapped provider when supported.
func (p *rateLimitedProvider) ResetCredentials() {
	if rc, ok := p.next.(CredentialResetter); ok {
		rc.ResetCredentials()
	}
}

func (p *rateLimitedProvider) wait(ctx context.Context) error {
	if p == nil || p.next == nil {
		if p != nil {
			logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "provider unavailable")
		}
		return ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "rate-limited fetch canceled", "error", err)
		return err
	}
	return nil
}
