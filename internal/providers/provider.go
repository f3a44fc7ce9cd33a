package providers

import (
	"context"

	"github.com/preston-bernstein/goal-light/internal/domain/games"
)

// ScheduleProvider fetches a team's season schedule and single-game reports.
type ScheduleProvider interface {
	FetchSeasonGames(ctx context.Context, season int, team string) ([]games.Game, error)
	FetchGameReport(ctx context.Context, season int, gameID string) (*games.GameReport, error)
}

// CredentialResetter is implemented by providers that can drop cached
// credentials so the next request authenticates from scratch.
type CredentialResetter interface {
	ResetCredentials()
}

// Closer is implemented by wrappers holding resources that need release.
type Closer interface {
	Close()
}
