package shl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/goal-light/internal/domain/games"
	"github.com/preston-bernstein/goal-light/internal/providers"
)

// Config controls how the SHL client reaches the open API.
type Config struct {
	BaseURL    string
	ClientID   string
	Secret     string
	HTTPClient *http.Client
	Timezone   string
}

// Client fetches schedules and game reports from the SHL open API. It makes a
// single attempt per call; retries belong to the provider wrappers.
type Client struct {
	baseURL    string
	httpClient *http.Client
	auth       *tokenManager
	loc        *time.Location
}

// NewClient constructs an SHL client. Requests are unauthenticated when no client ID is set.
func NewClient(cfg Config) *Client {
	baseURL := normalizeBaseURL(cfg.BaseURL)
	httpClient := resolveHTTPClient(cfg.HTTPClient)
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		auth:       newTokenManager(baseURL, cfg.ClientID, cfg.Secret, httpClient),
		loc:        resolveLocation(cfg.Timezone),
	}
}

// FetchSeasonGames returns the season schedule filtered to team.
func (c *Client) FetchSeasonGames(ctx context.Context, season int, team string) ([]games.Game, error) {
	query := url.Values{}
	if team != "" {
		query.Set("teamIds[]", team)
	}
	var payload []gamePayload
	if err := c.get(ctx, fmt.Sprintf("/seasons/%d/games.json", season), query, &payload); err != nil {
		return nil, err
	}
	return mapGames(payload, c.loc), nil
}

// FetchGameReport returns the current report for one game.
func (c *Client) FetchGameReport(ctx context.Context, season int, gameID string) (*games.GameReport, error) {
	if gameID == "" {
		return nil, fmt.Errorf("shl: game id required")
	}
	var payload gamePayload
	path := fmt.Sprintf("/seasons/%d/games/%s.json", season, url.PathEscape(gameID))
	if err := c.get(ctx, path, nil, &payload); err != nil {
		return nil, err
	}
	report := mapReport(payload)
	if report.GameID == "0" {
		report.GameID = gameID
	}
	return report, nil
}

// ResetCredentials drops the cached access token.
func (c *Client) ResetCredentials() {
	c.auth.reset()
}

func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	req, err := c.buildRequest(ctx, path, query)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("shl: request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header),
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &providers.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("shl: decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) buildRequest(ctx context.Context, path string, query url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("Accept", "application/json")
	if err := c.auth.authorize(req); err != nil {
		return nil, err
	}
	return req, nil
}
