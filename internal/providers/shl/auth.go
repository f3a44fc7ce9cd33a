package shl

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// tokenManager hands out client-credentials tokens, reusing one until shortly
// before it expires.
type tokenManager struct {
	cfg        *clientcredentials.Config
	httpClient *http.Client

	mu     sync.Mutex
	source oauth2.TokenSource
}

func newTokenManager(baseURL, clientID, secret string, httpClient *http.Client) *tokenManager {
	if clientID == "" {
		return nil
	}
	return &tokenManager{
		cfg: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: secret,
			TokenURL:     baseURL + tokenPath,
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		httpClient: httpClient,
	}
}

// authorize sets the bearer header on req.
func (m *tokenManager) authorize(req *http.Request) error {
	if m == nil {
		return nil
	}
	tok, err := m.tokenSource().Token()
	if err != nil {
		return fmt.Errorf("shl: fetch token: %w", err)
	}
	tok.SetAuthHeader(req)
	return nil
}

// reset drops the cached token so the next request fetches a fresh one.
func (m *tokenManager) reset() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.source = nil
	m.mu.Unlock()
}

func (m *tokenManager) tokenSource() oauth2.TokenSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.source == nil {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, m.httpClient)
		m.source = oauth2.ReuseTokenSourceWithExpiry(nil, m.cfg.TokenSource(ctx), tokenEarlyExpiry)
	}
	return m.source
}
