package fic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/pkg/logger"
)

// expiryMargin refreshes the access token this long before it
// actually expires, so in-flight requests never race the expiry.
const expiryMargin = 5 * time.Minute

// TokenConfig holds the OAuth application credentials.
type TokenConfig struct {
	ClientID     string
	ClientSecret string
	RefreshToken string

	// TokenURL defaults to the production endpoint.
	TokenURL string
}

// TokenSource exchanges the long-lived refresh token for short-lived
// access tokens and caches them. Fatture in Cloud may rotate the
// refresh token on each exchange; the source keeps the latest one.
type TokenSource struct {
	cfg  TokenConfig
	http *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

// NewTokenSource creates a token source. httpClient may be nil.
func NewTokenSource(cfg TokenConfig, httpClient *http.Client) *TokenSource {
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultBaseURL + "/oauth/token"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &TokenSource{
		cfg:          cfg,
		http:         httpClient,
		refreshToken: cfg.RefreshToken,
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Token returns a valid access token, refreshing if needed.
func (t *TokenSource) Token(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.accessToken != "" && time.Now().Add(expiryMargin).Before(t.expiresAt) {
		return t.accessToken, nil
	}

	body, err := json.Marshal(map[string]string{
		"grant_type":    "refresh_token",
		"refresh_token": t.refreshToken,
		"client_id":     t.cfg.ClientID,
		"client_secret": t.cfg.ClientSecret,
	})
	if err != nil {
		return "", fmt.Errorf("marshal token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.cfg.TokenURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("refresh token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("refresh token: status %d: %s", resp.StatusCode, string(data))
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("refresh token: empty access_token in response")
	}

	t.accessToken = tr.AccessToken
	if tr.RefreshToken != "" {
		t.refreshToken = tr.RefreshToken
	}
	t.expiresAt = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)

	logger.Debug(ctx, "fic access token refreshed", "expires_in", tr.ExpiresIn)
	return t.accessToken, nil
}
