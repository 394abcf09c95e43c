package fic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSource_RefreshAndCache(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "refresh_token", req["grant_type"])
		assert.Equal(t, "refresh-1", req["refresh_token"])
		assert.Equal(t, "cid", req["client_id"])
		assert.Equal(t, "secret", req["client_secret"])

		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "access-1",
			"expires_in":   86400,
		})
	}))
	defer server.Close()

	ts := NewTokenSource(TokenConfig{
		ClientID:     "cid",
		ClientSecret: "secret",
		RefreshToken: "refresh-1",
		TokenURL:     server.URL,
	}, server.Client())

	token, err := ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-1", token)

	// Second call hits the cache, not the endpoint.
	token, err = ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-1", token)
	assert.Equal(t, int64(1), calls.Load())
}

func TestTokenSource_RefreshesNearExpiry(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		// Tokens shorter than the refresh margin are never cached.
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "access-" + string(rune('0'+n)),
			"expires_in":   60,
		})
	}))
	defer server.Close()

	ts := NewTokenSource(TokenConfig{RefreshToken: "r", TokenURL: server.URL}, server.Client())

	token, err := ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-1", token)

	token, err = ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "access-2", token)
	assert.Equal(t, int64(2), calls.Load())
}

func TestTokenSource_KeepsRotatedRefreshToken(t *testing.T) {
	var lastRefresh atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		json.NewDecoder(r.Body).Decode(&req)
		lastRefresh.Store(req["refresh_token"])

		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "access",
			"refresh_token": "rotated",
			"expires_in":    60,
		})
	}))
	defer server.Close()

	ts := NewTokenSource(TokenConfig{RefreshToken: "original", TokenURL: server.URL}, server.Client())

	_, err := ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "original", lastRefresh.Load())

	_, err = ts.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "rotated", lastRefresh.Load())
}

func TestTokenSource_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer server.Close()

	ts := NewTokenSource(TokenConfig{RefreshToken: "r", TokenURL: server.URL}, server.Client())

	_, err := ts.Token(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
