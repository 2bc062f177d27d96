package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/geezit/geezit-server/internal/config"
)

func fakeGoogle(t *testing.T, userInfo map[string]any) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("code") != "good-code" {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "at-123",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("GET /userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(userInfo)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newFakeGoogleAuth(srv *httptest.Server) *GoogleAuth {
	g := NewGoogleAuth(config.GoogleConfig{ClientID: "cid", ClientSecret: "csecret", RedirectURL: "http://localhost/cb"})
	g.conf.Endpoint = oauth2.Endpoint{
		AuthURL:   srv.URL + "/auth",
		TokenURL:  srv.URL + "/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}
	g.userInfoURL = srv.URL + "/userinfo"
	return g
}

func TestGoogleAuth_FetchUser(t *testing.T) {
	srv := fakeGoogle(t, map[string]any{
		"id":             "g-1",
		"email":          "dana@example.com",
		"verified_email": true,
		"name":           "Dana",
	})
	g := newFakeGoogleAuth(srv)

	gu, err := g.FetchUser(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", gu.Email)
	assert.Equal(t, "Dana", gu.Name)

	_, err = g.FetchUser(context.Background(), "bad-code")
	assert.Error(t, err)
}

func TestGoogleAuth_FetchUser_UnverifiedEmail(t *testing.T) {
	srv := fakeGoogle(t, map[string]any{"id": "g-2", "email": "eve@example.com", "verified_email": false})
	g := newFakeGoogleAuth(srv)

	_, err := g.FetchUser(context.Background(), "good-code")
	assert.ErrorIs(t, err, ErrGoogleEmailMissing)
}

func TestGoogleAuth_AuthCodeURL(t *testing.T) {
	g := NewGoogleAuth(config.GoogleConfig{ClientID: "cid", ClientSecret: "csecret", RedirectURL: "http://localhost/cb"})
	u := g.AuthCodeURL("state-xyz")
	assert.Contains(t, u, "accounts.google.com")
	assert.Contains(t, u, "state=state-xyz")
	assert.Contains(t, u, "client_id=cid")
}
