package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geezit/geezit-server/internal/api/handlers"
	"github.com/geezit/geezit-server/internal/api/services"
	"github.com/geezit/geezit-server/internal/auth"
	"github.com/geezit/geezit-server/internal/config"
	"github.com/geezit/geezit-server/internal/logging"
	"github.com/geezit/geezit-server/internal/models"
	"github.com/geezit/geezit-server/internal/repositories/repotest"
)

type testAPI struct {
	t      *testing.T
	srv    *httptest.Server
	tokens *auth.TokenIssuer
}

func newTestAPI(t *testing.T, opts ...handlers.Option) (*testAPI, func() int64) {
	t.Helper()
	store, db := repotest.NewStore(t)
	log := logging.Discard()
	tokens := auth.NewTokenIssuer("router-secret")
	svc := services.New(store, tokens, log)

	srv := httptest.NewServer(SetupRouter(handlers.New(svc, log, opts...), tokens, config.CorsConfig(nil), log))
	t.Cleanup(srv.Close)

	countMessages := func() int64 {
		var n int64
		require.NoError(t, db.Model(&models.Message{}).Count(&n).Error)
		return n
	}
	return &testAPI{t: t, srv: srv, tokens: tokens}, countMessages
}

func (a *testAPI) do(method, path, token, body string) (int, []byte) {
	a.t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, a.srv.URL+path, rdr)
	require.NoError(a.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}
	resp, err := client.Do(req)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp.StatusCode, data
}

func (a *testAPI) signup(username string) services.AuthResult {
	a.t.Helper()
	status, body := a.do(http.MethodPost, "/api/auth/signup", "", `{"username":"`+username+`","password":"secret1"}`)
	require.Equal(a.t, http.StatusOK, status, string(body))

	var res services.AuthResult
	require.NoError(a.t, json.Unmarshal(body, &res))
	return res
}

func errorOf(t *testing.T, body []byte) string {
	t.Helper()
	var payload struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &payload), string(body))
	return payload.Error
}

func TestHealth(t *testing.T) {
	a, _ := newTestAPI(t)
	status, body := a.do(http.MethodGet, "/api/health", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"OK"}`, string(body))
}

func TestSignupAndLogin(t *testing.T) {
	a, _ := newTestAPI(t)

	res := a.signup("alice")
	assert.Equal(t, "alice", res.User.Username)
	assert.NotEmpty(t, res.Token)

	status, body := a.do(http.MethodPost, "/api/auth/signup", "", `{"username":"alice","password":"another1"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Username already taken", errorOf(t, body))

	status, body = a.do(http.MethodPost, "/api/auth/signup", "", `{"username":"ab","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Username must be at least 3 characters", errorOf(t, body))

	status, body = a.do(http.MethodPost, "/api/auth/signup", "", `{"username":"abc","password":"12345"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Password must be at least 6 characters", errorOf(t, body))

	status, body = a.do(http.MethodPost, "/api/auth/signup", "", `{"username":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid input", errorOf(t, body))

	status, body = a.do(http.MethodPost, "/api/auth/login", "", `{"username":"alice","password":"secret1"}`)
	require.Equal(t, http.StatusOK, status)
	var login services.AuthResult
	require.NoError(t, json.Unmarshal(body, &login))
	assert.Equal(t, res.User.ID, login.User.ID)

	_, wrongPass := a.do(http.MethodPost, "/api/auth/login", "", `{"username":"alice","password":"nope-nope"}`)
	status, noUser := a.do(http.MethodPost, "/api/auth/login", "", `{"username":"zed","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, string(wrongPass), string(noUser))
	assert.Equal(t, "Invalid credentials", errorOf(t, noUser))
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	a, _ := newTestAPI(t)
	forged, err := auth.NewTokenIssuer("other-secret").Issue(1, "alice")
	require.NoError(t, err)

	for _, rt := range []struct{ method, path string }{
		{http.MethodGet, "/api/user/profile"},
		{http.MethodPut, "/api/user/profile"},
		{http.MethodGet, "/api/messages"},
		{http.MethodGet, "/api/messages/export"},
		{http.MethodPost, "/api/hearts"},
		{http.MethodGet, "/api/hearts"},
	} {
		status, _ := a.do(rt.method, rt.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, status, "%s %s without token", rt.method, rt.path)

		status, _ = a.do(rt.method, rt.path, forged, "")
		assert.Equal(t, http.StatusForbidden, status, "%s %s with forged token", rt.method, rt.path)
	}
}

func TestMessagesFlow(t *testing.T) {
	a, countMessages := newTestAPI(t)
	bob := a.signup("bob")
	a.signup("alice")

	status, body := a.do(http.MethodPost, "/api/messages", "", `{"username":"bob","message":"you rock"}`)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"success":true}`, string(body))
	a.do(http.MethodPost, "/api/messages", "", `{"username":"alice","message":"hi alice"}`)
	a.do(http.MethodPost, "/api/messages", "", `{"username":"bob","message":"second"}`)

	status, body = a.do(http.MethodPost, "/api/messages", "", `{"username":"ghost","message":"boo"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found", errorOf(t, body))

	status, body = a.do(http.MethodPost, "/api/messages", "", `{"username":"bob"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Username and message required", errorOf(t, body))
	assert.EqualValues(t, 3, countMessages())

	status, body = a.do(http.MethodGet, "/api/messages", bob.Token, "")
	require.Equal(t, http.StatusOK, status)
	var msgs []map[string]any
	require.NoError(t, json.Unmarshal(body, &msgs))
	require.Len(t, msgs, 2)
	assert.Equal(t, "second", msgs[0]["message_text"])
	assert.Equal(t, "you rock", msgs[1]["message_text"])
	assert.ElementsMatch(t, []string{"id", "message_text", "created_at"}, keys(msgs[0]))

	carol := a.signup("carol")
	status, body = a.do(http.MethodGet, "/api/messages", carol.Token, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))
}

func TestHeartsFlow(t *testing.T) {
	a, _ := newTestAPI(t)
	alice := a.signup("alice")
	bob := a.signup("bob")

	for _, want := range []string{`{"hearted":true}`, `{"hearted":false}`, `{"hearted":true}`} {
		status, body := a.do(http.MethodPost, "/api/hearts", alice.Token, `{"username":"bob"}`)
		require.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, want, string(body))
	}

	status, body := a.do(http.MethodPost, "/api/hearts", alice.Token, `{"username":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found", errorOf(t, body))

	status, body = a.do(http.MethodGet, "/api/hearts", bob.Token, "")
	require.Equal(t, http.StatusOK, status)
	var hearts []map[string]any
	require.NoError(t, json.Unmarshal(body, &hearts))
	require.Len(t, hearts, 1)
	assert.Equal(t, []string{"created_at"}, keys(hearts[0]))
}

func TestProfileFlow(t *testing.T) {
	a, _ := newTestAPI(t)
	bob := a.signup("bob")
	alice := a.signup("alice")

	a.do(http.MethodPost, "/api/messages", "", `{"username":"bob","message":"one"}`)
	a.do(http.MethodPost, "/api/messages", "", `{"username":"bob","message":"two"}`)
	a.do(http.MethodPost, "/api/hearts", alice.Token, `{"username":"bob"}`)

	status, body := a.do(http.MethodGet, "/api/user/profile", bob.Token, "")
	require.Equal(t, http.StatusOK, status)
	var profile map[string]any
	require.NoError(t, json.Unmarshal(body, &profile))
	assert.Equal(t, "bob", profile["username"])
	assert.EqualValues(t, 2, profile["message_count"])
	assert.EqualValues(t, 1, profile["heart_count"])
	assert.Nil(t, profile["email"])
	assert.Contains(t, profile, "created_at")

	status, body = a.do(http.MethodPut, "/api/user/profile", bob.Token, `{}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "No updates provided", errorOf(t, body))

	status, body = a.do(http.MethodPut, "/api/user/profile", bob.Token, `{"username":"alice"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Username already taken", errorOf(t, body))

	status, body = a.do(http.MethodPut, "/api/user/profile", bob.Token, `{"username":"robert","email":"bob@example.com"}`)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"id":`+itoa(bob.User.ID)+`,"username":"robert","email":"bob@example.com"}`, string(body))

	// Tokens identify users by id, so a rename keeps the old token working.
	status, _ = a.do(http.MethodGet, "/api/user/profile", bob.Token, "")
	assert.Equal(t, http.StatusOK, status)

	ghost, err := a.tokens.Issue(9999, "ghost")
	require.NoError(t, err)
	status, body = a.do(http.MethodGet, "/api/user/profile", ghost, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found", errorOf(t, body))
}

func TestUserExists(t *testing.T) {
	a, _ := newTestAPI(t)
	a.signup("bob")

	status, body := a.do(http.MethodGet, "/api/users/bob", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"exists":true}`, string(body))

	_, body = a.do(http.MethodGet, "/api/users/ghost", "", "")
	assert.JSONEq(t, `{"exists":false}`, string(body))
}

func TestExport_NotConfigured(t *testing.T) {
	a, _ := newTestAPI(t)
	bob := a.signup("bob")

	status, body := a.do(http.MethodGet, "/api/messages/export", bob.Token, "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "Export storage not configured", errorOf(t, body))
}

func TestGoogleRoutes_OnlyWhenEnabled(t *testing.T) {
	a, _ := newTestAPI(t)
	status, _ := a.do(http.MethodGet, "/api/auth/google/login", "", "")
	assert.Equal(t, http.StatusNotFound, status)

	g := services.NewGoogleAuth(config.GoogleConfig{ClientID: "id", ClientSecret: "secret", RedirectURL: "http://localhost/cb"})
	a, _ = newTestAPI(t, handlers.WithGoogle(g, "http://front.example"))

	req, err := http.NewRequest(http.MethodGet, a.srv.URL+"/api/auth/google/login", nil)
	require.NoError(t, err)
	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }}
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Location"), "accounts.google.com")

	req, err = http.NewRequest(http.MethodGet, a.srv.URL+"/api/auth/google/callback?state=bogus", nil)
	require.NoError(t, err)
	resp, err = client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "http://front.example/login?error=invalid_state", resp.Header.Get("Location"))
}

func TestCORSPreflight(t *testing.T) {
	a, _ := newTestAPI(t)

	req, err := http.NewRequest(http.MethodOptions, a.srv.URL+"/api/messages", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Less(t, resp.StatusCode, 300)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRequestIDHeader(t *testing.T) {
	a, _ := newTestAPI(t)
	resp, err := http.Get(a.srv.URL + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func itoa(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
