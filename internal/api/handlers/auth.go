package handlers

import (
	"crypto/subtle"
	"net/http"
	"net/url"
	"time"

	"github.com/geezit/geezit-server/internal/apperrors"
	"github.com/geezit/geezit-server/internal/utils"
)

const (
	stateCookieName = "geezit_oauth_state"
	stateCookiePath = "/api/auth/google"
	stateCookieTTL  = 10 * time.Minute
)

type credentialsInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/signup
// Signup godoc
// @Summary Create an account
// @Description Registers a username (3+ chars) and password (6+ chars) and returns a bearer token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body credentialsInput true "Credentials"
// @Success 200 {object} services.AuthResult
// @Failure 400 {object} utils.ErrorPayload "Validation failed or username taken"
// @Router /api/auth/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var input credentialsInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		h.fail(w, r, "signup", apperrors.ErrInvalidInput)
		return
	}

	res, err := h.svc.Signup(r.Context(), input.Username, input.Password)
	if err != nil {
		h.fail(w, r, "signup", err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, res)
}

// POST /api/auth/login
// Login godoc
// @Summary Log in
// @Description Exchanges username and password for a bearer token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body credentialsInput true "Credentials"
// @Success 200 {object} services.AuthResult
// @Failure 400 {object} utils.ErrorPayload "Invalid credentials"
// @Router /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var input credentialsInput
	if err := utils.DecodeJSON(r, &input); err != nil {
		h.fail(w, r, "login", apperrors.ErrInvalidInput)
		return
	}

	res, err := h.svc.Login(r.Context(), input.Username, input.Password)
	if err != nil {
		h.fail(w, r, "login", err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, res)
}

// GET /api/auth/google/login
func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	flow := r.URL.Query().Get("redirect") // "login" or "register"
	if flow == "" {
		flow = "login"
	}

	state, err := GenerateState(map[string]string{"flow": flow})
	if err != nil {
		h.fail(w, r, "google login", err)
		return
	}

	// Binds the callback to the browser that started the flow.
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    stateNonce(state),
		Path:     stateCookiePath,
		MaxAge:   int(stateCookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.google.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GET /api/auth/google/callback
func (h *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	nonce, stateData, err := DecodeState(r.FormValue("state"))
	if err != nil {
		h.redirectError(w, r, "invalid_state")
		return
	}

	cookie, err := r.Cookie(stateCookieName)
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Path:     stateCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	if err != nil || subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(nonce)) != 1 {
		h.redirectError(w, r, "invalid_state")
		return
	}

	code := r.FormValue("code")
	if code == "" {
		h.redirectError(w, r, "missing_code")
		return
	}

	gu, err := h.google.FetchUser(r.Context(), code)
	if err != nil {
		h.log.WarnContext(r.Context(), "google sign-in failed", "err", err)
		h.redirectError(w, r, "google_failed")
		return
	}

	res, created, err := h.svc.SignInWithGoogle(r.Context(), gu)
	if err != nil {
		h.log.ErrorContext(r.Context(), "google sign-in error", "err", err)
		h.redirectError(w, r, "server_error")
		return
	}

	status := "success_login"
	if created {
		status = "success_register"
	}
	fragment := url.Values{
		"token":  {res.Token},
		"status": {status},
		"flow":   {stateData["flow"]},
	}
	http.Redirect(w, r, h.frontendURL+"/auth/callback#"+fragment.Encode(), http.StatusTemporaryRedirect)
}

func (h *Handler) redirectError(w http.ResponseWriter, r *http.Request, code string) {
	http.Redirect(w, r, h.frontendURL+"/login?error="+url.QueryEscape(code), http.StatusTemporaryRedirect)
}
