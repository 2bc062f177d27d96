package handlers

import (
	"log/slog"
	"net/http"

	"github.com/geezit/geezit-server/internal/api/middleware"
	"github.com/geezit/geezit-server/internal/api/services"
	"github.com/geezit/geezit-server/internal/apperrors"
	"github.com/geezit/geezit-server/internal/auth"
	"github.com/geezit/geezit-server/internal/utils"
)

// Handler holds the dependencies every endpoint needs.
type Handler struct {
	svc         *services.Service
	google      *services.GoogleAuth
	frontendURL string
	log         *slog.Logger
}

type Option func(*Handler)

// WithGoogle enables the Google sign-in endpoints, redirecting back to
// frontendURL when done.
func WithGoogle(g *services.GoogleAuth, frontendURL string) Option {
	return func(h *Handler) {
		h.google = g
		h.frontendURL = frontendURL
	}
}

func New(svc *services.Service, log *slog.Logger, opts ...Option) *Handler {
	h := &Handler{svc: svc, log: log}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) GoogleEnabled() bool {
	return h.google != nil
}

// fail writes err as {"error": ...} with the status its kind maps to.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.log.ErrorContext(r.Context(), op+" error",
			"err", err,
			"request_id", middleware.RequestIDFromContext(r.Context()),
		)
	}
	utils.ErrorResponse(w, status, apperrors.PublicMessage(err))
}

func caller(r *http.Request) *auth.Claims {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		// Only reachable if a route skipped RequireAuth.
		panic("handlers: request has no auth claims")
	}
	return claims
}
