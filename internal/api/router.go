package api

import (
	"log/slog"
	"net/http"

	_ "github.com/geezit/geezit-server/docs"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/geezit/geezit-server/internal/api/handlers"
	"github.com/geezit/geezit-server/internal/api/middleware"
	"github.com/rs/cors"
)

type route struct {
	pattern   string
	handler   http.HandlerFunc
	protected bool
}

func routes(h *handlers.Handler) []route {
	table := []route{
		{"POST /api/auth/signup", h.Signup, false},
		{"POST /api/auth/login", h.Login, false},

		{"GET /api/user/profile", h.GetProfile, true},
		{"PUT /api/user/profile", h.UpdateProfile, true},

		{"POST /api/messages", h.SendMessage, false},
		{"GET /api/messages", h.ListMessages, true},
		{"GET /api/messages/export", h.ExportMessages, true},

		{"POST /api/hearts", h.ToggleHeart, true},
		{"GET /api/hearts", h.ListHearts, true},

		{"GET /api/users/{username}", h.UserExists, false},
		{"GET /api/health", h.Health, false},
	}
	if h.GoogleEnabled() {
		table = append(table,
			route{"GET /api/auth/google/login", h.GoogleLogin, false},
			route{"GET /api/auth/google/callback", h.GoogleCallback, false},
		)
	}
	return table
}

// SetupRouter maps every method+path to its handler and wraps the mux with
// CORS, panic recovery, request logging and request ids.
func SetupRouter(h *handlers.Handler, tokens middleware.TokenVerifier, corsOpts cors.Options, log *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(tokens)

	for _, rt := range routes(h) {
		var handler http.Handler = rt.handler
		if rt.protected {
			handler = requireAuth(handler)
		}
		mux.Handle(rt.pattern, handler)
	}

	mux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	log.Info("router initialized")
	var handler http.Handler = cors.New(corsOpts).Handler(mux)
	handler = middleware.Recover(log)(handler)
	handler = middleware.Logger(log)(handler)
	handler = middleware.RequestID(handler)
	return handler
}
