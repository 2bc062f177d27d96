package services

import (
	"log/slog"

	"github.com/geezit/geezit-server/internal/auth"
	"github.com/geezit/geezit-server/internal/repositories"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 6
	MaxEmailLength    = 100
)

// Service implements the account, message and heart operations on top of
// an explicitly passed store.
type Service struct {
	store   *repositories.Store
	tokens  *auth.TokenIssuer
	exports repositories.ObjectStore
	log     *slog.Logger
}

type Option func(*Service)

// WithExportStore enables inbox exports to object storage.
func WithExportStore(store repositories.ObjectStore) Option {
	return func(s *Service) { s.exports = store }
}

func New(store *repositories.Store, tokens *auth.TokenIssuer, log *slog.Logger, opts ...Option) *Service {
	s := &Service{store: store, tokens: tokens, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
