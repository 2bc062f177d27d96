package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"
	"unicode/utf8"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/geezit/geezit-server/internal/apperrors"
	"github.com/geezit/geezit-server/internal/auth"
	"github.com/geezit/geezit-server/internal/config"
	"github.com/geezit/geezit-server/internal/models"
	"github.com/geezit/geezit-server/internal/repositories"
	"github.com/geezit/geezit-server/internal/utils"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var (
	ErrGoogleEmailMissing   = errors.New("google account has no verified email")
	ErrGoogleSubjectMissing = errors.New("google account has no subject id")
)

type GoogleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// GoogleAuth wraps the OAuth2 code exchange and userinfo lookup.
type GoogleAuth struct {
	conf        *oauth2.Config
	userInfoURL string
}

func NewGoogleAuth(cfg config.GoogleConfig) *GoogleAuth {
	return &GoogleAuth{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}
}

func (g *GoogleAuth) AuthCodeURL(state string) string {
	return g.conf.AuthCodeURL(state)
}

// FetchUser exchanges code for a token and reads the account's profile.
func (g *GoogleAuth) FetchUser(ctx context.Context, code string) (*GoogleUser, error) {
	token, err := g.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.conf.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("get user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get user info: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read user info: %w", err)
	}

	var user GoogleUser
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("parse user info: %w", err)
	}
	if user.Email == "" || !user.VerifiedEmail {
		return nil, ErrGoogleEmailMissing
	}
	return &user, nil
}

// SignInWithGoogle finds the account linked to the Google subject, creating
// one with a derived username and an unusable random password when none
// exists. Accounts are never matched by email, since any user can put any
// address on their profile. The Google email is stored only when no other
// account holds it.
func (s *Service) SignInWithGoogle(ctx context.Context, gu *GoogleUser) (*AuthResult, bool, error) {
	if gu.ID == "" {
		return nil, false, ErrGoogleSubjectMissing
	}

	user, err := s.store.UserByGoogleID(ctx, gu.ID)
	if err == nil {
		res, err := s.authResult(user)
		return res, false, err
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, false, apperrors.Internal(fmt.Errorf("load user by google id: %w", err))
	}

	secret, err := utils.GenerateSecureToken(32)
	if err != nil {
		return nil, false, apperrors.Internal(err)
	}
	hash, err := auth.HashPassword(secret)
	if err != nil {
		return nil, false, apperrors.Internal(err)
	}

	email, err := s.freeEmail(ctx, gu.Email)
	if err != nil {
		return nil, false, err
	}

	googleID := gu.ID
	base := UsernameFromEmail(gu.Email)
	for attempt := 0; attempt < 5; attempt++ {
		candidate := base
		if attempt > 0 {
			candidate = fmt.Sprintf("%s%04d", base, rand.IntN(10000))
		}
		user = &models.User{Username: candidate, Email: email, GoogleID: &googleID, PasswordHash: hash}
		err = s.store.CreateUser(ctx, user)
		if err == nil {
			s.log.InfoContext(ctx, "user signed up with google", "user_id", user.ID)
			res, err := s.authResult(user)
			return res, true, err
		}
		if !errors.Is(err, repositories.ErrDuplicate) {
			return nil, false, apperrors.Internal(fmt.Errorf("create user: %w", err))
		}

		// A concurrent callback for the same subject may have won the insert.
		if existing, lookupErr := s.store.UserByGoogleID(ctx, googleID); lookupErr == nil {
			res, err := s.authResult(existing)
			return res, false, err
		}
		if email, err = s.freeEmail(ctx, gu.Email); err != nil {
			return nil, false, err
		}
	}
	return nil, false, apperrors.ErrUsernameTaken
}

// freeEmail returns email when no account holds it yet, nil otherwise.
func (s *Service) freeEmail(ctx context.Context, email string) (*string, error) {
	if email == "" || utf8.RuneCountInString(email) > MaxEmailLength {
		return nil, nil
	}
	taken, err := s.store.EmailTakenByOther(ctx, email, 0)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("check email: %w", err))
	}
	if taken {
		return nil, nil
	}
	return &email, nil
}

// UsernameFromEmail keeps letters, digits and underscores from the local
// part without its +tag, trimmed to leave room for a collision suffix.
func UsernameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	local, _, _ = strings.Cut(local, "+")

	var b strings.Builder
	for _, r := range local {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		}
		if b.Len() == MaxUsernameLength-4 {
			break
		}
	}

	name := b.String()
	if len(name) < MinUsernameLength {
		name += "user"
	}
	return name
}
