package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog/log"

	"readtag/internal/metrics"
	"readtag/internal/readwise"
)

const (
	SessionCookieName = "readwiseAccessToken"
	sessionMaxAge     = 30 * 24 * 60 * 60
	tokenKey          = "token"
)

// TokenVerifier checks an access token against Readwise.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) error
}

type SessionService interface {
	Token(r *http.Request) (string, bool)
	Save(w http.ResponseWriter, r *http.Request, token string) error
	Clear(w http.ResponseWriter)
	Verify(ctx context.Context, token string) error
}

type SessionOptions struct {
	HashKey  []byte
	BlockKey []byte
	Secure   bool
}

type sessionServiceImpl struct {
	store    *sessions.CookieStore
	verifier TokenVerifier
	secure   bool
}

// NewSessionService keeps the access token in a signed cookie. Without a hash
// key a random one is generated, so cookies do not survive a restart.
func NewSessionService(verifier TokenVerifier, opts SessionOptions) SessionService {
	hashKey := opts.HashKey
	if len(hashKey) == 0 {
		log.Warn().Msg("SESSION_HASH_KEY not set, generating a random key; sessions will not survive a restart")
		hashKey = securecookie.GenerateRandomKey(64)
	}

	var store *sessions.CookieStore
	if len(opts.BlockKey) > 0 {
		store = sessions.NewCookieStore(hashKey, opts.BlockKey)
	} else {
		store = sessions.NewCookieStore(hashKey)
	}
	store.Options = cookieOptions(sessionMaxAge, opts.Secure)
	store.MaxAge(sessionMaxAge)

	return &sessionServiceImpl{store: store, verifier: verifier, secure: opts.Secure}
}

func cookieOptions(maxAge int, secure bool) *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// Token returns the access token carried by the session cookie. A cookie that
// fails to decode, or holds a blank token, counts as absent.
func (s *sessionServiceImpl) Token(r *http.Request) (string, bool) {
	session, err := s.store.New(r, SessionCookieName)
	if err != nil {
		log.Debug().Err(err).Msg("Ignoring undecodable session cookie")
		return "", false
	}
	token, _ := session.Values[tokenKey].(string)
	token = strings.TrimSpace(token)
	return token, token != ""
}

func (s *sessionServiceImpl) Save(w http.ResponseWriter, r *http.Request, token string) error {
	session, _ := s.store.New(r, SessionCookieName)
	session.Values[tokenKey] = strings.TrimSpace(token)
	if err := s.store.Save(r, w, session); err != nil {
		log.Error().Err(err).Msg("Failed to save session cookie")
		return err
	}
	metrics.SessionsCreatedTotal.Inc()
	return nil
}

// Clear expires the session cookie.
func (s *sessionServiceImpl) Clear(w http.ResponseWriter) {
	http.SetCookie(w, sessions.NewCookie(SessionCookieName, "", cookieOptions(-1, s.secure)))
}

func (s *sessionServiceImpl) Verify(ctx context.Context, token string) error {
	err := s.verifier.VerifyToken(ctx, token)
	switch {
	case err == nil:
		metrics.SessionVerificationsTotal.WithLabelValues("valid").Inc()
	case errors.Is(err, readwise.ErrInvalidToken), errors.Is(err, readwise.ErrMissingToken):
		metrics.SessionVerificationsTotal.WithLabelValues("invalid").Inc()
		log.Info().Msg("Readwise rejected access token")
	default:
		metrics.SessionVerificationsTotal.WithLabelValues("error").Inc()
		log.Error().Err(err).Msg("Failed to verify access token")
	}
	return err
}
