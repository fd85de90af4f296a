package middlewares

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"readtag/internal/services"
	"readtag/internal/utils"
)

type accessTokenKey struct{}

// RequireSession rejects requests without a usable session cookie and stores
// the access token in the request context for the handlers.
func RequireSession(sessions services.SessionService) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := sessions.Token(r)
			if !ok {
				log.Debug().Str("path", r.URL.Path).Msg("Request without access token cookie")
				utils.SendJSONError(w, "Missing Readwise access token cookie", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithAccessToken(r.Context(), token)))
		})
	}
}

func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, accessTokenKey{}, token)
}

// AccessToken returns the token RequireSession stored in ctx.
func AccessToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(accessTokenKey{}).(string)
	return token, ok && token != ""
}
