package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/infrastructure/auth"
)

// TokenQueryParam carries the session token for websocket upgrades, where
// browsers cannot set an Authorization header.
const TokenQueryParam = "token"

// TokenVerifier validates session tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// caller in the request context.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := extractToken(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, domain.Unauthorized, err.Error())
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				msg := domain.ErrInvalidToken.Error()
				if errors.Is(err, domain.ErrExpiredToken) {
					msg = domain.ErrExpiredToken.Error()
				}
				writeError(w, http.StatusUnauthorized, domain.Unauthorized, msg)
				return
			}

			actor := claims.Actor()
			zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("user_id", actor.ID)
			})

			ctx := domain.ContextWithActor(r.Context(), actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects callers without the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := domain.ActorFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, domain.Unauthorized, domain.ErrUnauthenticated.Error())
			return
		}

		if !actor.IsAdmin() {
			writeError(w, http.StatusForbidden, domain.Unauthorized, domain.ErrInsufficientRole.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}

func extractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		if isWebsocketUpgrade(r) {
			if token := r.URL.Query().Get(TokenQueryParam); token != "" {
				return token, nil
			}
		}
		return "", errors.New("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}

func isWebsocketUpgrade(r *http.Request) bool {
	return r.Method == http.MethodGet && strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}
