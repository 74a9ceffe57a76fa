package middle

/**
- Work of this file -> session gate:
	- Pulls the token out of the session cookie
	- Validates it
	- Stores claims in context
	- Exposes a helper to retrieve claims
**/

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iffarurrahat/matrimony-server-mern-project/internals/security"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type userCtxKeyType struct{}

var userCtxKey = userCtxKeyType{}

type SessionGate struct {
	tokenSvc   *security.TokenService
	cookieName string
	logger     *zerolog.Logger
}

func NewSessionGate(tokenSvc *security.TokenService, cookieName string, logger *zerolog.Logger) *SessionGate {
	return &SessionGate{
		tokenSvc:   tokenSvc,
		cookieName: cookieName,
		logger:     logger,
	}
}

func (g *SessionGate) Handle(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		reqID := middleware.GetReqID(ctx)

		cookie, err := r.Cookie(g.cookieName)
		if err != nil || cookie.Value == "" {
			g.deny(w)
			return
		}

		claims, err := g.tokenSvc.ValidateToken(cookie.Value)
		if err != nil {
			g.logger.Debug().
				Str("request_id", reqID).
				Err(err).
				Msg("session token rejected")
			g.deny(w)
			return
		}

		newCtx := context.WithValue(ctx, userCtxKey, claims)
		next.ServeHTTP(w, r.WithContext(newCtx))
	}

	return http.HandlerFunc(fn)
}

// deny replies with the exact body the frontends already match on.
func (g *SessionGate) deny(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	if err := json.NewEncoder(w).Encode(map[string]string{"message": "unauthorized access"}); err != nil {
		g.logger.Error().Err(err).Msg("error in encoding unauthorized response")
	}
}

func UserFromContext(ctx context.Context) (security.SessionClaims, bool) {
	claims, ok := ctx.Value(userCtxKey).(security.SessionClaims)
	return claims, ok
}
