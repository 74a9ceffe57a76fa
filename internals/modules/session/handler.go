package session

import (
	"encoding/json"
	"net/http"

	"github.com/iffarurrahat/matrimony-server-mern-project/config"
	"github.com/iffarurrahat/matrimony-server-mern-project/internals/security"
	"github.com/iffarurrahat/matrimony-server-mern-project/pkg/apperror"
	"github.com/iffarurrahat/matrimony-server-mern-project/pkg/utils"

	"github.com/go-chi/chi/v5/middleware"
)

type Handler struct {
	tokenSvc   *security.TokenService
	cookieName string
	production bool
}

func NewHandler(tokenSvc *security.TokenService, cfg *config.Config) *Handler {
	return &Handler{
		tokenSvc:   tokenSvc,
		cookieName: cfg.Auth.CookieName,
		production: cfg.IsProduction(),
	}
}

// IssueToken signs the request body into a session token and hands it back
// as an http-only cookie. The body is whatever identity payload the frontend
// sends; nothing here is trusted until the token comes back on a later call.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	var claims security.SessionClaims
	if err := json.NewDecoder(r.Body).Decode(&claims); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "")
		return
	}

	token, err := h.tokenSvc.IssueToken(claims)
	if err != nil {
		utils.FromAppError(w, reqID, apperror.New(apperror.Internal, "handler.session.issue_token", err).
			WithMessage("internal server error"))
		return
	}

	http.SetCookie(w, h.sessionCookie(token))

	utils.WriteJSON(w, http.StatusOK, reqID, utils.TokenIssued, true)
}

// sessionCookie builds the carrier. Cross-site frontends need SameSite=None
// (which browsers only accept together with Secure), so production runs
// strict-less; development keeps Strict without Secure for plain-http use.
func (h *Handler) sessionCookie(token string) *http.Cookie {
	sameSite := http.SameSiteStrictMode
	if h.production {
		sameSite = http.SameSiteNoneMode
	}

	return &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenSvc.Expiry().Seconds()),
		HttpOnly: true,
		Secure:   h.production,
		SameSite: sameSite,
	}
}
