package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iffarurrahat/matrimony-server-mern-project/config"
	"github.com/iffarurrahat/matrimony-server-mern-project/internals/security"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(env string) (*Handler, *security.TokenService) {
	cfg := &config.Config{
		Env: env,
		Auth: &config.AuthConfig{
			Secret:     "session-test-secret",
			ExpiryDays: 365,
			CookieName: "token",
		},
	}
	tokenSvc := security.NewTokenService(cfg.Auth)
	return NewHandler(tokenSvc, cfg), tokenSvc
}

func issueRequest(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	RegisterRoutes(r, h)

	req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestIssueTokenSetsSessionCookie(t *testing.T) {
	t.Parallel()
	h, tokenSvc := newTestHandler("development")

	rec := issueRequest(t, h, `{"email":"a@x.com","name":"Asha"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)

	cookie := sessionCookie(t, rec)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Positive(t, cookie.MaxAge)

	// the cookie value is a verifiable token carrying the body claims
	claims, err := tokenSvc.ValidateToken(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email())
}

func TestIssueTokenProductionCookieAttributes(t *testing.T) {
	t.Parallel()
	h, _ := newTestHandler("production")

	rec := issueRequest(t, h, `{"email":"a@x.com"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(t, rec)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
}

func TestIssueTokenRejectsBadBody(t *testing.T) {
	t.Parallel()
	h, _ := newTestHandler("development")

	rec := issueRequest(t, h, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
