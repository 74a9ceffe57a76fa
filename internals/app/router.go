package app

import (
	"net/http"
	"time"

	middle "github.com/iffarurrahat/matrimony-server-mern-project/internals/middleware"
	"github.com/iffarurrahat/matrimony-server-mern-project/internals/modules/account"
	"github.com/iffarurrahat/matrimony-server-mern-project/internals/modules/candidate"
	"github.com/iffarurrahat/matrimony-server-mern-project/internals/modules/review"
	"github.com/iffarurrahat/matrimony-server-mern-project/internals/modules/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func RegisterRoutes(c *Container) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middle.Logger(c.Logger))
	r.Use(middleware.Timeout(5 * time.Second))

	// the frontends send the session cookie cross-origin
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   c.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Matrimony server is running"))
	})

	session.RegisterRoutes(r, c.sessionHandler)

	// TODO: wrap the mutating /users routes with c.sessionGate.Handle once the
	// frontends send credentials on those calls. Today every account endpoint
	// is reachable without a token, same as the deployed behavior.
	account.RegisterRoutes(r, c.accountHandler)
	candidate.RegisterRoutes(r, c.candidateHandler)
	review.RegisterRoutes(r, c.reviewHandler)

	return r
}

// SessionGate exposes the gate for route wiring and tests.
func (c *Container) SessionGate() *middle.SessionGate {
	return c.sessionGate
}
