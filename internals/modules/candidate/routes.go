package candidate

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/candidates", h.List)
	r.Post("/candidates", h.Create)
	r.Get("/candidates/{email}", h.ListByHost)
	r.Get("/candidate/{id}", h.GetByID)
}

/*
- GET: /candidates  -> all candidate profiles
- POST: /candidates -> save one candidate profile document
- GET: /candidates/{email} -> profiles hosted by the given email
- GET: /candidate/{id} -> single profile, 400 on malformed id
*/
