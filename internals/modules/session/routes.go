package session

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/jwt", h.IssueToken)
}

/*
- POST: /jwt  -> issue a session token from the body claims
	req auth : false
	body : arbitrary claims object, at minimum {email}
	resp : success envelope, token travels in the session cookie
*/
