package account

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Put("/users/{email}", h.RegisterOrRequest)
	r.Put("/users/update/{email}", h.AssignRole)
	r.Get("/user/{email}", h.GetByEmail)
	r.Get("/users", h.List)
}

/*
- PUT: /users/{email}  -> register or self-service upgrade request
	req auth : false
	body : UpsertAccountRequest
	resp : AccountResponse

- PUT: /users/update/{email}   -> privileged role assignment, always writes
	req auth : false
	body : UpsertAccountRequest
	resp : AccountResponse

- GET: /user/{email} -> one account record, null data on miss
	req auth : false
	body : nil
	resp : AccountResponse | null

- GET: /users -> all account records
	req auth : false
	body : nil
	resp : []AccountResponse
*/
