package account

import "time"

type UpsertAccountRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Name     *string `json:"name"`
	PhotoURL *string `json:"photoURL"`
	Role     *string `json:"role"`
	Status   *string `json:"status"`
}

func (r UpsertAccountRequest) toPatch() Patch {
	return Patch{
		Email:    r.Email,
		Name:     r.Name,
		PhotoURL: r.PhotoURL,
		Role:     r.Role,
		Status:   r.Status,
	}
}

type AccountResponse struct {
	Email     string     `json:"email"`
	Name      string     `json:"name,omitempty"`
	PhotoURL  string     `json:"photoURL,omitempty"`
	Role      string     `json:"role,omitempty"`
	Status    string     `json:"status,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func toResponse(a *Account) *AccountResponse {
	if a == nil {
		return nil
	}
	return &AccountResponse{
		Email:     a.Email,
		Name:      a.Name,
		PhotoURL:  a.PhotoURL,
		Role:      a.Role,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
