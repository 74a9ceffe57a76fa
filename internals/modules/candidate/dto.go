package candidate

import (
	"encoding/json"
	"time"
)

// hostEnvelope picks the host email out of an otherwise opaque profile body.
type hostEnvelope struct {
	Host struct {
		Email string `json:"email"`
	} `json:"host"`
}

type CandidateResponse struct {
	ID        string          `json:"id"`
	HostEmail string          `json:"hostEmail,omitempty"`
	Profile   json.RawMessage `json:"profile"`
	CreatedAt time.Time       `json:"createdAt"`
}

func toResponse(c *Candidate) *CandidateResponse {
	if c == nil {
		return nil
	}
	return &CandidateResponse{
		ID:        c.ID.String(),
		HostEmail: c.HostEmail,
		Profile:   c.Profile,
		CreatedAt: c.CreatedAt,
	}
}
