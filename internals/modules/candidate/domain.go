package candidate

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Candidate is a pass-through profile document. The service applies no
// policy to it; the profile body is stored verbatim and the host email is
// lifted out of it for the per-host listing query.
type Candidate struct {
	ID        uuid.UUID
	HostEmail string
	Profile   json.RawMessage
	CreatedAt time.Time
}

type CreateCandidateCmd struct {
	HostEmail string
	Profile   json.RawMessage
}
