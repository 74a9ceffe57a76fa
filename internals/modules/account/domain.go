package account

import "time"

// StatusRequested is the only status value with behavioral meaning: it marks
// an outstanding self-service role-upgrade ask and is the one escape hatch
// that lets a member write to their own record after creation.
const StatusRequested = "Requested"

type Account struct {
	Email     string
	Name      string
	PhotoURL  string
	Role      string
	Status    string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Patch carries the field values of one reconciliation request. A nil field
// means "not supplied, preserve whatever is stored". The embedded Email is a
// plain field value written verbatim into the record on every branch:
// existing records are targeted by the path email, never by this one, but
// when a create inserts a row this value is the stored identity.
type Patch struct {
	Email    *string
	Name     *string
	PhotoURL *string
	Role     *string
	Status   *string
}

func (p Patch) IsUpgradeRequest() bool {
	return p.Status != nil && *p.Status == StatusRequested
}
