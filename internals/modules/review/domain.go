package review

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID        uuid.UUID
	Name      string
	PhotoURL  string
	Rating    int32
	Comment   string
	CreatedAt time.Time
}
