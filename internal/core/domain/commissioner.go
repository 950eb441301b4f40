package domain

import (
	"time"

	"github.com/google/uuid"
)

// Commissioner grants a user administrative rights over one election. The
// creator flag is stored explicitly rather than derived from creation order.
type Commissioner struct {
	ID         uuid.UUID  `json:"id"`
	ElectionID uuid.UUID  `json:"election_id"`
	UserID     uuid.UUID  `json:"user_id"`
	IsCreator  bool       `json:"is_creator"`
	CreatedAt  time.Time  `json:"created_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}
