package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleMember  = "member"
	RoleTrainer = "trainer"
	RoleManager = "manager"
)

// User is a read-only copy of a record owned by the facility's user
// directory. The scheduling engine never mutates users.
type User struct {
	ID        uuid.UUID `db:"id"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	Surname   string    `db:"surname"`
	AvatarURL *string   `db:"avatar_url"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// HasRole is the single capability check used by every operation.
func (u *User) HasRole(role string) bool {
	return u.Role == role
}

// Participant is the snapshot of a member embedded into a training's
// roster at enrollment time.
type Participant struct {
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Surname   string    `db:"surname" json:"surname"`
	AvatarURL *string   `db:"avatar_url" json:"avatar_url,omitempty"`
}

// NewParticipant copies the display attributes a roster keeps for a member.
func NewParticipant(u *User) Participant {
	return Participant{
		UserID:    u.ID,
		Name:      u.Name,
		Surname:   u.Surname,
		AvatarURL: u.AvatarURL,
	}
}
