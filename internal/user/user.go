package users

import (
	"time"

	"github.com/google/uuid"
)

type ContextKey string

const UserKey ContextKey = "user"

type Role string

const (
	RoleViewer      Role = "viewer"
	RoleScorekeeper Role = "scorekeeper"
	RoleAdmin       Role = "admin"
)

type User struct {
	ID         uuid.UUID `db:"id"`
	Email      string    `db:"email"`
	Username   string    `db:"username"`
	Role       Role      `db:"role"`
	CreatedAt  time.Time `db:"created_at"`
	Provider   *string   `db:"provider"`
	ProviderID *string   `db:"provider_id"`
	AvatarURL  *string   `db:"avatar_url"`
}

// CanRecordResults covers the scorekeeper duties; admins inherit them.
func (u *User) CanRecordResults() bool {
	return u != nil && (u.Role == RoleScorekeeper || u.Role == RoleAdmin)
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
