package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the access level of a platform user.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleAuthority Role = "AUTHORITY"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleAuthority
}

// User represents an administrator or authority account.
// Email is stored in canonical form (trimmed, lowercased) so the unique
// index enforces case-insensitive uniqueness.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Role      Role      `gorm:"type:varchar(16);not null;default:AUTHORITY;index" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
