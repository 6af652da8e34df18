package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UsageLog records a single dashboard action, optionally attributed to a
// user. Metadata is an arbitrary JSON payload supplied by the caller.
type UsageLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Action    string         `gorm:"not null;index" json:"action"`
	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
	UserID    *uuid.UUID     `gorm:"type:uuid;index" json:"userId"`
	User      *User          `gorm:"constraint:OnDelete:SET NULL" json:"user,omitempty"`
	CreatedAt time.Time      `gorm:"index" json:"createdAt"`
}
