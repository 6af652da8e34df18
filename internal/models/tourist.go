package models

import (
	"time"

	"github.com/google/uuid"
)

// Tourist is a registered visitor tracked by the safety dashboard.
// Phone and Aadhaar are optional but globally unique when present; NULLs do
// not collide under the partial behavior of PostgreSQL unique indexes.
type Tourist struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Phone     *string   `gorm:"uniqueIndex" json:"phone"`
	Location  *string   `json:"location"`
	Aadhaar   *string   `gorm:"uniqueIndex" json:"aadhaar"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Alerts []Alert `gorm:"foreignKey:TouristID" json:"alerts,omitempty"`
}
