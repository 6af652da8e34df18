package models

import (
	"time"

	"github.com/google/uuid"
)

// AlertStatus is the lifecycle state of an alert.
type AlertStatus string

const (
	AlertActive   AlertStatus = "ACTIVE"
	AlertOngoing  AlertStatus = "ONGOING"
	AlertResolved AlertStatus = "RESOLVED"
)

// Valid reports whether s is a known alert status.
func (s AlertStatus) Valid() bool {
	return s == AlertActive || s == AlertOngoing || s == AlertResolved
}

// Alert is a safety incident, optionally tied to a tourist and always
// attributed to the user who raised it. The tourist reference clears on
// tourist deletion rather than cascading.
type Alert struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title       string      `gorm:"not null" json:"title"`
	Description *string     `gorm:"type:text" json:"description"`
	Status      AlertStatus `gorm:"type:varchar(16);not null;default:ACTIVE;index" json:"status"`
	TouristID   *uuid.UUID  `gorm:"type:uuid;index" json:"touristId"`
	Tourist     *Tourist    `gorm:"constraint:OnDelete:SET NULL" json:"tourist,omitempty"`
	CreatedByID uuid.UUID   `gorm:"type:uuid;not null;index" json:"createdById"`
	CreatedBy   *User       `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
