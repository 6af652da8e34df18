package types

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	BlockchainID string `json:"blockchainId"`
}

type TouristCreateRequest struct {
	Name     string  `json:"name" validate:"required"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
	Aadhaar  *string `json:"aadhaar"`
}

type TouristUpdateRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
	Aadhaar  *string `json:"aadhaar"`
}

// Fields returns only the supplied columns for a partial update.
func (r TouristUpdateRequest) Fields() map[string]any {
	f := map[string]any{}
	if r.Name != nil {
		f["name"] = *r.Name
	}
	if r.Phone != nil {
		f["phone"] = *r.Phone
	}
	if r.Location != nil {
		f["location"] = *r.Location
	}
	if r.Aadhaar != nil {
		f["aadhaar"] = *r.Aadhaar
	}
	return f
}

type UserCreateRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,oneof=ADMIN AUTHORITY"`
}

// Normalize trims name and email and lowercases email so the stored form is
// canonical; uniqueness comparisons then work case-insensitively.
func (r *UserCreateRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type UserUpdateRequest struct {
	Name *string `json:"name"`
	Role *string `json:"role" validate:"omitempty,oneof=ADMIN AUTHORITY"`
}

func (r UserUpdateRequest) Fields() map[string]any {
	f := map[string]any{}
	if r.Name != nil {
		f["name"] = strings.TrimSpace(*r.Name)
	}
	if r.Role != nil {
		f["role"] = *r.Role
	}
	return f
}

type AlertCreateRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description *string    `json:"description"`
	Status      string     `json:"status" validate:"omitempty,oneof=ACTIVE ONGOING RESOLVED"`
	TouristID   *uuid.UUID `json:"touristId"`
	CreatedByID uuid.UUID  `json:"createdById" validate:"required"`
}

type AlertUpdateRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status" validate:"omitempty,oneof=ACTIVE ONGOING RESOLVED"`
	TouristID   *uuid.UUID `json:"touristId"`
}

func (r AlertUpdateRequest) Fields() map[string]any {
	f := map[string]any{}
	if r.Title != nil {
		f["title"] = *r.Title
	}
	if r.Description != nil {
		f["description"] = *r.Description
	}
	if r.Status != nil {
		f["status"] = *r.Status
	}
	if r.TouristID != nil {
		f["tourist_id"] = *r.TouristID
	}
	return f
}

type UsageLogCreateRequest struct {
	Action   string          `json:"action" validate:"required"`
	Metadata json.RawMessage `json:"metadata"`
	UserID   *uuid.UUID      `json:"userId"`
}
