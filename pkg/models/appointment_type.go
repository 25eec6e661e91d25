package models

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentType is a bookable service offered by the practice
// (e.g. "Initial Assessment", "Follow-up Physio Session").
type AppointmentType struct {
	ID              uuid.UUID `json:"id"`
	AccountID       uuid.UUID `json:"account_id"`
	OwnerEmail      string    `json:"owner_email"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	Color           string    `json:"color"`
	Description     string    `json:"description,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
