package models

import (
	"time"

	"github.com/google/uuid"
)

// Horse is a patient. ClientID is nil when the owning client is unknown,
// which legitimately happens for records imported from a legacy system
// whose owner could not be resolved ("unlinked").
type Horse struct {
	ID           uuid.UUID  `json:"id"`
	AccountID    uuid.UUID  `json:"account_id"`
	OwnerEmail   string     `json:"owner_email"`
	Name         string     `json:"name"`
	ClientID     *uuid.UUID `json:"client_id,omitempty"`
	Sex          string     `json:"sex,omitempty"`
	Age          string     `json:"age,omitempty"`
	Discipline   string     `json:"discipline,omitempty"`
	MedicalNotes string     `json:"medical_notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
