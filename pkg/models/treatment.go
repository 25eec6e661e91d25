package models

import (
	"time"

	"github.com/google/uuid"
)

// Treatment is the clinical record of work done on one horse during one
// appointment. Notes holds plain text; structured rich-text notes from the
// legacy system are flattened to markdown-like text at import time.
type Treatment struct {
	ID             uuid.UUID  `json:"id"`
	AccountID      uuid.UUID  `json:"account_id"`
	OwnerEmail     string     `json:"owner_email"`
	HorseID        *uuid.UUID `json:"horse_id,omitempty"`
	AppointmentID  *uuid.UUID `json:"appointment_id,omitempty"`
	TreatmentTypes []string   `json:"treatment_types"`
	Notes          string     `json:"notes,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
}
