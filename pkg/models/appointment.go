package models

import (
	"time"

	"github.com/google/uuid"
)

// Appointment status values. Live bookings start as scheduled; historical
// records imported from a legacy system default to completed.
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// ValidStatuses contains all valid appointment status values.
var ValidStatuses = []string{StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled}

// IsValidStatus checks if the given status is valid.
func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Appointment is a visit to a yard, covering one client and one or more of
// their horses. Date is a calendar date (YYYY-MM-DD); TimeOfDay is an
// optional HH:MM. References are nullable because imported records may not
// resolve.
type Appointment struct {
	ID                uuid.UUID   `json:"id"`
	AccountID         uuid.UUID   `json:"account_id"`
	OwnerEmail        string      `json:"owner_email"`
	Date              string      `json:"date"`
	TimeOfDay         string      `json:"time,omitempty"`
	ClientID          *uuid.UUID  `json:"client_id,omitempty"`
	HorseIDs          []uuid.UUID `json:"horse_ids"`
	AppointmentTypeID *uuid.UUID  `json:"appointment_type_id,omitempty"`
	Notes             string      `json:"notes,omitempty"`
	Status            string      `json:"status"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}
