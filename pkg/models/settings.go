package models

import (
	"time"

	"github.com/google/uuid"
)

// Settings is the singleton-per-account business profile used on invoices
// and client communication.
type Settings struct {
	ID           uuid.UUID `json:"id"`
	AccountID    uuid.UUID `json:"account_id"`
	OwnerEmail   string    `json:"owner_email"`
	BusinessName string    `json:"business_name"`
	Address      string    `json:"address,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
