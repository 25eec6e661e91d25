package models

import "encoding/json"

// Source records are the shapes delivered by the legacy clinic system's
// export. SourceID is the legacy system's identifier; it is never stored as a
// local identifier, only used to build the per-run mapping tables.

// SourceAppointmentType is a legacy appointment type record.
type SourceAppointmentType struct {
	SourceID        string `json:"source_id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
	Color           string `json:"color"`
	Description     string `json:"description"`
}

// SourceClient is a legacy client record.
type SourceClient struct {
	SourceID string `json:"source_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// SourceHorse is a legacy horse record. ClientSourceID references the legacy
// client id and may not resolve; the horse is then created unlinked.
type SourceHorse struct {
	SourceID       string `json:"source_id"`
	Name           string `json:"name"`
	ClientSourceID string `json:"client_source_id"`
	Sex            string `json:"sex"`
	Age            string `json:"age"`
	Discipline     string `json:"discipline"`
	MedicalNotes   string `json:"medical_notes"`
}

// SourceAppointment is a legacy appointment record. StartsAt, when present,
// is a combined ISO-8601 timestamp and takes precedence over the separate
// Date/Time fields.
type SourceAppointment struct {
	SourceID       string   `json:"source_id"`
	StartsAt       string   `json:"starts_at"`
	Date           string   `json:"date"`
	Time           string   `json:"time"`
	ClientSourceID string   `json:"client_source_id"`
	HorseSourceIDs []string `json:"horse_source_ids"`
	TypeSourceID   string   `json:"type_source_id"`
	Notes          string   `json:"notes"`
	Status         string   `json:"status"`
}

// SourceTreatment is a legacy treatment record. Notes is raw JSON because the
// legacy export is inconsistent: sometimes a plain string, sometimes a
// structured rich-text document, occasionally junk.
type SourceTreatment struct {
	SourceID            string          `json:"source_id"`
	HorseSourceID       string          `json:"horse_source_id"`
	AppointmentSourceID string          `json:"appointment_source_id"`
	TreatmentTypes      []string        `json:"treatment_types"`
	Notes               json.RawMessage `json:"notes"`
	Status              string          `json:"status"`
	CreatedAt           string          `json:"created_at"`
}

// SourceSettings is the legacy business profile.
type SourceSettings struct {
	BusinessName string `json:"business_name"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
}

// ImportPayload carries the legacy export, parsed wholesale. A stage call
// only needs its own slice populated.
type ImportPayload struct {
	AppointmentTypes []SourceAppointmentType `json:"appointment_types,omitempty"`
	Clients          []SourceClient          `json:"clients,omitempty"`
	Horses           []SourceHorse           `json:"horses,omitempty"`
	Appointments     []SourceAppointment     `json:"appointments,omitempty"`
	Treatments       []SourceTreatment       `json:"treatments,omitempty"`
	Settings         *SourceSettings         `json:"settings,omitempty"`
}
