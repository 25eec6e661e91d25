package importer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stridephysio/practice-engine/pkg/models"
)

// The stage stores are the narrow slices of the repository layer the
// pipeline writes through. It only ever creates; reads and updates stay with
// the live CRUD paths.
type AppointmentTypeStore interface {
	Create(ctx context.Context, appointmentType *models.AppointmentType) error
}

type ClientStore interface {
	Create(ctx context.Context, client *models.Client) error
}

type HorseStore interface {
	Create(ctx context.Context, horse *models.Horse) error
}

type AppointmentStore interface {
	Create(ctx context.Context, appointment *models.Appointment) error
}

type TreatmentStore interface {
	Create(ctx context.Context, treatment *models.Treatment) error
}

type SettingsStore interface {
	Upsert(ctx context.Context, settings *models.Settings) error
}

// Stores bundles the per-entity write interfaces the pipeline needs.
type Stores struct {
	AppointmentTypes AppointmentTypeStore
	Clients          ClientStore
	Horses           HorseStore
	Appointments     AppointmentStore
	Treatments       TreatmentStore
	Settings         SettingsStore
}

// RecordFailure captures one rejected source record: the legacy id and the
// store's error message.
type RecordFailure struct {
	SourceID string `json:"source_id"`
	Error    string `json:"error"`
}

// StageResult is the outcome of one stage over one batch. IDMap holds only
// the entries this stage created; Details carries entity-specific secondary
// tallies such as linked vs unlinked horses.
type StageResult struct {
	Type     string            `json:"type"`
	Imported int               `json:"imported"`
	Failed   int               `json:"failed"`
	IDMap    map[string]string `json:"idMap"`
	Details  map[string]int    `json:"details,omitempty"`
	Failures []RecordFailure   `json:"failures,omitempty"`
}

// Importer runs the six dependency-ordered import stages. Stages execute
// strictly sequentially and process records one at a time in source order so
// that pacing is meaningful and failures attribute to a single record.
// Mapping state lives in the caller-owned IDMaps, never in the Importer.
type Importer struct {
	stores Stores
	logger *zap.Logger

	recordDelay time.Duration
	burstPause  time.Duration
	burstSize   int
}

// NewImporter builds the pipeline over the given stores. The delay values
// come straight from configuration.
func NewImporter(stores Stores, recordDelay, burstPause time.Duration, burstSize int, logger *zap.Logger) *Importer {
	return &Importer{
		stores:      stores,
		logger:      logger,
		recordDelay: recordDelay,
		burstPause:  burstPause,
		burstSize:   burstSize,
	}
}

func (imp *Importer) newPacer() *Pacer {
	return NewPacer(imp.recordDelay, imp.burstPause, imp.burstSize)
}

// FullResult is the outcome of a complete six-stage run.
type FullResult struct {
	AppointmentTypes *StageResult `json:"appointment_types,omitempty"`
	Clients          *StageResult `json:"clients,omitempty"`
	Horses           *StageResult `json:"horses,omitempty"`
	Appointments     *StageResult `json:"appointments,omitempty"`
	Treatments       *StageResult `json:"treatments,omitempty"`
	Settings         *StageResult `json:"settings,omitempty"`
}

// RunFull executes all six stages over one payload, threading a single
// mapping context so later stages resolve the ids earlier stages created.
// Only cancellation aborts the sequence; per-record failures, including
// duplicated source ids, are reported in the stage results.
func (imp *Importer) RunFull(ctx context.Context, accountID uuid.UUID, ownerEmail string, payload models.ImportPayload) (*FullResult, error) {
	maps := NewIDMaps()
	result := &FullResult{}
	var err error

	if result.AppointmentTypes, err = imp.ImportAppointmentTypes(ctx, accountID, ownerEmail, payload.AppointmentTypes, maps); err != nil {
		return result, err
	}
	if result.Clients, err = imp.ImportClients(ctx, accountID, ownerEmail, payload.Clients, maps); err != nil {
		return result, err
	}
	if result.Horses, err = imp.ImportHorses(ctx, accountID, ownerEmail, payload.Horses, maps); err != nil {
		return result, err
	}
	if result.Appointments, err = imp.ImportAppointments(ctx, accountID, ownerEmail, payload.Appointments, maps); err != nil {
		return result, err
	}
	if result.Treatments, err = imp.ImportTreatments(ctx, accountID, ownerEmail, payload.Treatments, maps); err != nil {
		return result, err
	}
	if payload.Settings != nil {
		if result.Settings, err = imp.ImportSettings(ctx, accountID, ownerEmail, *payload.Settings); err != nil {
			return result, err
		}
	}

	return result, nil
}
