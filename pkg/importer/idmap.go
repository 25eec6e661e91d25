package importer

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/stridephysio/practice-engine/pkg/apperrors"
)

// EntityKind names one of the entity types the pipeline remaps.
// Mapping tables are independent per kind: a client and a horse sharing the
// same legacy id literal never collide.
type EntityKind string

const (
	KindAppointmentType EntityKind = "appointment_type"
	KindClient          EntityKind = "client"
	KindHorse           EntityKind = "horse"
	KindAppointment     EntityKind = "appointment"
	KindTreatment       EntityKind = "treatment"
)

// IDMaps holds the per-kind legacy-id to local-id mapping tables for one
// import run. It is created by the orchestrator and threaded explicitly
// through the stages; there is no package-level mapping state. A new run
// starts empty — the pipeline never detects or merges duplicates against
// previously imported data.
type IDMaps struct {
	tables map[EntityKind]map[string]uuid.UUID
}

// NewIDMaps creates an empty mapping context for a single import run.
func NewIDMaps() *IDMaps {
	return &IDMaps{tables: make(map[EntityKind]map[string]uuid.UUID)}
}

// Record inserts sourceID → localID for the given kind. A mapping is
// immutable once recorded: re-recording the same pair is a no-op, but
// re-recording a source id with a different local id returns
// apperrors.ErrMappingConflict.
func (m *IDMaps) Record(kind EntityKind, sourceID string, localID uuid.UUID) error {
	if sourceID == "" {
		return fmt.Errorf("empty source id for %s", kind)
	}

	table := m.tables[kind]
	if table == nil {
		table = make(map[string]uuid.UUID)
		m.tables[kind] = table
	}

	if existing, ok := table[sourceID]; ok {
		if existing == localID {
			return nil
		}
		return fmt.Errorf("%s %q: %w", kind, sourceID, apperrors.ErrMappingConflict)
	}

	table[sourceID] = localID
	return nil
}

// Resolve returns the local id mapped for (kind, sourceID). The second
// return is false when the source id was never recorded — the caller must
// treat that as "leave the reference empty", never as fatal.
func (m *IDMaps) Resolve(kind EntityKind, sourceID string) (uuid.UUID, bool) {
	if sourceID == "" {
		return uuid.Nil, false
	}
	id, ok := m.tables[kind][sourceID]
	return id, ok
}

// Len returns the number of entries recorded for a kind.
func (m *IDMaps) Len(kind EntityKind) int {
	return len(m.tables[kind])
}

// Entries returns the mapping table for a kind as plain strings, for
// inclusion in a stage response.
func (m *IDMaps) Entries(kind EntityKind) map[string]string {
	out := make(map[string]string, len(m.tables[kind]))
	for sourceID, localID := range m.tables[kind] {
		out[sourceID] = localID.String()
	}
	return out
}

// Merge loads previously produced entries (from an earlier stage call in the
// same logical run) into the mapping context. Conflicting entries are
// rejected the same way Record rejects them.
func (m *IDMaps) Merge(kind EntityKind, entries map[string]string) error {
	for sourceID, localStr := range entries {
		localID, err := uuid.Parse(localStr)
		if err != nil {
			return fmt.Errorf("invalid local id %q for %s %q: %w", localStr, kind, sourceID, err)
		}
		if err := m.Record(kind, sourceID, localID); err != nil {
			return err
		}
	}
	return nil
}
