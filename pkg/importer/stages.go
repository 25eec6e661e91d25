package importer

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stridephysio/practice-engine/pkg/models"
)

// defaultColors is the palette cycled through for appointment types whose
// source record carries no display color.
var defaultColors = []string{
	"#4F46E5", "#0891B2", "#059669", "#D97706", "#DC2626", "#7C3AED",
}

const defaultBusinessName = "My Practice"

// ImportAppointmentTypes runs stage 1. Types have no dependencies; sources
// without a color get one assigned from the default palette.
func (imp *Importer) ImportAppointmentTypes(ctx context.Context, accountID uuid.UUID, ownerEmail string, rows []models.SourceAppointmentType, maps *IDMaps) (*StageResult, error) {
	result := &StageResult{Type: string(KindAppointmentType)}
	pacer := imp.newPacer()

	for i, row := range rows {
		appointmentType := &models.AppointmentType{
			ID:              uuid.New(),
			AccountID:       accountID,
			OwnerEmail:      ownerEmail,
			Name:            CleanString(row.Name),
			DurationMinutes: row.DurationMinutes,
			Color:           CleanString(row.Color),
			Description:     CleanString(row.Description),
		}
		if appointmentType.Color == "" {
			appointmentType.Color = defaultColors[i%len(defaultColors)]
		}

		if err := imp.createPaced(ctx, pacer, func() error {
			return imp.stores.AppointmentTypes.Create(ctx, appointmentType)
		}); err != nil {
			if ctx.Err() != nil {
				return result, err
			}
			imp.recordFailure(result, string(KindAppointmentType), row.SourceID, err)
			continue
		}

		if err := maps.Record(KindAppointmentType, row.SourceID, appointmentType.ID); err != nil {
			imp.recordFailure(result, string(KindAppointmentType), row.SourceID, err)
			continue
		}
		result.Imported++
	}

	result.IDMap = maps.Entries(KindAppointmentType)
	return result, nil
}

// ImportClients runs stage 2. Clients have no dependencies.
func (imp *Importer) ImportClients(ctx context.Context, accountID uuid.UUID, ownerEmail string, rows []models.SourceClient, maps *IDMaps) (*StageResult, error) {
	result := &StageResult{Type: string(KindClient)}
	pacer := imp.newPacer()

	for _, row := range rows {
		client := &models.Client{
			ID:         uuid.New(),
			AccountID:  accountID,
			OwnerEmail: ownerEmail,
			Name:       CleanString(row.Name),
			Email:      CleanString(row.Email),
			Phone:      CleanString(row.Phone),
			Address:    CleanAddress(row.Address),
		}

		if err := imp.createPaced(ctx, pacer, func() error {
			return imp.stores.Clients.Create(ctx, client)
		}); err != nil {
			if ctx.Err() != nil {
				return result, err
			}
			imp.recordFailure(result, string(KindClient), row.SourceID, err)
			continue
		}

		if err := maps.Record(KindClient, row.SourceID, client.ID); err != nil {
			imp.recordFailure(result, string(KindClient), row.SourceID, err)
			continue
		}
		result.Imported++
	}

	result.IDMap = maps.Entries(KindClient)
	return result, nil
}

// ImportHorses runs stage 3. A horse whose source owner id has no resolved
// client is created with a null owner and tallied as unlinked, not failed.
func (imp *Importer) ImportHorses(ctx context.Context, accountID uuid.UUID, ownerEmail string, rows []models.SourceHorse, maps *IDMaps) (*StageResult, error) {
	result := &StageResult{
		Type:    string(KindHorse),
		Details: map[string]int{"linked": 0, "unlinked": 0},
	}
	pacer := imp.newPacer()

	for _, row := range rows {
		horse := &models.Horse{
			ID:           uuid.New(),
			AccountID:    accountID,
			OwnerEmail:   ownerEmail,
			Name:         CleanString(row.Name),
			Sex:          CleanString(row.Sex),
			Age:          CleanString(row.Age),
			Discipline:   CleanString(row.Discipline),
			MedicalNotes: CleanString(row.MedicalNotes),
		}

		linked := false
		if clientID, ok := maps.Resolve(KindClient, row.ClientSourceID); ok {
			horse.ClientID = &clientID
			linked = true
		}

		if err := imp.createPaced(ctx, pacer, func() error {
			return imp.stores.Horses.Create(ctx, horse)
		}); err != nil {
			if ctx.Err() != nil {
				return result, err
			}
			imp.recordFailure(result, string(KindHorse), row.SourceID, err)
			continue
		}

		if err := maps.Record(KindHorse, row.SourceID, horse.ID); err != nil {
			imp.recordFailure(result, string(KindHorse), row.SourceID, err)
			continue
		}
		result.Imported++
		if linked {
			result.Details["linked"]++
		} else {
			result.Details["unlinked"]++
		}
	}

	result.IDMap = maps.Entries(KindHorse)
	return result, nil
}

// ImportAppointments runs stage 4. Horse references that do not resolve are
// dropped from the created appointment's horse list; the record still counts
// as imported. Historical records default to completed status.
func (imp *Importer) ImportAppointments(ctx context.Context, accountID uuid.UUID, ownerEmail string, rows []models.SourceAppointment, maps *IDMaps) (*StageResult, error) {
	result := &StageResult{
		Type:    string(KindAppointment),
		Details: map[string]int{"dropped_horse_refs": 0},
	}
	pacer := imp.newPacer()

	for _, row := range rows {
		date, timeOfDay := appointmentDateTime(row)

		status := CleanString(row.Status)
		if !models.IsValidStatus(status) {
			status = models.StatusCompleted
		}

		appointment := &models.Appointment{
			ID:         uuid.New(),
			AccountID:  accountID,
			OwnerEmail: ownerEmail,
			Date:       date,
			TimeOfDay:  timeOfDay,
			Notes:      CleanString(row.Notes),
			Status:     status,
			HorseIDs:   []uuid.UUID{},
		}

		if clientID, ok := maps.Resolve(KindClient, row.ClientSourceID); ok {
			appointment.ClientID = &clientID
		}
		if typeID, ok := maps.Resolve(KindAppointmentType, row.TypeSourceID); ok {
			appointment.AppointmentTypeID = &typeID
		}
		for _, horseSourceID := range row.HorseSourceIDs {
			if horseID, ok := maps.Resolve(KindHorse, horseSourceID); ok {
				appointment.HorseIDs = append(appointment.HorseIDs, horseID)
			} else {
				result.Details["dropped_horse_refs"]++
			}
		}

		if err := imp.createPaced(ctx, pacer, func() error {
			return imp.stores.Appointments.Create(ctx, appointment)
		}); err != nil {
			if ctx.Err() != nil {
				return result, err
			}
			imp.recordFailure(result, string(KindAppointment), row.SourceID, err)
			continue
		}

		if err := maps.Record(KindAppointment, row.SourceID, appointment.ID); err != nil {
			imp.recordFailure(result, string(KindAppointment), row.SourceID, err)
			continue
		}
		result.Imported++
	}

	result.IDMap = maps.Entries(KindAppointment)
	return result, nil
}

// ImportTreatments runs stage 5. Horse and appointment references are
// nullable; notes are normalized from whatever shape the legacy export
// delivered. Historical records default to completed status.
func (imp *Importer) ImportTreatments(ctx context.Context, accountID uuid.UUID, ownerEmail string, rows []models.SourceTreatment, maps *IDMaps) (*StageResult, error) {
	result := &StageResult{Type: string(KindTreatment)}
	pacer := imp.newPacer()

	for _, row := range rows {
		status := CleanString(row.Status)
		if !models.IsValidStatus(status) {
			status = models.StatusCompleted
		}

		treatment := &models.Treatment{
			ID:             uuid.New(),
			AccountID:      accountID,
			OwnerEmail:     ownerEmail,
			TreatmentTypes: row.TreatmentTypes,
			Notes:          normalizeTreatmentNotes(row.Notes),
			Status:         status,
		}
		if treatment.TreatmentTypes == nil {
			treatment.TreatmentTypes = []string{}
		}
		// Historical records keep their original creation timestamp; the
		// store falls back to now() when the export carried none.
		if createdAt, ok := ParseTimestamp(row.CreatedAt); ok {
			treatment.CreatedAt = createdAt
		}

		if horseID, ok := maps.Resolve(KindHorse, row.HorseSourceID); ok {
			treatment.HorseID = &horseID
		}
		if appointmentID, ok := maps.Resolve(KindAppointment, row.AppointmentSourceID); ok {
			treatment.AppointmentID = &appointmentID
		}

		if err := imp.createPaced(ctx, pacer, func() error {
			return imp.stores.Treatments.Create(ctx, treatment)
		}); err != nil {
			if ctx.Err() != nil {
				return result, err
			}
			imp.recordFailure(result, string(KindTreatment), row.SourceID, err)
			continue
		}

		if err := maps.Record(KindTreatment, row.SourceID, treatment.ID); err != nil {
			imp.recordFailure(result, string(KindTreatment), row.SourceID, err)
			continue
		}
		result.Imported++
	}

	result.IDMap = maps.Entries(KindTreatment)
	return result, nil
}

// ImportSettings runs stage 6: a single upserted business profile per
// account, with a fallback business name when the source left it blank.
func (imp *Importer) ImportSettings(ctx context.Context, accountID uuid.UUID, ownerEmail string, row models.SourceSettings) (*StageResult, error) {
	result := &StageResult{Type: "settings", IDMap: map[string]string{}}

	settings := &models.Settings{
		ID:           uuid.New(),
		AccountID:    accountID,
		OwnerEmail:   ownerEmail,
		BusinessName: CleanString(row.BusinessName),
		Address:      CleanAddress(row.Address),
		Phone:        CleanString(row.Phone),
	}
	if settings.BusinessName == "" {
		settings.BusinessName = defaultBusinessName
	}

	if err := imp.stores.Settings.Upsert(ctx, settings); err != nil {
		imp.recordFailure(result, "settings", "settings", err)
		return result, nil
	}

	result.Imported = 1
	return result, nil
}

// createPaced performs one store write and then applies the pacer delay.
// The delay runs whether or not the write succeeded, so failed records still
// count against the write budget.
func (imp *Importer) createPaced(ctx context.Context, pacer *Pacer, create func() error) error {
	createErr := create()
	if err := pacer.RecordWritten(ctx); err != nil {
		return err
	}
	return createErr
}

func (imp *Importer) recordFailure(result *StageResult, entityType, sourceID string, err error) {
	imp.logger.Warn("import record failed",
		zap.String("type", entityType),
		zap.String("source_id", sourceID),
		zap.Error(err))
	result.Failed++
	result.Failures = append(result.Failures, RecordFailure{SourceID: sourceID, Error: err.Error()})
}

// appointmentDateTime derives the calendar date and optional time for a
// source appointment. A combined timestamp takes precedence over the
// separate date/time fields.
func appointmentDateTime(row models.SourceAppointment) (string, string) {
	if startsAt := CleanString(row.StartsAt); startsAt != "" {
		return ParseDate(startsAt), ParseTime(startsAt)
	}
	return CleanString(row.Date), CleanString(row.Time)
}

// normalizeTreatmentNotes handles the legacy export's inconsistent notes
// field: a plain string is used as-is, a structured rich-text document is
// flattened, anything else becomes empty.
func normalizeTreatmentNotes(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return CleanString(plain)
	}

	var doc NotesDocument
	if err := json.Unmarshal(raw, &doc); err == nil && len(doc.Sections) > 0 {
		return FlattenRichNotes(doc)
	}

	return ""
}
