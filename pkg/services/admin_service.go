package services

import (
	"context"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"github.com/stridephysio/practice-engine/pkg/auth"
	"github.com/stridephysio/practice-engine/pkg/repositories"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DeleteCounts reports how many rows each entity type lost in a
// delete-all-data call.
type DeleteCounts struct {
	Treatments       int64 `json:"treatments"`
	Appointments     int64 `json:"appointments"`
	Horses           int64 `json:"horses"`
	Clients          int64 `json:"clients"`
	AppointmentTypes int64 `json:"appointment_types"`
	Settings         int64 `json:"settings"`
}

// BackfillResult reports a status backfill pass: how many appointments were
// scanned and how many actually changed.
type BackfillResult struct {
	Scanned int64 `json:"scanned"`
	Updated int64 `json:"updated"`
}

// AdminService holds the destructive and corrective operations that require
// the admin role. Role enforcement happens in the middleware; the service
// still requires an authenticated account so all repository calls stay
// tenant-scoped.
type AdminService interface {
	DeleteAllData(ctx context.Context) (*DeleteCounts, error)
	BackfillAppointmentStatus(ctx context.Context, cutoff string) (*BackfillResult, error)
}

type adminService struct {
	appointmentTypes repositories.AppointmentTypeRepository
	clients          repositories.ClientRepository
	horses           repositories.HorseRepository
	appointments     repositories.AppointmentRepository
	treatments       repositories.TreatmentRepository
	settings         repositories.SettingsRepository
	logger           *zap.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(
	appointmentTypes repositories.AppointmentTypeRepository,
	clients repositories.ClientRepository,
	horses repositories.HorseRepository,
	appointments repositories.AppointmentRepository,
	treatments repositories.TreatmentRepository,
	settings repositories.SettingsRepository,
	logger *zap.Logger,
) AdminService {
	return &adminService{
		appointmentTypes: appointmentTypes,
		clients:          clients,
		horses:           horses,
		appointments:     appointments,
		treatments:       treatments,
		settings:         settings,
		logger:           logger,
	}
}

var _ AdminService = (*adminService)(nil)

// DeleteAllData removes every practice record for the caller's account.
// Deletion runs leaf-first so foreign keys never block a delete.
func (s *adminService) DeleteAllData(ctx context.Context) (*DeleteCounts, error) {
	accountID, _, err := auth.RequireAccountFromContext(ctx)
	if err != nil {
		return nil, err
	}

	counts := &DeleteCounts{}

	if counts.Treatments, err = s.treatments.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("deleting treatments: %w", err)
	}
	if counts.Appointments, err = s.appointments.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("deleting appointments: %w", err)
	}
	if counts.Horses, err = s.horses.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("deleting horses: %w", err)
	}
	if counts.Clients, err = s.clients.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("deleting clients: %w", err)
	}
	if counts.AppointmentTypes, err = s.appointmentTypes.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("deleting appointment types: %w", err)
	}
	if counts.Settings, err = s.settings.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("deleting settings: %w", err)
	}

	s.logger.Info("deleted all account data",
		zap.String("account_id", accountID.String()),
		zap.Int64("treatments", counts.Treatments),
		zap.Int64("appointments", counts.Appointments),
		zap.Int64("horses", counts.Horses),
		zap.Int64("clients", counts.Clients))

	return counts, nil
}

// BackfillAppointmentStatus marks every appointment dated on or before the
// cutoff as completed. Used to correct historical records imported before
// status tracking existed.
func (s *adminService) BackfillAppointmentStatus(ctx context.Context, cutoff string) (*BackfillResult, error) {
	accountID, _, err := auth.RequireAccountFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if !datePattern.MatchString(cutoff) {
		return nil, fmt.Errorf("invalid cutoff date %q, expected YYYY-MM-DD", cutoff)
	}

	scanned, err := s.appointments.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting appointments: %w", err)
	}

	updated, err := s.appointments.CompleteBefore(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("backfilling appointment status: %w", err)
	}

	s.logger.Info("backfilled appointment status",
		zap.String("account_id", accountID.String()),
		zap.String("cutoff", cutoff),
		zap.Int64("scanned", scanned),
		zap.Int64("updated", updated))

	return &BackfillResult{Scanned: scanned, Updated: updated}, nil
}
