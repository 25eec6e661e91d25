package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/stridephysio/practice-engine/pkg/apperrors"
	"github.com/stridephysio/practice-engine/pkg/database"
	"github.com/stridephysio/practice-engine/pkg/models"
)

// AppointmentRepository provides data access for appointments. Dates are
// stored as SQL dates and exposed as YYYY-MM-DD strings.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error)
	List(ctx context.Context) ([]*models.Appointment, error)
	CountAll(ctx context.Context) (int64, error)
	CompleteBefore(ctx context.Context, cutoff string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type appointmentRepository struct{}

// NewAppointmentRepository creates a new AppointmentRepository.
func NewAppointmentRepository() AppointmentRepository {
	return &appointmentRepository{}
}

var _ AppointmentRepository = (*appointmentRepository)(nil)

func (r *appointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return fmt.Errorf("no tenant scope in context")
	}

	now := time.Now()
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	if appointment.HorseIDs == nil {
		appointment.HorseIDs = []uuid.UUID{}
	}

	query := `
		INSERT INTO practice_appointments (
			id, account_id, owner_email, date, time_of_day, client_id,
			horse_ids, appointment_type_id, notes, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	err := scope.Conn.QueryRow(ctx, query,
		appointment.ID,
		appointment.AccountID,
		appointment.OwnerEmail,
		appointment.Date,
		appointment.TimeOfDay,
		appointment.ClientID,
		appointment.HorseIDs,
		appointment.AppointmentTypeID,
		appointment.Notes,
		appointment.Status,
		now,
		now,
	).Scan(&appointment.CreatedAt, &appointment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	return nil
}

func (r *appointmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant scope in context")
	}

	query := `
		SELECT id, account_id, owner_email, date, time_of_day, client_id,
		       horse_ids, appointment_type_id, notes, status, created_at, updated_at
		FROM practice_appointments
		WHERE id = $1`

	appointment, err := scanAppointment(scope.Conn.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	return appointment, nil
}

func (r *appointmentRepository) List(ctx context.Context) ([]*models.Appointment, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant scope in context")
	}

	query := `
		SELECT id, account_id, owner_email, date, time_of_day, client_id,
		       horse_ids, appointment_type_id, notes, status, created_at, updated_at
		FROM practice_appointments
		ORDER BY date DESC, time_of_day DESC`

	rows, err := scope.Conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer rows.Close()

	var appointments []*models.Appointment
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appointments = append(appointments, appointment)
	}

	return appointments, rows.Err()
}

func (r *appointmentRepository) CountAll(ctx context.Context) (int64, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return 0, fmt.Errorf("no tenant scope in context")
	}

	var count int64
	err := scope.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM practice_appointments`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}

	return count, nil
}

// CompleteBefore flips every appointment dated on or before the cutoff
// (YYYY-MM-DD) to completed status, skipping those already completed.
// Returns the number of rows updated.
func (r *appointmentRepository) CompleteBefore(ctx context.Context, cutoff string) (int64, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return 0, fmt.Errorf("no tenant scope in context")
	}

	query := `
		UPDATE practice_appointments
		SET status = $1, updated_at = now()
		WHERE date <= $2 AND status != $1`

	result, err := scope.Conn.Exec(ctx, query, models.StatusCompleted, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to backfill appointment status: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *appointmentRepository) DeleteAll(ctx context.Context) (int64, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return 0, fmt.Errorf("no tenant scope in context")
	}

	result, err := scope.Conn.Exec(ctx, `DELETE FROM practice_appointments`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete appointments: %w", err)
	}

	return result.RowsAffected(), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row rowScanner) (*models.Appointment, error) {
	appointment := &models.Appointment{}
	var date time.Time

	err := row.Scan(
		&appointment.ID,
		&appointment.AccountID,
		&appointment.OwnerEmail,
		&date,
		&appointment.TimeOfDay,
		&appointment.ClientID,
		&appointment.HorseIDs,
		&appointment.AppointmentTypeID,
		&appointment.Notes,
		&appointment.Status,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	appointment.Date = date.Format("2006-01-02")
	return appointment, nil
}
