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

// AppointmentTypeRepository provides data access for appointment types.
// All queries run on the tenant-scoped connection, so row-level security
// confines them to the caller's account.
type AppointmentTypeRepository interface {
	Create(ctx context.Context, appointmentType *models.AppointmentType) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.AppointmentType, error)
	List(ctx context.Context) ([]*models.AppointmentType, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type appointmentTypeRepository struct{}

// NewAppointmentTypeRepository creates a new AppointmentTypeRepository.
func NewAppointmentTypeRepository() AppointmentTypeRepository {
	return &appointmentTypeRepository{}
}

var _ AppointmentTypeRepository = (*appointmentTypeRepository)(nil)

func (r *appointmentTypeRepository) Create(ctx context.Context, appointmentType *models.AppointmentType) error {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return fmt.Errorf("no tenant scope in context")
	}

	now := time.Now()
	if appointmentType.ID == uuid.Nil {
		appointmentType.ID = uuid.New()
	}

	query := `
		INSERT INTO practice_appointment_types (
			id, account_id, owner_email, name, duration_minutes, color,
			description, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := scope.Conn.QueryRow(ctx, query,
		appointmentType.ID,
		appointmentType.AccountID,
		appointmentType.OwnerEmail,
		appointmentType.Name,
		appointmentType.DurationMinutes,
		appointmentType.Color,
		appointmentType.Description,
		now,
		now,
	).Scan(&appointmentType.CreatedAt, &appointmentType.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create appointment type: %w", err)
	}

	return nil
}

func (r *appointmentTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.AppointmentType, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant scope in context")
	}

	query := `
		SELECT id, account_id, owner_email, name, duration_minutes, color,
		       description, created_at, updated_at
		FROM practice_appointment_types
		WHERE id = $1`

	appointmentType := &models.AppointmentType{}
	err := scope.Conn.QueryRow(ctx, query, id).Scan(
		&appointmentType.ID,
		&appointmentType.AccountID,
		&appointmentType.OwnerEmail,
		&appointmentType.Name,
		&appointmentType.DurationMinutes,
		&appointmentType.Color,
		&appointmentType.Description,
		&appointmentType.CreatedAt,
		&appointmentType.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get appointment type: %w", err)
	}

	return appointmentType, nil
}

func (r *appointmentTypeRepository) List(ctx context.Context) ([]*models.AppointmentType, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant scope in context")
	}

	query := `
		SELECT id, account_id, owner_email, name, duration_minutes, color,
		       description, created_at, updated_at
		FROM practice_appointment_types
		ORDER BY name`

	rows, err := scope.Conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointment types: %w", err)
	}
	defer rows.Close()

	var appointmentTypes []*models.AppointmentType
	for rows.Next() {
		appointmentType := &models.AppointmentType{}
		if err := rows.Scan(
			&appointmentType.ID,
			&appointmentType.AccountID,
			&appointmentType.OwnerEmail,
			&appointmentType.Name,
			&appointmentType.DurationMinutes,
			&appointmentType.Color,
			&appointmentType.Description,
			&appointmentType.CreatedAt,
			&appointmentType.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan appointment type: %w", err)
		}
		appointmentTypes = append(appointmentTypes, appointmentType)
	}

	return appointmentTypes, rows.Err()
}

func (r *appointmentTypeRepository) DeleteAll(ctx context.Context) (int64, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return 0, fmt.Errorf("no tenant scope in context")
	}

	result, err := scope.Conn.Exec(ctx, `DELETE FROM practice_appointment_types`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete appointment types: %w", err)
	}

	return result.RowsAffected(), nil
}
