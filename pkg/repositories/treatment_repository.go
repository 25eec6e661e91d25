package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stridephysio/practice-engine/pkg/database"
	"github.com/stridephysio/practice-engine/pkg/models"
)

// TreatmentRepository provides data access for treatment records.
type TreatmentRepository interface {
	Create(ctx context.Context, treatment *models.Treatment) error
	ListByHorse(ctx context.Context, horseID uuid.UUID) ([]*models.Treatment, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type treatmentRepository struct{}

// NewTreatmentRepository creates a new TreatmentRepository.
func NewTreatmentRepository() TreatmentRepository {
	return &treatmentRepository{}
}

var _ TreatmentRepository = (*treatmentRepository)(nil)

func (r *treatmentRepository) Create(ctx context.Context, treatment *models.Treatment) error {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return fmt.Errorf("no tenant scope in context")
	}

	if treatment.ID == uuid.Nil {
		treatment.ID = uuid.New()
	}
	if treatment.TreatmentTypes == nil {
		treatment.TreatmentTypes = []string{}
	}

	// Imported historical treatments carry their original creation time.
	createdAt := treatment.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query := `
		INSERT INTO practice_treatments (
			id, account_id, owner_email, horse_id, appointment_id,
			treatment_types, notes, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`

	err := scope.Conn.QueryRow(ctx, query,
		treatment.ID,
		treatment.AccountID,
		treatment.OwnerEmail,
		treatment.HorseID,
		treatment.AppointmentID,
		treatment.TreatmentTypes,
		treatment.Notes,
		treatment.Status,
		createdAt,
	).Scan(&treatment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create treatment: %w", err)
	}

	return nil
}

func (r *treatmentRepository) ListByHorse(ctx context.Context, horseID uuid.UUID) ([]*models.Treatment, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant scope in context")
	}

	query := `
		SELECT id, account_id, owner_email, horse_id, appointment_id,
		       treatment_types, notes, status, created_at
		FROM practice_treatments
		WHERE horse_id = $1
		ORDER BY created_at DESC`

	rows, err := scope.Conn.Query(ctx, query, horseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list treatments: %w", err)
	}
	defer rows.Close()

	var treatments []*models.Treatment
	for rows.Next() {
		treatment := &models.Treatment{}
		if err := rows.Scan(
			&treatment.ID,
			&treatment.AccountID,
			&treatment.OwnerEmail,
			&treatment.HorseID,
			&treatment.AppointmentID,
			&treatment.TreatmentTypes,
			&treatment.Notes,
			&treatment.Status,
			&treatment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan treatment: %w", err)
		}
		treatments = append(treatments, treatment)
	}

	return treatments, rows.Err()
}

func (r *treatmentRepository) DeleteAll(ctx context.Context) (int64, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return 0, fmt.Errorf("no tenant scope in context")
	}

	result, err := scope.Conn.Exec(ctx, `DELETE FROM practice_treatments`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete treatments: %w", err)
	}

	return result.RowsAffected(), nil
}
