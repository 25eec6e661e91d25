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

// HorseRepository provides data access for horses. A horse's client_id may
// be null when the owner was never resolved during import.
type HorseRepository interface {
	Create(ctx context.Context, horse *models.Horse) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Horse, error)
	List(ctx context.Context) ([]*models.Horse, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*models.Horse, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type horseRepository struct{}

// NewHorseRepository creates a new HorseRepository.
func NewHorseRepository() HorseRepository {
	return &horseRepository{}
}

var _ HorseRepository = (*horseRepository)(nil)

func (r *horseRepository) Create(ctx context.Context, horse *models.Horse) error {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return fmt.Errorf("no tenant scope in context")
	}

	now := time.Now()
	if horse.ID == uuid.Nil {
		horse.ID = uuid.New()
	}

	query := `
		INSERT INTO practice_horses (
			id, account_id, owner_email, name, client_id, sex, age,
			discipline, medical_notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	err := scope.Conn.QueryRow(ctx, query,
		horse.ID,
		horse.AccountID,
		horse.OwnerEmail,
		horse.Name,
		horse.ClientID,
		horse.Sex,
		horse.Age,
		horse.Discipline,
		horse.MedicalNotes,
		now,
		now,
	).Scan(&horse.CreatedAt, &horse.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create horse: %w", err)
	}

	return nil
}

func (r *horseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Horse, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant scope in context")
	}

	query := `
		SELECT id, account_id, owner_email, name, client_id, sex, age,
		       discipline, medical_notes, created_at, updated_at
		FROM practice_horses
		WHERE id = $1`

	horse := &models.Horse{}
	err := scope.Conn.QueryRow(ctx, query, id).Scan(
		&horse.ID,
		&horse.AccountID,
		&horse.OwnerEmail,
		&horse.Name,
		&horse.ClientID,
		&horse.Sex,
		&horse.Age,
		&horse.Discipline,
		&horse.MedicalNotes,
		&horse.CreatedAt,
		&horse.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get horse: %w", err)
	}

	return horse, nil
}

func (r *horseRepository) List(ctx context.Context) ([]*models.Horse, error) {
	return r.list(ctx, `
		SELECT id, account_id, owner_email, name, client_id, sex, age,
		       discipline, medical_notes, created_at, updated_at
		FROM practice_horses
		ORDER BY name`)
}

func (r *horseRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*models.Horse, error) {
	return r.list(ctx, `
		SELECT id, account_id, owner_email, name, client_id, sex, age,
		       discipline, medical_notes, created_at, updated_at
		FROM practice_horses
		WHERE client_id = $1
		ORDER BY name`, clientID)
}

func (r *horseRepository) list(ctx context.Context, query string, args ...any) ([]*models.Horse, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant scope in context")
	}

	rows, err := scope.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list horses: %w", err)
	}
	defer rows.Close()

	var horses []*models.Horse
	for rows.Next() {
		horse := &models.Horse{}
		if err := rows.Scan(
			&horse.ID,
			&horse.AccountID,
			&horse.OwnerEmail,
			&horse.Name,
			&horse.ClientID,
			&horse.Sex,
			&horse.Age,
			&horse.Discipline,
			&horse.MedicalNotes,
			&horse.CreatedAt,
			&horse.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan horse: %w", err)
		}
		horses = append(horses, horse)
	}

	return horses, rows.Err()
}

func (r *horseRepository) DeleteAll(ctx context.Context) (int64, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return 0, fmt.Errorf("no tenant scope in context")
	}

	result, err := scope.Conn.Exec(ctx, `DELETE FROM practice_horses`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete horses: %w", err)
	}

	return result.RowsAffected(), nil
}
