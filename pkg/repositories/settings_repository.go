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

// SettingsRepository provides data access for the per-account business
// profile. There is at most one row per account.
type SettingsRepository interface {
	Get(ctx context.Context) (*models.Settings, error)
	Upsert(ctx context.Context, settings *models.Settings) error
	DeleteAll(ctx context.Context) (int64, error)
}

type settingsRepository struct{}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository() SettingsRepository {
	return &settingsRepository{}
}

var _ SettingsRepository = (*settingsRepository)(nil)

func (r *settingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant scope in context")
	}

	query := `
		SELECT id, account_id, owner_email, business_name, address, phone,
		       created_at, updated_at
		FROM practice_settings
		LIMIT 1`

	settings := &models.Settings{}
	err := scope.Conn.QueryRow(ctx, query).Scan(
		&settings.ID,
		&settings.AccountID,
		&settings.OwnerEmail,
		&settings.BusinessName,
		&settings.Address,
		&settings.Phone,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return settings, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, settings *models.Settings) error {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return fmt.Errorf("no tenant scope in context")
	}

	now := time.Now()
	if settings.ID == uuid.Nil {
		settings.ID = uuid.New()
	}

	query := `
		INSERT INTO practice_settings (
			id, account_id, owner_email, business_name, address, phone,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (account_id) DO UPDATE SET
			business_name = EXCLUDED.business_name,
			address = EXCLUDED.address,
			phone = EXCLUDED.phone,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at`

	err := scope.Conn.QueryRow(ctx, query,
		settings.ID,
		settings.AccountID,
		settings.OwnerEmail,
		settings.BusinessName,
		settings.Address,
		settings.Phone,
		now,
		now,
	).Scan(&settings.ID, &settings.CreatedAt, &settings.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert settings: %w", err)
	}

	return nil
}

func (r *settingsRepository) DeleteAll(ctx context.Context) (int64, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return 0, fmt.Errorf("no tenant scope in context")
	}

	result, err := scope.Conn.Exec(ctx, `DELETE FROM practice_settings`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete settings: %w", err)
	}

	return result.RowsAffected(), nil
}
