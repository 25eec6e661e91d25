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

// ClientRepository provides data access for clients (horse owners).
type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	List(ctx context.Context) ([]*models.Client, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type clientRepository struct{}

// NewClientRepository creates a new ClientRepository.
func NewClientRepository() ClientRepository {
	return &clientRepository{}
}

var _ ClientRepository = (*clientRepository)(nil)

func (r *clientRepository) Create(ctx context.Context, client *models.Client) error {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return fmt.Errorf("no tenant scope in context")
	}

	now := time.Now()
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}

	query := `
		INSERT INTO practice_clients (
			id, account_id, owner_email, name, email, phone, address,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := scope.Conn.QueryRow(ctx, query,
		client.ID,
		client.AccountID,
		client.OwnerEmail,
		client.Name,
		client.Email,
		client.Phone,
		client.Address,
		now,
		now,
	).Scan(&client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	return nil
}

func (r *clientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant scope in context")
	}

	query := `
		SELECT id, account_id, owner_email, name, email, phone, address,
		       created_at, updated_at
		FROM practice_clients
		WHERE id = $1`

	client := &models.Client{}
	err := scope.Conn.QueryRow(ctx, query, id).Scan(
		&client.ID,
		&client.AccountID,
		&client.OwnerEmail,
		&client.Name,
		&client.Email,
		&client.Phone,
		&client.Address,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return client, nil
}

func (r *clientRepository) List(ctx context.Context) ([]*models.Client, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant scope in context")
	}

	query := `
		SELECT id, account_id, owner_email, name, email, phone, address,
		       created_at, updated_at
		FROM practice_clients
		ORDER BY name`

	rows, err := scope.Conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		client := &models.Client{}
		if err := rows.Scan(
			&client.ID,
			&client.AccountID,
			&client.OwnerEmail,
			&client.Name,
			&client.Email,
			&client.Phone,
			&client.Address,
			&client.CreatedAt,
			&client.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, client)
	}

	return clients, rows.Err()
}

func (r *clientRepository) DeleteAll(ctx context.Context) (int64, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return 0, fmt.Errorf("no tenant scope in context")
	}

	result, err := scope.Conn.Exec(ctx, `DELETE FROM practice_clients`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete clients: %w", err)
	}

	return result.RowsAffected(), nil
}
