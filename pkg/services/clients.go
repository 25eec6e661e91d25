package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/stridephysio/practice-engine/pkg/auth"
	"github.com/stridephysio/practice-engine/pkg/models"
	"github.com/stridephysio/practice-engine/pkg/repositories"
)

// CreateClientRequest carries the caller-supplied client fields. Account and
// owner identity always come from the token.
type CreateClientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ClientService manages clients for the authenticated account.
type ClientService interface {
	Create(ctx context.Context, req CreateClientRequest) (*models.Client, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Client, error)
	List(ctx context.Context) ([]*models.Client, error)
}

type clientService struct {
	clients repositories.ClientRepository
}

// NewClientService creates a new ClientService.
func NewClientService(clients repositories.ClientRepository) ClientService {
	return &clientService{clients: clients}
}

var _ ClientService = (*clientService)(nil)

func (s *clientService) Create(ctx context.Context, req CreateClientRequest) (*models.Client, error) {
	accountID, ownerEmail, err := auth.RequireAccountFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if req.Name == "" {
		return nil, fmt.Errorf("client name is required")
	}

	client := &models.Client{
		AccountID:  accountID,
		OwnerEmail: ownerEmail,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

func (s *clientService) Get(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	if _, _, err := auth.RequireAccountFromContext(ctx); err != nil {
		return nil, err
	}
	return s.clients.GetByID(ctx, id)
}

func (s *clientService) List(ctx context.Context) ([]*models.Client, error) {
	if _, _, err := auth.RequireAccountFromContext(ctx); err != nil {
		return nil, err
	}
	return s.clients.List(ctx)
}
