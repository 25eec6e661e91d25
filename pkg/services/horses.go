package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/stridephysio/practice-engine/pkg/auth"
	"github.com/stridephysio/practice-engine/pkg/models"
	"github.com/stridephysio/practice-engine/pkg/repositories"
)

// CreateHorseRequest carries the caller-supplied horse fields. ClientID is
// optional; a horse may exist without a known owner.
type CreateHorseRequest struct {
	Name         string     `json:"name"`
	ClientID     *uuid.UUID `json:"client_id,omitempty"`
	Sex          string     `json:"sex"`
	Age          string     `json:"age"`
	Discipline   string     `json:"discipline"`
	MedicalNotes string     `json:"medical_notes"`
}

// HorseService manages horses for the authenticated account.
type HorseService interface {
	Create(ctx context.Context, req CreateHorseRequest) (*models.Horse, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Horse, error)
	List(ctx context.Context) ([]*models.Horse, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*models.Horse, error)
	Treatments(ctx context.Context, horseID uuid.UUID) ([]*models.Treatment, error)
}

type horseService struct {
	horses     repositories.HorseRepository
	treatments repositories.TreatmentRepository
}

// NewHorseService creates a new HorseService.
func NewHorseService(horses repositories.HorseRepository, treatments repositories.TreatmentRepository) HorseService {
	return &horseService{horses: horses, treatments: treatments}
}

var _ HorseService = (*horseService)(nil)

func (s *horseService) Create(ctx context.Context, req CreateHorseRequest) (*models.Horse, error) {
	accountID, ownerEmail, err := auth.RequireAccountFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if req.Name == "" {
		return nil, fmt.Errorf("horse name is required")
	}

	horse := &models.Horse{
		AccountID:    accountID,
		OwnerEmail:   ownerEmail,
		Name:         req.Name,
		ClientID:     req.ClientID,
		Sex:          req.Sex,
		Age:          req.Age,
		Discipline:   req.Discipline,
		MedicalNotes: req.MedicalNotes,
	}
	if err := s.horses.Create(ctx, horse); err != nil {
		return nil, err
	}

	return horse, nil
}

func (s *horseService) Get(ctx context.Context, id uuid.UUID) (*models.Horse, error) {
	if _, _, err := auth.RequireAccountFromContext(ctx); err != nil {
		return nil, err
	}
	return s.horses.GetByID(ctx, id)
}

func (s *horseService) List(ctx context.Context) ([]*models.Horse, error) {
	if _, _, err := auth.RequireAccountFromContext(ctx); err != nil {
		return nil, err
	}
	return s.horses.List(ctx)
}

func (s *horseService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*models.Horse, error) {
	if _, _, err := auth.RequireAccountFromContext(ctx); err != nil {
		return nil, err
	}
	return s.horses.ListByClient(ctx, clientID)
}

func (s *horseService) Treatments(ctx context.Context, horseID uuid.UUID) ([]*models.Treatment, error) {
	if _, _, err := auth.RequireAccountFromContext(ctx); err != nil {
		return nil, err
	}
	return s.treatments.ListByHorse(ctx, horseID)
}
