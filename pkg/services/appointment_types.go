package services

import (
	"context"
	"fmt"

	"github.com/stridephysio/practice-engine/pkg/auth"
	"github.com/stridephysio/practice-engine/pkg/models"
	"github.com/stridephysio/practice-engine/pkg/repositories"
)

// CreateAppointmentTypeRequest carries the caller-supplied type fields.
type CreateAppointmentTypeRequest struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
	Color           string `json:"color"`
	Description     string `json:"description"`
}

// AppointmentTypeService manages the bookable service types.
type AppointmentTypeService interface {
	Create(ctx context.Context, req CreateAppointmentTypeRequest) (*models.AppointmentType, error)
	List(ctx context.Context) ([]*models.AppointmentType, error)
}

type appointmentTypeService struct {
	appointmentTypes repositories.AppointmentTypeRepository
}

// NewAppointmentTypeService creates a new AppointmentTypeService.
func NewAppointmentTypeService(appointmentTypes repositories.AppointmentTypeRepository) AppointmentTypeService {
	return &appointmentTypeService{appointmentTypes: appointmentTypes}
}

var _ AppointmentTypeService = (*appointmentTypeService)(nil)

func (s *appointmentTypeService) Create(ctx context.Context, req CreateAppointmentTypeRequest) (*models.AppointmentType, error) {
	accountID, ownerEmail, err := auth.RequireAccountFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if req.Name == "" {
		return nil, fmt.Errorf("appointment type name is required")
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = 60
	}

	appointmentType := &models.AppointmentType{
		AccountID:       accountID,
		OwnerEmail:      ownerEmail,
		Name:            req.Name,
		DurationMinutes: duration,
		Color:           req.Color,
		Description:     req.Description,
	}
	if err := s.appointmentTypes.Create(ctx, appointmentType); err != nil {
		return nil, err
	}

	return appointmentType, nil
}

func (s *appointmentTypeService) List(ctx context.Context) ([]*models.AppointmentType, error) {
	if _, _, err := auth.RequireAccountFromContext(ctx); err != nil {
		return nil, err
	}
	return s.appointmentTypes.List(ctx)
}
