package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/stridephysio/practice-engine/pkg/apperrors"
	"github.com/stridephysio/practice-engine/pkg/auth"
	"github.com/stridephysio/practice-engine/pkg/models"
	"github.com/stridephysio/practice-engine/pkg/repositories"
)

// CreateAppointmentRequest carries the caller-supplied appointment fields.
// New live bookings default to scheduled status, unlike historical imports
// which default to completed.
type CreateAppointmentRequest struct {
	Date              string      `json:"date"`
	TimeOfDay         string      `json:"time"`
	ClientID          *uuid.UUID  `json:"client_id,omitempty"`
	HorseIDs          []uuid.UUID `json:"horse_ids"`
	AppointmentTypeID *uuid.UUID  `json:"appointment_type_id,omitempty"`
	Notes             string      `json:"notes"`
	Status            string      `json:"status"`
}

// AppointmentService manages appointments for the authenticated account.
type AppointmentService interface {
	Create(ctx context.Context, req CreateAppointmentRequest) (*models.Appointment, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Appointment, error)
	List(ctx context.Context) ([]*models.Appointment, error)
}

type appointmentService struct {
	appointments repositories.AppointmentRepository
}

// NewAppointmentService creates a new AppointmentService.
func NewAppointmentService(appointments repositories.AppointmentRepository) AppointmentService {
	return &appointmentService{appointments: appointments}
}

var _ AppointmentService = (*appointmentService)(nil)

func (s *appointmentService) Create(ctx context.Context, req CreateAppointmentRequest) (*models.Appointment, error) {
	accountID, ownerEmail, err := auth.RequireAccountFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if req.Date == "" {
		return nil, fmt.Errorf("appointment date is required")
	}

	status := req.Status
	if status == "" {
		status = models.StatusScheduled
	}
	if !models.IsValidStatus(status) {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidStatus, req.Status)
	}

	appointment := &models.Appointment{
		AccountID:         accountID,
		OwnerEmail:        ownerEmail,
		Date:              req.Date,
		TimeOfDay:         req.TimeOfDay,
		ClientID:          req.ClientID,
		HorseIDs:          req.HorseIDs,
		AppointmentTypeID: req.AppointmentTypeID,
		Notes:             req.Notes,
		Status:            status,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, err
	}

	return appointment, nil
}

func (s *appointmentService) Get(ctx context.Context, id uuid.UUID) (*models.Appointment, error) {
	if _, _, err := auth.RequireAccountFromContext(ctx); err != nil {
		return nil, err
	}
	return s.appointments.GetByID(ctx, id)
}

func (s *appointmentService) List(ctx context.Context) ([]*models.Appointment, error) {
	if _, _, err := auth.RequireAccountFromContext(ctx); err != nil {
		return nil, err
	}
	return s.appointments.List(ctx)
}
