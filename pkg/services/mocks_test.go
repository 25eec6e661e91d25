package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/stridephysio/practice-engine/pkg/apperrors"
	"github.com/stridephysio/practice-engine/pkg/auth"
	"github.com/stridephysio/practice-engine/pkg/models"
)

// authedContext builds a context carrying JWT claims the way the auth
// middleware would.
func authedContext(accountID uuid.UUID, email string, roles ...string) context.Context {
	claims := &auth.Claims{
		AccountID: accountID.String(),
		Email:     email,
		Roles:     roles,
	}
	return context.WithValue(context.Background(), auth.ClaimsKey, claims)
}

// mockEntityStores backs the import pipeline and the live services in tests.
// Deletes report the number of records currently held.

type mockAppointmentTypeRepo struct {
	created []*models.AppointmentType
	err     error
}

func (m *mockAppointmentTypeRepo) Create(_ context.Context, t *models.AppointmentType) error {
	if m.err != nil {
		return m.err
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	m.created = append(m.created, t)
	return nil
}

func (m *mockAppointmentTypeRepo) GetByID(_ context.Context, id uuid.UUID) (*models.AppointmentType, error) {
	for _, t := range m.created {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockAppointmentTypeRepo) List(_ context.Context) ([]*models.AppointmentType, error) {
	return m.created, nil
}

func (m *mockAppointmentTypeRepo) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(m.created))
	m.created = nil
	return n, nil
}

type mockClientRepo struct {
	created []*models.Client
	err     error
}

func (m *mockClientRepo) Create(_ context.Context, c *models.Client) error {
	if m.err != nil {
		return m.err
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.created = append(m.created, c)
	return nil
}

func (m *mockClientRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Client, error) {
	for _, c := range m.created {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockClientRepo) List(_ context.Context) ([]*models.Client, error) {
	return m.created, nil
}

func (m *mockClientRepo) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(m.created))
	m.created = nil
	return n, nil
}

type mockHorseRepo struct {
	created []*models.Horse
	err     error
}

func (m *mockHorseRepo) Create(_ context.Context, h *models.Horse) error {
	if m.err != nil {
		return m.err
	}
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	m.created = append(m.created, h)
	return nil
}

func (m *mockHorseRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Horse, error) {
	for _, h := range m.created {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockHorseRepo) List(_ context.Context) ([]*models.Horse, error) {
	return m.created, nil
}

func (m *mockHorseRepo) ListByClient(_ context.Context, clientID uuid.UUID) ([]*models.Horse, error) {
	var out []*models.Horse
	for _, h := range m.created {
		if h.ClientID != nil && *h.ClientID == clientID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *mockHorseRepo) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(m.created))
	m.created = nil
	return n, nil
}

type mockAppointmentRepo struct {
	created   []*models.Appointment
	err       error
	completed int64
}

func (m *mockAppointmentRepo) Create(_ context.Context, a *models.Appointment) error {
	if m.err != nil {
		return m.err
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	m.created = append(m.created, a)
	return nil
}

func (m *mockAppointmentRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	for _, a := range m.created {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockAppointmentRepo) List(_ context.Context) ([]*models.Appointment, error) {
	return m.created, nil
}

func (m *mockAppointmentRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(m.created)), nil
}

func (m *mockAppointmentRepo) CompleteBefore(_ context.Context, cutoff string) (int64, error) {
	var updated int64
	for _, a := range m.created {
		if a.Date <= cutoff && a.Status != models.StatusCompleted {
			a.Status = models.StatusCompleted
			updated++
		}
	}
	m.completed = updated
	return updated, nil
}

func (m *mockAppointmentRepo) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(m.created))
	m.created = nil
	return n, nil
}

type mockTreatmentRepo struct {
	created []*models.Treatment
	err     error
}

func (m *mockTreatmentRepo) Create(_ context.Context, t *models.Treatment) error {
	if m.err != nil {
		return m.err
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	m.created = append(m.created, t)
	return nil
}

func (m *mockTreatmentRepo) ListByHorse(_ context.Context, horseID uuid.UUID) ([]*models.Treatment, error) {
	var out []*models.Treatment
	for _, t := range m.created {
		if t.HorseID != nil && *t.HorseID == horseID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTreatmentRepo) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(m.created))
	m.created = nil
	return n, nil
}

type mockSettingsRepo struct {
	stored *models.Settings
	err    error
}

func (m *mockSettingsRepo) Get(_ context.Context) (*models.Settings, error) {
	if m.stored == nil {
		return nil, apperrors.ErrNotFound
	}
	return m.stored, nil
}

func (m *mockSettingsRepo) Upsert(_ context.Context, s *models.Settings) error {
	if m.err != nil {
		return m.err
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	m.stored = s
	return nil
}

func (m *mockSettingsRepo) DeleteAll(_ context.Context) (int64, error) {
	if m.stored == nil {
		return 0, nil
	}
	m.stored = nil
	return 1, nil
}
