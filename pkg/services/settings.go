package services

import (
	"context"
	"errors"

	"github.com/stridephysio/practice-engine/pkg/apperrors"
	"github.com/stridephysio/practice-engine/pkg/auth"
	"github.com/stridephysio/practice-engine/pkg/models"
	"github.com/stridephysio/practice-engine/pkg/repositories"
)

// UpdateSettingsRequest carries the caller-supplied business profile fields.
type UpdateSettingsRequest struct {
	BusinessName string `json:"business_name"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
}

// SettingsService manages the per-account business profile.
type SettingsService interface {
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (*models.Settings, error)
}

type settingsService struct {
	settings repositories.SettingsRepository
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(settings repositories.SettingsRepository) SettingsService {
	return &settingsService{settings: settings}
}

var _ SettingsService = (*settingsService)(nil)

// Get returns the account's business profile, or an empty profile if none
// was ever saved.
func (s *settingsService) Get(ctx context.Context) (*models.Settings, error) {
	accountID, ownerEmail, err := auth.RequireAccountFromContext(ctx)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.Get(ctx)
	if errors.Is(err, apperrors.ErrNotFound) {
		return &models.Settings{AccountID: accountID, OwnerEmail: ownerEmail}, nil
	}
	return settings, err
}

func (s *settingsService) Update(ctx context.Context, req UpdateSettingsRequest) (*models.Settings, error) {
	accountID, ownerEmail, err := auth.RequireAccountFromContext(ctx)
	if err != nil {
		return nil, err
	}

	settings := &models.Settings{
		AccountID:    accountID,
		OwnerEmail:   ownerEmail,
		BusinessName: req.BusinessName,
		Address:      req.Address,
		Phone:        req.Phone,
	}
	if err := s.settings.Upsert(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}
