package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/stridephysio/practice-engine/pkg/auth"
	"github.com/stridephysio/practice-engine/pkg/importer"
	"github.com/stridephysio/practice-engine/pkg/models"
)

// Import actions accepted by the API. Each maps to one pipeline stage,
// except ActionFull which runs all six in order.
const (
	ActionAppointmentTypes = "appointment_types"
	ActionClients          = "clients"
	ActionHorses           = "horses"
	ActionAppointments     = "appointments"
	ActionTreatments       = "treatments"
	ActionSettings         = "settings"
	ActionFull             = "full"
)

// StageRequest is the data payload of a single-stage import call. IDMaps
// carries mapping entries produced by earlier stage calls; the caller is
// responsible for threading them, the server keeps no mapping state between
// calls.
type StageRequest struct {
	Payload models.ImportPayload         `json:"payload"`
	IDMaps  map[string]map[string]string `json:"idMaps,omitempty"`
}

// ImportService runs import stages for the authenticated account, with a
// per-account run lock so two runs for the same account cannot interleave.
type ImportService interface {
	RunStage(ctx context.Context, action string, req StageRequest) (*importer.StageResult, error)
	RunFull(ctx context.Context, payload models.ImportPayload) (*importer.FullResult, error)
}

type importService struct {
	pipeline *importer.Importer
	lock     importer.RunLock
	logger   *zap.Logger
}

// NewImportService creates a new ImportService.
func NewImportService(pipeline *importer.Importer, lock importer.RunLock, logger *zap.Logger) ImportService {
	return &importService{pipeline: pipeline, lock: lock, logger: logger}
}

var _ ImportService = (*importService)(nil)

func (s *importService) RunStage(ctx context.Context, action string, req StageRequest) (*importer.StageResult, error) {
	accountID, ownerEmail, err := auth.RequireAccountFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.lock.Acquire(ctx, accountID); err != nil {
		return nil, err
	}
	defer func() {
		if err := s.lock.Release(context.WithoutCancel(ctx), accountID); err != nil {
			s.logger.Warn("failed to release import lock", zap.Error(err))
		}
	}()

	maps := importer.NewIDMaps()
	for kind, entries := range req.IDMaps {
		if err := maps.Merge(importer.EntityKind(kind), entries); err != nil {
			return nil, fmt.Errorf("invalid idMaps payload: %w", err)
		}
	}

	s.logger.Info("running import stage",
		zap.String("action", action),
		zap.String("account_id", accountID.String()))

	switch action {
	case ActionAppointmentTypes:
		return s.pipeline.ImportAppointmentTypes(ctx, accountID, ownerEmail, req.Payload.AppointmentTypes, maps)
	case ActionClients:
		return s.pipeline.ImportClients(ctx, accountID, ownerEmail, req.Payload.Clients, maps)
	case ActionHorses:
		return s.pipeline.ImportHorses(ctx, accountID, ownerEmail, req.Payload.Horses, maps)
	case ActionAppointments:
		return s.pipeline.ImportAppointments(ctx, accountID, ownerEmail, req.Payload.Appointments, maps)
	case ActionTreatments:
		return s.pipeline.ImportTreatments(ctx, accountID, ownerEmail, req.Payload.Treatments, maps)
	case ActionSettings:
		if req.Payload.Settings == nil {
			return nil, fmt.Errorf("settings action requires a settings payload")
		}
		return s.pipeline.ImportSettings(ctx, accountID, ownerEmail, *req.Payload.Settings)
	default:
		return nil, fmt.Errorf("unknown import action %q", action)
	}
}

func (s *importService) RunFull(ctx context.Context, payload models.ImportPayload) (*importer.FullResult, error) {
	accountID, ownerEmail, err := auth.RequireAccountFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.lock.Acquire(ctx, accountID); err != nil {
		return nil, err
	}
	defer func() {
		if err := s.lock.Release(context.WithoutCancel(ctx), accountID); err != nil {
			s.logger.Warn("failed to release import lock", zap.Error(err))
		}
	}()

	s.logger.Info("running full import", zap.String("account_id", accountID.String()))

	return s.pipeline.RunFull(ctx, accountID, ownerEmail, payload)
}
