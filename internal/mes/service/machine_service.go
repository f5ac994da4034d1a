package service

import (
	"context"
	"time"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
	"github.com/bitfantasy/nimo-mes/internal/mes/sse"
	"go.uber.org/zap"
)

type MachineService struct {
	machineRepo *repository.MachineRepository
	events      Publisher
	logger      *zap.Logger
	now         func() time.Time
}

func NewMachineService(machineRepo *repository.MachineRepository, deps Deps) *MachineService {
	deps.defaults()
	return &MachineService{
		machineRepo: machineRepo,
		events:      deps.Events,
		logger:      deps.Logger.Named("machine"),
		now:         deps.Now,
	}
}

type UpdateIntegrationRequest struct {
	Status string `json:"status" binding:"required,integrationstatus"`
}

func (s *MachineService) ListMachines(ctx context.Context) []entity.Machine {
	return s.machineRepo.ListMachines()
}

func (s *MachineService) GetMachine(ctx context.Context, id string) (*entity.Machine, error) {
	m, err := s.machineRepo.GetMachine(id)
	if err != nil {
		return nil, lookup(err, "Machine")
	}
	return m, nil
}

// Telemetry sensor history, optionally for one machine
func (s *MachineService) Telemetry(ctx context.Context, machineID string) []entity.TelemetryData {
	return s.machineRepo.ListTelemetry(machineID)
}

func (s *MachineService) ListIntegrations(ctx context.Context) []entity.Integration {
	return s.machineRepo.ListIntegrations()
}

// UpdateIntegration sets the connection status and stamps lastSync
func (s *MachineService) UpdateIntegration(ctx context.Context, id string, req UpdateIntegrationRequest) (*entity.Integration, error) {
	if !entity.IsIntegrationStatus(req.Status) {
		return nil, badInput("unknown integration status %q", req.Status)
	}
	updated, err := s.machineRepo.UpdateIntegration(id, func(i *entity.Integration) error {
		t := s.now()
		i.Status = req.Status
		i.LastSync = &t
		return nil
	})
	if err != nil {
		return nil, lookup(err, "Integration")
	}
	s.logger.Info("integration status changed", zap.String("id", id), zap.String("status", req.Status))
	s.events.Publish(sse.EventIntegrationUpdated, updated)
	return updated, nil
}
