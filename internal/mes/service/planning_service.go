package service

import (
	"context"
	"time"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
	"github.com/bitfantasy/nimo-mes/internal/mes/sse"
	"go.uber.org/zap"
)

// PlanningService simulated MRP. Runs return a fixed plan; no requirements are computed.
type PlanningService struct {
	planRepo *repository.PlanningRepository
	events   Publisher
	logger   *zap.Logger
	now      func() time.Time
}

func NewPlanningService(planRepo *repository.PlanningRepository, deps Deps) *PlanningService {
	deps.defaults()
	return &PlanningService{
		planRepo: planRepo,
		events:   deps.Events,
		logger:   deps.Logger.Named("planning"),
		now:      deps.Now,
	}
}

func simulatedPlannedOrders() []entity.PlannedOrder {
	return []entity.PlannedOrder{
		{ProductID: "prd-002", ProductName: "Hydraulic Pump Unit", Qty: 15, DueDate: "2025-12-15", Reason: "Customer demand forecast"},
		{ProductID: "prd-003", ProductName: "Control Panel Assembly", Qty: 50, DueDate: "2025-12-20", Reason: "Safety stock replenishment"},
	}
}

func simulatedPurchases() []entity.SuggestedPurchase {
	return []entity.SuggestedPurchase{
		{ItemID: "inv-001", ItemName: "Ball Valve 2-inch", Qty: 100, SuggestedDate: "2025-12-08", Supplier: "ValveCo Inc."},
		{ItemID: "inv-002", ItemName: "Precision Bearing 6205", Qty: 200, SuggestedDate: "2025-12-05", Supplier: "BearingWorld"},
		{ItemID: "inv-004", ItemName: "Hydraulic Pump Assembly", Qty: 25, SuggestedDate: "2025-12-10", Supplier: "HydroParts Ltd."},
	}
}

// RunMRP records and returns a new run of the simulated plan
func (s *PlanningService) RunMRP(ctx context.Context) (*entity.MRPResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := entity.MRPResult{
		ID:                 newID("mrp"),
		RunDate:            s.now(),
		PlannedOrders:      simulatedPlannedOrders(),
		SuggestedPurchases: simulatedPurchases(),
	}
	s.planRepo.AddRun(res)
	s.logger.Info("mrp run completed",
		zap.String("id", res.ID),
		zap.Int("planned_orders", len(res.PlannedOrders)),
		zap.Int("suggested_purchases", len(res.SuggestedPurchases)))
	s.events.Publish(sse.EventMRPCompleted, res)
	return &res, nil
}

// ListRuns newest first
func (s *PlanningService) ListRuns(ctx context.Context) []entity.MRPResult {
	return s.planRepo.ListRuns()
}
