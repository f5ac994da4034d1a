package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
	"github.com/bitfantasy/nimo-mes/internal/mes/sse"
	"go.uber.org/zap"
)

// UnknownOperator stands in for operator ids that match no user
const UnknownOperator = "Unknown"

// ShopFloorService operator terminals: sessions and production reporting
type ShopFloorService struct {
	prodRepo *repository.ProductionRepository
	woRepo   *repository.WorkOrderRepository
	userRepo *repository.UserRepository
	events   Publisher
	logger   *zap.Logger
	now      func() time.Time
	enforce  bool
}

func NewShopFloorService(prodRepo *repository.ProductionRepository, woRepo *repository.WorkOrderRepository, userRepo *repository.UserRepository, deps Deps) *ShopFloorService {
	deps.defaults()
	return &ShopFloorService{
		prodRepo: prodRepo,
		woRepo:   woRepo,
		userRepo: userRepo,
		events:   deps.Events,
		logger:   deps.Logger.Named("shopfloor"),
		now:      deps.Now,
		enforce:  deps.Config.Workflow.EnforceTransitions,
	}
}

type ClockInRequest struct {
	OperatorID string `json:"operatorId" binding:"required"`
	WorkCenter string `json:"workCenter"`
}

type ClockOutRequest struct {
	OperatorID string `json:"operatorId" binding:"required"`
}

type RecordProductionRequest struct {
	WorkOrderID      string `json:"workOrderId" binding:"required"`
	OperatorID       string `json:"operatorId"`
	QtyProduced      int    `json:"qtyProduced" binding:"gte=0"`
	QtyScrap         int    `json:"qtyScrap" binding:"gte=0"`
	InspectionResult string `json:"inspectionResult" binding:"omitempty,oneof=pass fail"`
	Notes            string `json:"notes"`
}

func (s *ShopFloorService) operatorName(id string) string {
	if u, err := s.userRepo.FindByID(id); err == nil {
		return u.Name
	}
	return UnknownOperator
}

// ClockIn opens an operator session
func (s *ShopFloorService) ClockIn(ctx context.Context, req ClockInRequest) (*entity.OperatorSession, error) {
	if req.OperatorID == "" {
		return nil, badInput("operatorId is required")
	}
	sess := entity.OperatorSession{
		ID:           newID("sess"),
		OperatorID:   req.OperatorID,
		OperatorName: s.operatorName(req.OperatorID),
		ClockInTime:  s.now(),
		WorkCenter:   req.WorkCenter,
	}
	s.prodRepo.AddSession(sess)
	s.logger.Info("operator clocked in", zap.String("operator_id", sess.OperatorID), zap.String("work_center", sess.WorkCenter))
	return &sess, nil
}

// ClockOut closes the operator's open session
func (s *ShopFloorService) ClockOut(ctx context.Context, req ClockOutRequest) (*entity.OperatorSession, error) {
	if req.OperatorID == "" {
		return nil, badInput("operatorId is required")
	}
	sess, err := s.prodRepo.CloseSession(req.OperatorID, s.now())
	if err != nil {
		return nil, lookup(err, "Open session")
	}
	s.logger.Info("operator clocked out", zap.String("operator_id", sess.OperatorID))
	return sess, nil
}

// RecordProduction adds the reported quantities to the work order, logs one
// activity entry and keeps the production entry for later queries.
func (s *ShopFloorService) RecordProduction(ctx context.Context, req RecordProductionRequest) (*entity.ProductionEntry, error) {
	if req.WorkOrderID == "" {
		return nil, badInput("workOrderId is required")
	}
	if req.QtyProduced < 0 || req.QtyScrap < 0 {
		return nil, badInput("quantities must not be negative")
	}
	if req.QtyProduced == 0 && req.QtyScrap == 0 {
		return nil, badInput("qtyProduced or qtyScrap must be greater than 0")
	}
	if req.InspectionResult != "" && req.InspectionResult != entity.ResultPass && req.InspectionResult != entity.ResultFail {
		return nil, badInput("unknown inspection result %q", req.InspectionResult)
	}

	operator := s.operatorName(req.OperatorID)
	now := s.now()
	_, err := s.woRepo.Update(req.WorkOrderID, func(wo *entity.WorkOrder) error {
		if s.enforce && entity.IsWorkOrderTerminal(wo.Status) {
			return &Error{Kind: ErrInvalidTransition, Msg: "work order is " + wo.Status}
		}
		wo.ProducedQty += req.QtyProduced
		wo.ScrapQty += req.QtyScrap
		wo.AppendActivity(entity.ActivityLogEntry{
			ID:        newID("log"),
			Timestamp: now,
			Action:    fmt.Sprintf("Production recorded: %d produced, %d scrapped", req.QtyProduced, req.QtyScrap),
			User:      operator,
			Details:   req.Notes,
		})
		return nil
	})
	if err != nil {
		return nil, lookup(err, "Work order")
	}

	entry, err := s.prodRepo.AddEntry(&entity.ProductionEntry{
		ID:               newID("prod"),
		WorkOrderID:      req.WorkOrderID,
		OperatorID:       req.OperatorID,
		Timestamp:        now,
		QtyProduced:      req.QtyProduced,
		QtyScrap:         req.QtyScrap,
		InspectionResult: req.InspectionResult,
		Notes:            req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("store production entry: %w", err)
	}
	s.logger.Info("production recorded",
		zap.String("work_order_id", entry.WorkOrderID),
		zap.Int("produced", entry.QtyProduced),
		zap.Int("scrapped", entry.QtyScrap))
	s.events.Publish(sse.EventProductionRecorded, entry)
	return entry, nil
}

// ListProduction recorded entries, optionally for one work order
func (s *ShopFloorService) ListProduction(ctx context.Context, workOrderID string) []entity.ProductionEntry {
	return s.prodRepo.ListEntries(workOrderID)
}

func (s *ShopFloorService) ListSessions(ctx context.Context, operatorID string) []entity.OperatorSession {
	return s.prodRepo.ListSessions(operatorID)
}
