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

// ManufacturingService 工单服务
type ManufacturingService struct {
	woRepo      *repository.WorkOrderRepository
	catalogRepo *repository.CatalogRepository
	events      Publisher
	logger      *zap.Logger
	now         func() time.Time
	enforce     bool
}

func NewManufacturingService(woRepo *repository.WorkOrderRepository, catalogRepo *repository.CatalogRepository, deps Deps) *ManufacturingService {
	deps.defaults()
	return &ManufacturingService{
		woRepo:      woRepo,
		catalogRepo: catalogRepo,
		events:      deps.Events,
		logger:      deps.Logger.Named("manufacturing"),
		now:         deps.Now,
		enforce:     deps.Config.Workflow.EnforceTransitions,
	}
}

type CreateWorkOrderRequest struct {
	ProductID  string `json:"productId" binding:"required"`
	Qty        int    `json:"qty" binding:"required,gt=0"`
	DueDate    string `json:"dueDate" binding:"omitempty,isodate"`
	Priority   string `json:"priority" binding:"omitempty,priority"`
	BOMVersion string `json:"bomVersion"`
	AssignedTo string `json:"assignedTo"`
	Notes      string `json:"notes"`
}

// UpdateWorkOrderRequest partial patch; nil fields are left untouched
type UpdateWorkOrderRequest struct {
	Status      *string `json:"status" binding:"omitempty,wostatus"`
	Priority    *string `json:"priority" binding:"omitempty,priority"`
	Qty         *int    `json:"qty"`
	ProducedQty *int    `json:"producedQty"`
	ScrapQty    *int    `json:"scrapQty"`
	DueDate     *string `json:"dueDate" binding:"omitempty,isodate"`
	BOMVersion  *string `json:"bomVersion"`
	AssignedTo  *string `json:"assignedTo"`
	Notes       *string `json:"notes"`
}

type UpdateOperationRequest struct {
	Status   string `json:"status" binding:"required,opstatus"`
	Operator string `json:"operator"`
}

func (s *ManufacturingService) List(ctx context.Context, params repository.WOListParams) []entity.WorkOrder {
	return s.woRepo.List(params)
}

func (s *ManufacturingService) Get(ctx context.Context, id string) (*entity.WorkOrder, error) {
	wo, err := s.woRepo.GetByID(id)
	if err != nil {
		return nil, lookup(err, "Work order")
	}
	return wo, nil
}

// Create 创建工单: status created, default three-step routing, one audit entry
func (s *ManufacturingService) Create(ctx context.Context, req CreateWorkOrderRequest, actor string) (*entity.WorkOrder, error) {
	if req.ProductID == "" {
		return nil, badInput("productId is required")
	}
	if req.Qty <= 0 {
		return nil, badInput("qty must be greater than 0")
	}
	if req.Priority == "" {
		req.Priority = entity.PriorityMedium
	}
	if !entity.IsPriority(req.Priority) {
		return nil, badInput("unknown priority %q", req.Priority)
	}
	product, err := s.catalogRepo.GetProduct(req.ProductID)
	if err != nil {
		return nil, badInput("Product not found")
	}
	if req.BOMVersion == "" {
		req.BOMVersion = product.CurrentBOMVersion
	}

	actor = actorOr(actor)
	now := s.now()
	wo := &entity.WorkOrder{
		ID:          newID("wo"),
		ProductID:   product.ID,
		ProductName: product.Name,
		ProductSKU:  product.SKU,
		Qty:         req.Qty,
		Status:      entity.WOStatusCreated,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		BOMVersion:  req.BOMVersion,
		AssignedTo:  req.AssignedTo,
		Notes:       req.Notes,
		Operations:  make([]entity.WorkOrderOperation, 0, len(entity.DefaultRouting)),
		ActivityLog: []entity.ActivityLogEntry{},
		CreatedAt:   now,
		CreatedBy:   actor,
	}
	for _, step := range entity.DefaultRouting {
		wo.Operations = append(wo.Operations, entity.WorkOrderOperation{
			ID:         newID("op"),
			Sequence:   step.Sequence,
			Name:       step.Name,
			WorkCenter: step.WorkCenter,
			SetupTime:  step.SetupTime,
			RunTime:    step.RunTime,
			Status:     entity.OpStatusPending,
		})
	}
	wo.AppendActivity(entity.ActivityLogEntry{
		ID:        newID("log"),
		Timestamp: now,
		Action:    "Work order created",
		User:      actor,
	})

	created, err := s.woRepo.Create(wo)
	if err != nil {
		return nil, fmt.Errorf("create work order: %w", err)
	}
	s.logger.Info("work order created",
		zap.String("id", created.ID),
		zap.String("number", created.WorkOrderNumber),
		zap.String("product_id", created.ProductID))
	s.events.Publish(sse.EventWorkOrderCreated, created)
	return created, nil
}

func (r *UpdateWorkOrderRequest) validate() error {
	if r.Status != nil && *r.Status != "" && !entity.IsWorkOrderStatus(*r.Status) {
		return badInput("unknown status %q", *r.Status)
	}
	if r.Priority != nil && !entity.IsPriority(*r.Priority) {
		return badInput("unknown priority %q", *r.Priority)
	}
	if r.Qty != nil && *r.Qty <= 0 {
		return badInput("qty must be greater than 0")
	}
	if r.ProducedQty != nil && *r.ProducedQty < 0 {
		return badInput("producedQty must not be negative")
	}
	if r.ScrapQty != nil && *r.ScrapQty < 0 {
		return badInput("scrapQty must not be negative")
	}
	return nil
}

// Update applies a partial patch. A status change logs one entry and stamps
// start/completion dates; a producedQty value logs a separate entry.
func (s *ManufacturingService) Update(ctx context.Context, id string, req UpdateWorkOrderRequest, actor string) (*entity.WorkOrder, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	actor = actorOr(actor)
	var statusChanged bool

	updated, err := s.woRepo.Update(id, func(wo *entity.WorkOrder) error {
		now := s.now()
		if req.Status != nil && *req.Status != "" && *req.Status != wo.Status {
			next := *req.Status
			if s.enforce && !entity.CanTransitionWorkOrder(wo.Status, next) {
				return invalidTransition("work order", wo.Status, next)
			}
			wo.AppendActivity(entity.ActivityLogEntry{
				ID:        newID("log"),
				Timestamp: now,
				Action:    "Status changed to " + next,
				User:      actor,
			})
			if next == entity.WOStatusInProgress && wo.StartDate == nil {
				t := now
				wo.StartDate = &t
			}
			if next == entity.WOStatusCompleted {
				t := now
				wo.CompletedDate = &t
			}
			wo.Status = next
			statusChanged = true
		}
		if req.ProducedQty != nil {
			wo.AppendActivity(entity.ActivityLogEntry{
				ID:        newID("log"),
				Timestamp: now,
				Action:    fmt.Sprintf("Produced qty updated: %d units", *req.ProducedQty),
				User:      actor,
			})
			wo.ProducedQty = *req.ProducedQty
		}
		if req.Priority != nil {
			wo.Priority = *req.Priority
		}
		if req.Qty != nil {
			wo.Qty = *req.Qty
		}
		if req.ScrapQty != nil {
			wo.ScrapQty = *req.ScrapQty
		}
		if req.DueDate != nil {
			wo.DueDate = *req.DueDate
		}
		if req.BOMVersion != nil {
			wo.BOMVersion = *req.BOMVersion
		}
		if req.AssignedTo != nil {
			wo.AssignedTo = *req.AssignedTo
		}
		if req.Notes != nil {
			wo.Notes = *req.Notes
		}
		return nil
	})
	if err != nil {
		return nil, lookup(err, "Work order")
	}

	fields := []zap.Field{zap.String("id", updated.ID), zap.String("status", updated.Status)}
	if statusChanged {
		s.logger.Info("work order status changed", fields...)
	} else {
		s.logger.Info("work order updated", fields...)
	}
	s.events.Publish(sse.EventWorkOrderUpdated, updated)
	return updated, nil
}

// UpdateOperation starts or completes one routing step of a work order
func (s *ManufacturingService) UpdateOperation(ctx context.Context, woID, opID string, req UpdateOperationRequest, actor string) (*entity.WorkOrder, error) {
	if req.Status != entity.OpStatusInProgress && req.Status != entity.OpStatusCompleted {
		return nil, badInput("operation status must be %s or %s", entity.OpStatusInProgress, entity.OpStatusCompleted)
	}
	var opMissing bool

	updated, err := s.woRepo.Update(woID, func(wo *entity.WorkOrder) error {
		op := wo.Operation(opID)
		if op == nil {
			opMissing = true
			return repository.ErrNotFound
		}
		if op.Status == req.Status {
			return nil
		}
		if s.enforce {
			if entity.IsWorkOrderTerminal(wo.Status) {
				return &Error{Kind: ErrInvalidTransition, Msg: "work order is " + wo.Status}
			}
			if !entity.CanTransitionOperation(op.Status, req.Status) {
				return invalidTransition("operation", op.Status, req.Status)
			}
		}

		now := s.now()
		verb := "completed"
		if req.Status == entity.OpStatusInProgress {
			t := now
			op.StartedAt = &t
			op.Operator = req.Operator
			verb = "started"
		} else {
			t := now
			op.CompletedAt = &t
		}
		op.Status = req.Status

		user := req.Operator
		if user == "" {
			user = actorOr(actor)
		}
		wo.AppendActivity(entity.ActivityLogEntry{
			ID:        newID("log"),
			Timestamp: now,
			Action:    fmt.Sprintf("Operation %d (%s) %s", op.Sequence, op.Name, verb),
			User:      user,
		})
		return nil
	})
	if err != nil {
		if opMissing {
			return nil, notFound("Operation")
		}
		return nil, lookup(err, "Work order")
	}

	s.logger.Info("operation updated",
		zap.String("work_order_id", woID),
		zap.String("operation_id", opID),
		zap.String("status", req.Status))
	s.events.Publish(sse.EventOperationUpdated, updated)
	return updated, nil
}
