package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
	"github.com/bitfantasy/nimo-mes/internal/mes/sse"
	"go.uber.org/zap"
)

// QualityService NCRs and inspection records
type QualityService struct {
	ncrRepo     *repository.NCRRepository
	woRepo      *repository.WorkOrderRepository
	catalogRepo *repository.CatalogRepository
	qualityRepo *repository.QualityRepository
	events      Publisher
	logger      *zap.Logger
	now         func() time.Time
	enforce     bool
}

func NewQualityService(ncrRepo *repository.NCRRepository, woRepo *repository.WorkOrderRepository, catalogRepo *repository.CatalogRepository, qualityRepo *repository.QualityRepository, deps Deps) *QualityService {
	deps.defaults()
	return &QualityService{
		ncrRepo:     ncrRepo,
		woRepo:      woRepo,
		catalogRepo: catalogRepo,
		qualityRepo: qualityRepo,
		events:      deps.Events,
		logger:      deps.Logger.Named("quality"),
		now:         deps.Now,
		enforce:     deps.Config.Workflow.EnforceTransitions,
	}
}

type CreateNCRRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	DefectType  string `json:"defectType" binding:"required"`
	WorkOrderID string `json:"workOrderId"`
	ProductID   string `json:"productId"`
	Severity    string `json:"severity" binding:"omitempty,severity"`
	Quantity    int    `json:"quantity" binding:"gte=0"`
	AssignedTo  string `json:"assignedTo"`
}

// UpdateNCRRequest partial patch; nil fields are left untouched
type UpdateNCRRequest struct {
	Status           *string `json:"status" binding:"omitempty,ncrstatus"`
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	Severity         *string `json:"severity" binding:"omitempty,severity"`
	Quantity         *int    `json:"quantity"`
	Disposition      *string `json:"disposition" binding:"omitempty,disposition"`
	RootCause        *string `json:"rootCause"`
	CorrectiveAction *string `json:"correctiveAction"`
	AssignedTo       *string `json:"assignedTo"`
}

func (s *QualityService) ListNCRs(ctx context.Context, status string) []entity.NonConformanceReport {
	return s.ncrRepo.List(status)
}

func (s *QualityService) GetNCR(ctx context.Context, id string) (*entity.NonConformanceReport, error) {
	ncr, err := s.ncrRepo.GetByID(id)
	if err != nil {
		return nil, lookup(err, "NCR")
	}
	return ncr, nil
}

// CreateNCR opens a report. The product comes from productId, else from the linked work order.
func (s *QualityService) CreateNCR(ctx context.Context, req CreateNCRRequest, actor string) (*entity.NonConformanceReport, error) {
	var missing []string
	if strings.TrimSpace(req.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(req.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(req.DefectType) == "" {
		missing = append(missing, "defectType")
	}
	if len(missing) > 0 {
		return nil, badInput("missing required fields: %s", strings.Join(missing, ", "))
	}
	if req.Severity == "" {
		req.Severity = entity.SeverityMinor
	}
	if !entity.IsSeverity(req.Severity) {
		return nil, badInput("unknown severity %q", req.Severity)
	}
	if req.Quantity < 0 {
		return nil, badInput("quantity must not be negative")
	}

	ncr := &entity.NonConformanceReport{
		ID:          newID("ncr"),
		Title:       req.Title,
		Description: req.Description,
		DefectType:  req.DefectType,
		Severity:    req.Severity,
		Status:      entity.NCRStatusOpen,
		Quantity:    req.Quantity,
		AssignedTo:  req.AssignedTo,
		ReportedBy:  actorOr(actor),
		ReportedAt:  s.now(),
	}

	productID := req.ProductID
	if req.WorkOrderID != "" {
		wo, err := s.woRepo.GetByID(req.WorkOrderID)
		if err != nil {
			return nil, badInput("Work order not found")
		}
		ncr.WorkOrderID = wo.ID
		ncr.WorkOrderNumber = wo.WorkOrderNumber
		if productID == "" {
			productID = wo.ProductID
		}
	}
	if productID != "" {
		product, err := s.catalogRepo.GetProduct(productID)
		if err != nil {
			return nil, badInput("Product not found")
		}
		ncr.ProductID = product.ID
		ncr.ProductName = product.Name
	}

	created, err := s.ncrRepo.Create(ncr)
	if err != nil {
		return nil, fmt.Errorf("create ncr: %w", err)
	}
	s.logger.Info("ncr created",
		zap.String("id", created.ID),
		zap.String("number", created.NCRNumber),
		zap.String("severity", created.Severity))
	s.events.Publish(sse.EventNCRCreated, created)
	return created, nil
}

func (r *UpdateNCRRequest) validate() error {
	if r.Status != nil && *r.Status != "" && !entity.IsNCRStatus(*r.Status) {
		return badInput("unknown status %q", *r.Status)
	}
	if r.Severity != nil && !entity.IsSeverity(*r.Severity) {
		return badInput("unknown severity %q", *r.Severity)
	}
	if r.Disposition != nil && *r.Disposition != "" && !entity.IsDisposition(*r.Disposition) {
		return badInput("unknown disposition %q", *r.Disposition)
	}
	if r.Quantity != nil && *r.Quantity < 0 {
		return badInput("quantity must not be negative")
	}
	return nil
}

// UpdateNCR applies a partial patch. Moving into closed from another status
// stamps closedAt/closedBy; an NCR that is already closed keeps its stamp.
func (s *QualityService) UpdateNCR(ctx context.Context, id string, req UpdateNCRRequest, actor string) (*entity.NonConformanceReport, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	updated, err := s.ncrRepo.Update(id, func(n *entity.NonConformanceReport) error {
		if req.Status != nil && *req.Status != "" && *req.Status != n.Status {
			next := *req.Status
			if s.enforce && !entity.CanTransitionNCR(n.Status, next) {
				return invalidTransition("NCR", n.Status, next)
			}
			if next == entity.NCRStatusClosed {
				t := s.now()
				n.ClosedAt = &t
				n.ClosedBy = actorOr(actor)
			}
			n.Status = next
		}
		if req.Title != nil {
			n.Title = *req.Title
		}
		if req.Description != nil {
			n.Description = *req.Description
		}
		if req.Severity != nil {
			n.Severity = *req.Severity
		}
		if req.Quantity != nil {
			n.Quantity = *req.Quantity
		}
		if req.Disposition != nil {
			n.Disposition = *req.Disposition
		}
		if req.RootCause != nil {
			n.RootCause = *req.RootCause
		}
		if req.CorrectiveAction != nil {
			n.CorrectiveAction = *req.CorrectiveAction
		}
		if req.AssignedTo != nil {
			n.AssignedTo = *req.AssignedTo
		}
		return nil
	})
	if err != nil {
		return nil, lookup(err, "NCR")
	}
	s.logger.Info("ncr updated", zap.String("id", updated.ID), zap.String("status", updated.Status))
	s.events.Publish(sse.EventNCRUpdated, updated)
	return updated, nil
}

func (s *QualityService) ListInspectionForms(ctx context.Context) []entity.InspectionForm {
	return s.qualityRepo.ListForms()
}

func (s *QualityService) ListInspectionResults(ctx context.Context, workOrderID string) []entity.InspectionResult {
	return s.qualityRepo.ListResults(workOrderID)
}
