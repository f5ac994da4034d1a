package handler

import (
	"github.com/bitfantasy/nimo-mes/internal/mes/service"
	"github.com/gin-gonic/gin"
)

// QualityHandler 质量处理器
type QualityHandler struct {
	svc *service.QualityService
}

func NewQualityHandler(svc *service.QualityService) *QualityHandler {
	return &QualityHandler{svc: svc}
}

// ListNCRs GET /api/quality/ncrs?status=
func (h *QualityHandler) ListNCRs(c *gin.Context) {
	OK(c, h.svc.ListNCRs(c.Request.Context(), c.Query("status")))
}

func (h *QualityHandler) GetNCR(c *gin.Context) {
	ncr, err := h.svc.GetNCR(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, ncr)
}

// CreateNCR POST /api/quality/ncrs
func (h *QualityHandler) CreateNCR(c *gin.Context) {
	var req service.CreateNCRRequest
	if !bindJSON(c, &req) {
		return
	}
	ncr, err := h.svc.CreateNCR(c.Request.Context(), req, actor(c))
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, ncr)
}

// UpdateNCR PATCH /api/quality/ncrs/:id
func (h *QualityHandler) UpdateNCR(c *gin.Context) {
	var req service.UpdateNCRRequest
	if !bindJSON(c, &req) {
		return
	}
	ncr, err := h.svc.UpdateNCR(c.Request.Context(), c.Param("id"), req, actor(c))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, ncr)
}

func (h *QualityHandler) ListInspectionForms(c *gin.Context) {
	OK(c, h.svc.ListInspectionForms(c.Request.Context()))
}

// ListInspectionResults GET /api/quality/inspection-results?workOrderId=
func (h *QualityHandler) ListInspectionResults(c *gin.Context) {
	OK(c, h.svc.ListInspectionResults(c.Request.Context(), c.Query("workOrderId")))
}
