package handler

import (
	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
	"github.com/bitfantasy/nimo-mes/internal/mes/service"
	"github.com/gin-gonic/gin"
)

// ManufacturingHandler 工单处理器
type ManufacturingHandler struct {
	svc *service.ManufacturingService
}

func NewManufacturingHandler(svc *service.ManufacturingService) *ManufacturingHandler {
	return &ManufacturingHandler{svc: svc}
}

// List GET /api/workorders?status=&priority=
func (h *ManufacturingHandler) List(c *gin.Context) {
	OK(c, h.svc.List(c.Request.Context(), repository.WOListParams{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
	}))
}

// Get GET /api/workorders/:id
func (h *ManufacturingHandler) Get(c *gin.Context) {
	wo, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, wo)
}

// Create POST /api/workorders
func (h *ManufacturingHandler) Create(c *gin.Context) {
	var req service.CreateWorkOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	wo, err := h.svc.Create(c.Request.Context(), req, actor(c))
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, wo)
}

// Update PATCH /api/workorders/:id
func (h *ManufacturingHandler) Update(c *gin.Context) {
	var req service.UpdateWorkOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	wo, err := h.svc.Update(c.Request.Context(), c.Param("id"), req, actor(c))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, wo)
}

// UpdateOperation PATCH /api/workorders/:id/operations/:opId
func (h *ManufacturingHandler) UpdateOperation(c *gin.Context) {
	var req service.UpdateOperationRequest
	if !bindJSON(c, &req) {
		return
	}
	wo, err := h.svc.UpdateOperation(c.Request.Context(), c.Param("id"), c.Param("opId"), req, actor(c))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, wo)
}
