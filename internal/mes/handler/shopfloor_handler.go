package handler

import (
	"github.com/bitfantasy/nimo-mes/internal/mes/service"
	"github.com/gin-gonic/gin"
)

// ShopFloorHandler 车间处理器
type ShopFloorHandler struct {
	svc *service.ShopFloorService
}

func NewShopFloorHandler(svc *service.ShopFloorService) *ShopFloorHandler {
	return &ShopFloorHandler{svc: svc}
}

// ClockIn POST /api/shopfloor/clock-in
func (h *ShopFloorHandler) ClockIn(c *gin.Context) {
	var req service.ClockInRequest
	if !bindJSON(c, &req) {
		return
	}
	session, err := h.svc.ClockIn(c.Request.Context(), req)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, session)
}

// ClockOut POST /api/shopfloor/clock-out
func (h *ShopFloorHandler) ClockOut(c *gin.Context) {
	var req service.ClockOutRequest
	if !bindJSON(c, &req) {
		return
	}
	session, err := h.svc.ClockOut(c.Request.Context(), req)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, session)
}

// ListSessions GET /api/shopfloor/sessions?operatorId=
func (h *ShopFloorHandler) ListSessions(c *gin.Context) {
	OK(c, h.svc.ListSessions(c.Request.Context(), c.Query("operatorId")))
}

// RecordProduction POST /api/shopfloor/production
func (h *ShopFloorHandler) RecordProduction(c *gin.Context) {
	var req service.RecordProductionRequest
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.svc.RecordProduction(c.Request.Context(), req)
	if err != nil {
		Fail(c, err)
		return
	}
	Created(c, entry)
}

// ListProduction GET /api/shopfloor/production?workOrderId=
func (h *ShopFloorHandler) ListProduction(c *gin.Context) {
	OK(c, h.svc.ListProduction(c.Request.Context(), c.Query("workOrderId")))
}
