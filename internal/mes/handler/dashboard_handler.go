package handler

import (
	"github.com/bitfantasy/nimo-mes/internal/mes/service"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	svc *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// KPIs GET /api/dashboard/kpis
func (h *DashboardHandler) KPIs(c *gin.Context) {
	OK(c, h.svc.KPIs(c.Request.Context()))
}

// Production GET /api/dashboard/production?days=7
func (h *DashboardHandler) Production(c *gin.Context) {
	days := service.DefaultProductionDays
	if c.Query("days") != "" {
		v, ok := queryInt(c, "days")
		if !ok {
			return
		}
		days = v
	}
	data, err := h.svc.Production(c.Request.Context(), days)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, data)
}

func (h *DashboardHandler) RecentWorkOrders(c *gin.Context) {
	OK(c, h.svc.RecentWorkOrders(c.Request.Context()))
}

func (h *DashboardHandler) RecentNCRs(c *gin.Context) {
	OK(c, h.svc.RecentNCRs(c.Request.Context()))
}
