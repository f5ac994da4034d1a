package handler

import (
	"github.com/bitfantasy/nimo-mes/internal/mes/service"
	"github.com/gin-gonic/gin"
)

// MachineHandler 设备与集成处理器
type MachineHandler struct {
	svc *service.MachineService
}

func NewMachineHandler(svc *service.MachineService) *MachineHandler {
	return &MachineHandler{svc: svc}
}

func (h *MachineHandler) ListMachines(c *gin.Context) {
	OK(c, h.svc.ListMachines(c.Request.Context()))
}

func (h *MachineHandler) GetMachine(c *gin.Context) {
	m, err := h.svc.GetMachine(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, m)
}

// Telemetry GET /api/machines/telemetry?machineId=
func (h *MachineHandler) Telemetry(c *gin.Context) {
	OK(c, h.svc.Telemetry(c.Request.Context(), c.Query("machineId")))
}

func (h *MachineHandler) ListIntegrations(c *gin.Context) {
	OK(c, h.svc.ListIntegrations(c.Request.Context()))
}

// UpdateIntegration PATCH /api/integrations/:id
func (h *MachineHandler) UpdateIntegration(c *gin.Context) {
	var req service.UpdateIntegrationRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := h.svc.UpdateIntegration(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, in)
}

// PlanningHandler MRP处理器
type PlanningHandler struct {
	svc *service.PlanningService
}

func NewPlanningHandler(svc *service.PlanningService) *PlanningHandler {
	return &PlanningHandler{svc: svc}
}

// RunMRP POST /api/planning/mrp
func (h *PlanningHandler) RunMRP(c *gin.Context) {
	result, err := h.svc.RunMRP(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, result)
}

func (h *PlanningHandler) ListRuns(c *gin.Context) {
	OK(c, h.svc.ListRuns(c.Request.Context()))
}
