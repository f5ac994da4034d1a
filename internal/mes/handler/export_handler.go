package handler

import (
	"context"

	"github.com/bitfantasy/nimo-mes/internal/mes/service"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ExportHandler Excel 导出
type ExportHandler struct {
	svc    *service.ExportService
	logger *zap.Logger
}

func NewExportHandler(svc *service.ExportService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{svc: svc, logger: logger.Named("export")}
}

// Inventory GET /api/exports/inventory.xlsx
func (h *ExportHandler) Inventory(c *gin.Context) {
	h.write(c, h.svc.InventoryWorkbook)
}

// WorkOrders GET /api/exports/workorders.xlsx
func (h *ExportHandler) WorkOrders(c *gin.Context) {
	h.write(c, h.svc.WorkOrderWorkbook)
}

func (h *ExportHandler) write(c *gin.Context, build func(context.Context) (*excelize.File, string, error)) {
	f, filename, err := build(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		h.logger.Error("write workbook", zap.String("file", filename), zap.Error(err))
	}
}
