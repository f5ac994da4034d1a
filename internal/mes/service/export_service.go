package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
	"github.com/bitfantasy/nimo-mes/internal/shared/money"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ExportService xlsx snapshots of the overlay
type ExportService struct {
	itemRepo *repository.InventoryRepository
	woRepo   *repository.WorkOrderRepository
}

func NewExportService(itemRepo *repository.InventoryRepository, woRepo *repository.WorkOrderRepository) *ExportService {
	return &ExportService{itemRepo: itemRepo, woRepo: woRepo}
}

var inventoryExportHeaders = []string{
	"SKU", "Name", "Category", "Location", "On Hand", "Allocated", "Available",
	"Reorder Point", "Reorder", "Unit Cost", "Stock Value",
}

var workOrderExportHeaders = []string{
	"Work Order", "Product", "SKU", "Qty", "Produced", "Scrap", "Progress %",
	"Status", "Priority", "Due Date", "Started", "Completed",
}

func newSheet(name string, headers []string, widths []float64) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", name); err != nil {
		f.Close()
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(name, cell, h)
		f.SetCellStyle(name, cell, cell, headerStyle)
	}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(name, col, col, w)
	}
	return f, nil
}

// InventoryWorkbook every item with its peso valuation and a total row
func (s *ExportService) InventoryWorkbook(ctx context.Context) (*excelize.File, string, error) {
	const sheet = "Inventory"
	f, err := newSheet(sheet, inventoryExportHeaders, []float64{14, 28, 14, 12, 10, 10, 10, 13, 9, 14, 16})
	if err != nil {
		return nil, "", fmt.Errorf("new workbook: %w", err)
	}

	items := s.itemRepo.All()
	total := decimal.Zero
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			f.Close()
			return nil, "", err
		}
		row := i + 2
		value := money.Valuation(item.OnHand, item.UnitCost)
		total = total.Add(value)
		reorder := "No"
		if item.BelowReorderPoint() {
			reorder = "Yes"
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.SKU)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), item.Category)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), item.Location)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), item.OnHand)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), item.Allocated)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), item.Available)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), item.ReorderPoint)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), reorder)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), money.FormatPeso(decimal.NewFromFloat(item.UnitCost)))
		f.SetCellValue(sheet, fmt.Sprintf("K%d", row), money.FormatPeso(value))
	}

	summaryRow := len(items) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Total")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow), fmt.Sprintf("%d items", len(items)))
	f.SetCellValue(sheet, fmt.Sprintf("K%d", summaryRow), money.FormatPeso(total))
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("K%d", summaryRow), summaryStyle)

	return f, fmt.Sprintf("inventory_%s.xlsx", time.Now().Format("20060102")), nil
}

// WorkOrderWorkbook every work order with its progress
func (s *ExportService) WorkOrderWorkbook(ctx context.Context) (*excelize.File, string, error) {
	const sheet = "Work Orders"
	f, err := newSheet(sheet, workOrderExportHeaders, []float64{14, 26, 14, 8, 10, 8, 11, 12, 10, 12, 20, 20})
	if err != nil {
		return nil, "", fmt.Errorf("new workbook: %w", err)
	}

	orders := s.woRepo.List(repository.WOListParams{})
	for i, wo := range orders {
		if err := ctx.Err(); err != nil {
			f.Close()
			return nil, "", err
		}
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), wo.WorkOrderNumber)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), wo.ProductName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), wo.ProductSKU)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), wo.Qty)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), wo.ProducedQty)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), wo.ScrapQty)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), decimal.NewFromFloat(wo.Progress()).Round(1).InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), wo.Status)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), wo.Priority)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), wo.DueDate)
		if wo.StartDate != nil {
			f.SetCellValue(sheet, fmt.Sprintf("K%d", row), wo.StartDate.UTC().Format(time.RFC3339))
		}
		if wo.CompletedDate != nil {
			f.SetCellValue(sheet, fmt.Sprintf("L%d", row), wo.CompletedDate.UTC().Format(time.RFC3339))
		}
	}

	return f, fmt.Sprintf("workorders_%s.xlsx", time.Now().Format("20060102")), nil
}
