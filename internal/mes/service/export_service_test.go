package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/bitfantasy/nimo-mes/internal/mes/testutil"
)

func TestInventoryWorkbook(t *testing.T) {
	env := testutil.NewTestEnv(t)

	f, filename, err := env.Services.Export.InventoryWorkbook(context.Background())
	if err != nil {
		t.Fatalf("InventoryWorkbook: %v", err)
	}
	defer f.Close()
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("filename = %q", filename)
	}

	rows, err := f.GetRows("Inventory")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 25 {
		t.Fatalf("rows = %d, want header + 23 items + total", len(rows))
	}
	if rows[0][0] != "SKU" || rows[1][0] != "VLV-2001" {
		t.Errorf("first cells = %q / %q", rows[0][0], rows[1][0])
	}
	// 120 x 48.50
	if got := rows[1][10]; got != "₱5,820.00" {
		t.Errorf("stock value = %q", got)
	}
	if rows[24][0] != "Total" || !strings.HasPrefix(rows[24][10], "₱") {
		t.Errorf("total row = %v", rows[24])
	}
}

func TestWorkOrderWorkbook(t *testing.T) {
	env := testutil.NewTestEnv(t)

	f, _, err := env.Services.Export.WorkOrderWorkbook(context.Background())
	if err != nil {
		t.Fatalf("WorkOrderWorkbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Work Orders")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[1][0] != "WO-2025-001" || rows[1][6] != "20" {
		t.Errorf("wo-001 row = %v", rows[1])
	}
}
