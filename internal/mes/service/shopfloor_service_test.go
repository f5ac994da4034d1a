package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bitfantasy/nimo-mes/internal/mes/service"
	"github.com/bitfantasy/nimo-mes/internal/mes/testutil"
)

func TestRecordProduction(t *testing.T) {
	env := testutil.NewTestEnv(t)
	ctx := context.Background()
	before, _ := env.Services.Manufacturing.Get(ctx, "wo-001")

	entry, err := env.Services.ShopFloor.RecordProduction(ctx, service.RecordProductionRequest{
		WorkOrderID:      "wo-001",
		OperatorID:       "usr-002",
		QtyProduced:      5,
		QtyScrap:         1,
		InspectionResult: "pass",
		Notes:            "Line 2",
	})
	if err != nil {
		t.Fatalf("RecordProduction: %v", err)
	}
	if entry.QtyProduced != 5 || entry.QtyScrap != 1 || entry.WorkOrderID != "wo-001" {
		t.Errorf("entry = %+v", entry)
	}

	after, _ := env.Services.Manufacturing.Get(ctx, "wo-001")
	if after.ProducedQty != 15 {
		t.Errorf("producedQty = %d, want 15", after.ProducedQty)
	}
	if after.ScrapQty != before.ScrapQty+1 {
		t.Errorf("scrapQty = %d, want %d", after.ScrapQty, before.ScrapQty+1)
	}
	if len(after.ActivityLog) != len(before.ActivityLog)+1 {
		t.Fatalf("log grew by %d, want 1", len(after.ActivityLog)-len(before.ActivityLog))
	}
	last := after.ActivityLog[len(after.ActivityLog)-1]
	if last.Action != "Production recorded: 5 produced, 1 scrapped" {
		t.Errorf("action = %q", last.Action)
	}
	if !strings.Contains(last.Action, "5") || !strings.Contains(last.Action, "1") {
		t.Errorf("action does not mention both quantities: %q", last.Action)
	}
	if last.User != "Mike Rodriguez" || last.Details != "Line 2" {
		t.Errorf("user = %q, details = %q", last.User, last.Details)
	}

	history := env.Services.ShopFloor.ListProduction(ctx, "wo-001")
	if len(history) != 1 || history[0].ID != entry.ID {
		t.Errorf("history = %+v", history)
	}
	if got := env.Services.ShopFloor.ListProduction(ctx, "wo-002"); len(got) != 0 {
		t.Errorf("wo-002 history = %d entries", len(got))
	}
}

func TestRecordProductionUnknownOperator(t *testing.T) {
	env := testutil.NewTestEnv(t)
	ctx := context.Background()
	if _, err := env.Services.ShopFloor.RecordProduction(ctx, service.RecordProductionRequest{
		WorkOrderID: "wo-002", OperatorID: "usr-999", QtyProduced: 1,
	}); err != nil {
		t.Fatalf("RecordProduction: %v", err)
	}
	wo, _ := env.Services.Manufacturing.Get(ctx, "wo-002")
	if got := wo.ActivityLog[len(wo.ActivityLog)-1].User; got != service.UnknownOperator {
		t.Errorf("user = %q", got)
	}
}

func TestRecordProductionErrors(t *testing.T) {
	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	_, err := env.Services.ShopFloor.RecordProduction(ctx, service.RecordProductionRequest{WorkOrderID: "wo-404", QtyProduced: 1})
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("missing work order: %v", err)
	}
	_, err = env.Services.ShopFloor.RecordProduction(ctx, service.RecordProductionRequest{WorkOrderID: "wo-001"})
	if !errors.Is(err, service.ErrBadInput) {
		t.Errorf("nothing to record: %v", err)
	}
	_, err = env.Services.ShopFloor.RecordProduction(ctx, service.RecordProductionRequest{WorkOrderID: "wo-001", QtyProduced: -1})
	if !errors.Is(err, service.ErrBadInput) {
		t.Errorf("negative qty: %v", err)
	}
	_, err = env.Services.ShopFloor.RecordProduction(ctx, service.RecordProductionRequest{WorkOrderID: "wo-005", QtyProduced: 1})
	if !errors.Is(err, service.ErrInvalidTransition) {
		t.Errorf("cancelled work order: %v", err)
	}
	if got := len(env.Services.ShopFloor.ListProduction(ctx, "")); got != 0 {
		t.Errorf("failed recordings left %d entries", got)
	}
}

func TestClockInOut(t *testing.T) {
	env := testutil.NewTestEnv(t)
	ctx := context.Background()
	svc := env.Services.ShopFloor

	sess, err := svc.ClockIn(ctx, service.ClockInRequest{OperatorID: "usr-002", WorkCenter: "WC-ASSY"})
	if err != nil {
		t.Fatalf("ClockIn: %v", err)
	}
	if sess.OperatorName != "Mike Rodriguez" || !sess.ClockInTime.Equal(testutil.Epoch) || sess.WorkCenter != "WC-ASSY" {
		t.Errorf("session = %+v", sess)
	}

	ghost, err := svc.ClockIn(ctx, service.ClockInRequest{OperatorID: "usr-999"})
	if err != nil {
		t.Fatalf("ClockIn unknown: %v", err)
	}
	if ghost.OperatorName != service.UnknownOperator {
		t.Errorf("operatorName = %q", ghost.OperatorName)
	}

	out, err := svc.ClockOut(ctx, service.ClockOutRequest{OperatorID: "usr-002"})
	if err != nil {
		t.Fatalf("ClockOut: %v", err)
	}
	if out.ID != sess.ID || out.ClockOutTime == nil {
		t.Errorf("clock-out = %+v", out)
	}
	if _, err := svc.ClockOut(ctx, service.ClockOutRequest{OperatorID: "usr-002"}); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("second clock-out: %v", err)
	}
	if got := len(svc.ListSessions(ctx, "")); got != 2 {
		t.Errorf("sessions = %d", got)
	}
}
