package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/bitfantasy/nimo-mes/internal/mes/service"
	"github.com/bitfantasy/nimo-mes/internal/mes/testutil"
)

func TestMachines(t *testing.T) {
	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	if got := len(env.Services.Machine.ListMachines(ctx)); got != 5 {
		t.Errorf("machines = %d", got)
	}
	m, err := env.Services.Machine.GetMachine(ctx, "mch-002")
	if err != nil || m.ID != "mch-002" {
		t.Errorf("GetMachine = %+v, %v", m, err)
	}
	if _, err := env.Services.Machine.GetMachine(ctx, "mch-404"); err == nil || err.Error() != "Machine not found" {
		t.Errorf("missing machine: %v", err)
	}
	if got := len(env.Services.Machine.Telemetry(ctx, "")); got != 4 {
		t.Errorf("telemetry = %d", got)
	}
	if got := len(env.Services.Machine.Telemetry(ctx, "mch-001")); got != 2 {
		t.Errorf("mch-001 telemetry = %d", got)
	}
}

func TestUpdateIntegration(t *testing.T) {
	env := testutil.NewTestEnv(t)
	ctx := context.Background()
	events := subscribe(t, env)

	integ, err := env.Services.Machine.UpdateIntegration(ctx, "int-004", service.UpdateIntegrationRequest{Status: entity.IntegrationConnected})
	if err != nil {
		t.Fatalf("UpdateIntegration: %v", err)
	}
	if integ.Status != entity.IntegrationConnected {
		t.Errorf("status = %q", integ.Status)
	}
	if integ.LastSync == nil || !integ.LastSync.Equal(testutil.Epoch) {
		t.Errorf("lastSync = %v", integ.LastSync)
	}
	if ev := <-events; ev.EventType != "integration_updated" {
		t.Errorf("event = %q", ev.EventType)
	}

	for _, i := range env.Services.Machine.ListIntegrations(ctx) {
		if i.ID == "int-004" && i.Status != entity.IntegrationConnected {
			t.Errorf("stored status = %q", i.Status)
		}
	}

	if _, err := env.Services.Machine.UpdateIntegration(ctx, "int-001", service.UpdateIntegrationRequest{Status: "paused"}); !errors.Is(err, service.ErrBadInput) {
		t.Errorf("bad status: %v", err)
	}
	if _, err := env.Services.Machine.UpdateIntegration(ctx, "int-404", service.UpdateIntegrationRequest{Status: entity.IntegrationError}); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("missing integration: %v", err)
	}
}

func TestRunMRP(t *testing.T) {
	env := testutil.NewTestEnv(t)
	ctx := context.Background()

	first, err := env.Services.Planning.RunMRP(ctx)
	if err != nil {
		t.Fatalf("RunMRP: %v", err)
	}
	if len(first.PlannedOrders) != 2 || len(first.SuggestedPurchases) != 3 {
		t.Errorf("result = %+v", first)
	}
	if !first.RunDate.Equal(testutil.Epoch) {
		t.Errorf("runDate = %v", first.RunDate)
	}
	second, _ := env.Services.Planning.RunMRP(ctx)
	if second.ID == first.ID {
		t.Error("each run needs a fresh id")
	}
	runs := env.Services.Planning.ListRuns(ctx)
	if len(runs) != 2 || runs[0].ID != second.ID {
		t.Errorf("runs = %d, newest %s", len(runs), runs[0].ID)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := env.Services.Planning.RunMRP(cancelled); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled run: %v", err)
	}
}
