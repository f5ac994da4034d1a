package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/bitfantasy/nimo-mes/internal/mes/fixture"
	"golang.org/x/crypto/bcrypt"
)

func seed(t *testing.T) *Repositories {
	t.Helper()
	PasswordCost = bcrypt.MinCost
	ds, err := fixture.Load(context.Background(), fixture.Embedded())
	if err != nil {
		t.Fatalf("load fixtures: %v", err)
	}
	repos, err := NewRepositories(ds)
	if err != nil {
		t.Fatalf("NewRepositories: %v", err)
	}
	return repos
}

func TestUserRepositoryHashesPasswords(t *testing.T) {
	repos := seed(t)
	u, err := repos.User.FindByEmail("SARAH.JOHNSON@manufacturing.demo")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if u.Password == "demo123" || bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("demo123")) != nil {
		t.Error("password should be stored as a bcrypt hash of the demo password")
	}
	if _, err := repos.User.FindByID("usr-999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindByID missing: %v", err)
	}
	if len(repos.User.List()) != 4 || len(repos.User.ListPlants()) != 2 {
		t.Error("seed counts")
	}
}

func TestWorkOrderRepositoryReadsAreCopies(t *testing.T) {
	repos := seed(t)
	wo, _ := repos.WorkOrder.GetByID("wo-001")
	wo.Status = entity.WOStatusCancelled
	wo.ActivityLog[0].Action = "tampered"

	again, _ := repos.WorkOrder.GetByID("wo-001")
	if again.Status != entity.WOStatusInProgress || again.ActivityLog[0].Action == "tampered" {
		t.Error("caller mutation leaked into the store")
	}
}

func TestWorkOrderRepositoryUpdateIsAllOrNothing(t *testing.T) {
	repos := seed(t)
	boom := errors.New("boom")
	_, err := repos.WorkOrder.Update("wo-002", func(wo *entity.WorkOrder) error {
		wo.Status = entity.WOStatusCancelled
		wo.ProducedQty = 99
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	wo, _ := repos.WorkOrder.GetByID("wo-002")
	if wo.Status != entity.WOStatusReleased || wo.ProducedQty != 0 {
		t.Error("failed update was stored")
	}
	if _, err := repos.WorkOrder.Update("wo-404", func(*entity.WorkOrder) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id: %v", err)
	}
}

func TestWorkOrderRepositoryNumbering(t *testing.T) {
	repos := seed(t)
	created := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	numbers := make(chan string, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			wo, err := repos.WorkOrder.Create(&entity.WorkOrder{ID: "wo-new-" + string(rune('a'+i)), CreatedAt: created})
			if err != nil {
				t.Errorf("Create: %v", err)
				return
			}
			numbers <- wo.WorkOrderNumber
		}(i)
	}
	wg.Wait()
	close(numbers)

	seen := map[string]bool{}
	for n := range numbers {
		if seen[n] {
			t.Errorf("duplicate number %s", n)
		}
		seen[n] = true
	}
	for i := 6; i <= 15; i++ {
		want := "WO-2026-0" + string(rune('0'+i/10)) + string(rune('0'+i%10))
		if !seen[want] {
			t.Errorf("missing %s", want)
		}
	}
	if _, err := repos.WorkOrder.Create(&entity.WorkOrder{ID: "wo-001"}); err == nil {
		t.Error("duplicate id accepted")
	}
	if got := len(repos.WorkOrder.List(WOListParams{})); got != 15 {
		t.Errorf("rows = %d", got)
	}
}

func TestNumberSuffix(t *testing.T) {
	for in, want := range map[string]int{
		"WO-2025-007":  7,
		"NCR-2025-120": 120,
		"WO-2025-x":    0,
		"":             0,
	} {
		if got := numberSuffix(in); got != want {
			t.Errorf("numberSuffix(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestInventoryRepositoryList(t *testing.T) {
	repos := seed(t)
	items, total := repos.Inventory.List(ItemListParams{Search: "a-01", Page: 1, PageSize: 10})
	if total != len(items) || total == 0 {
		t.Fatalf("total = %d, items = %d", total, len(items))
	}
	for _, it := range items {
		if it.ID == "" {
			t.Error("empty row")
		}
	}
	items, total = repos.Inventory.List(ItemListParams{Page: 9, PageSize: 10})
	if total != 23 || len(items) != 0 || items == nil {
		t.Errorf("page past the end = %v items, total %d", items, total)
	}
}

func TestDashboardRepositoryProductionWindow(t *testing.T) {
	repos := seed(t)
	if got := len(repos.Dashboard.Production(7)); got != 7 {
		t.Errorf("7 days = %d", got)
	}
	if got := len(repos.Dashboard.Production(0)); got != 30 {
		t.Errorf("0 days = %d", got)
	}
	kpis := repos.Dashboard.KPIs()
	kpis.Trends["oee"] = entity.KPITrend{Value: -100}
	if repos.Dashboard.KPIs().Trends["oee"].Value == -100 {
		t.Error("KPIs must return a copy of the trends map")
	}
}

func TestProductionRepositorySessions(t *testing.T) {
	r := NewProductionRepository()
	t0 := time.Date(2025, 12, 3, 7, 0, 0, 0, time.UTC)
	r.AddSession(entity.OperatorSession{ID: "s1", OperatorID: "usr-002", ClockInTime: t0})
	r.AddSession(entity.OperatorSession{ID: "s2", OperatorID: "usr-002", ClockInTime: t0.Add(time.Hour)})

	s, err := r.CloseSession("usr-002", t0.Add(2*time.Hour))
	if err != nil || s.ID != "s2" {
		t.Fatalf("CloseSession = %+v, %v", s, err)
	}
	s, _ = r.CloseSession("usr-002", t0.Add(3*time.Hour))
	if s.ID != "s1" {
		t.Errorf("second close = %s", s.ID)
	}
	if _, err := r.CloseSession("usr-002", t0); !errors.Is(err, ErrNotFound) {
		t.Errorf("no open session: %v", err)
	}
}
