package repository

import (
	"fmt"

	"github.com/bitfantasy/nimo-mes/internal/mes/fixture"
)

// Repositories the in-memory overlay, seeded once from fixtures
type Repositories struct {
	User       *UserRepository
	Inventory  *InventoryRepository
	Catalog    *CatalogRepository
	WorkOrder  *WorkOrderRepository
	NCR        *NCRRepository
	Quality    *QualityRepository
	Machine    *MachineRepository
	Dashboard  *DashboardRepository
	Production *ProductionRepository
	Planning   *PlanningRepository
}

func NewRepositories(ds *fixture.Dataset) (*Repositories, error) {
	users, err := NewUserRepository(ds.Users, ds.Plants)
	if err != nil {
		return nil, fmt.Errorf("seed users: %w", err)
	}
	workOrders, err := NewWorkOrderRepository(ds.WorkOrders)
	if err != nil {
		return nil, fmt.Errorf("seed work orders: %w", err)
	}
	ncrs, err := NewNCRRepository(ds.NCRs)
	if err != nil {
		return nil, fmt.Errorf("seed ncrs: %w", err)
	}
	machines, err := NewMachineRepository(ds.Machines, ds.Integrations, ds.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("seed machines: %w", err)
	}
	return &Repositories{
		User:       users,
		Inventory:  NewInventoryRepository(ds.Items),
		Catalog:    NewCatalogRepository(ds.Products, ds.BOMs),
		WorkOrder:  workOrders,
		NCR:        ncrs,
		Quality:    NewQualityRepository(ds.InspectionForms, ds.InspectionResults),
		Machine:    machines,
		Dashboard:  NewDashboardRepository(ds.KPIs, ds.ProductionData),
		Production: NewProductionRepository(),
		Planning:   NewPlanningRepository(),
	}, nil
}
