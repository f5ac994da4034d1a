package service

import (
	"time"

	"github.com/bitfantasy/nimo-mes/internal/config"
	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
	"github.com/bitfantasy/nimo-mes/internal/mes/session"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultActor recorded on audit entries when the caller is anonymous
const DefaultActor = "Current User"

// Publisher receives domain events after a mutation is stored
type Publisher interface {
	Publish(eventType string, payload any)
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, any) {}

// Deps collaborators shared by every service
type Deps struct {
	Config   *config.Config
	Sessions session.Store
	Events   Publisher
	Logger   *zap.Logger
	Now      func() time.Time
}

func (d *Deps) defaults() {
	if d.Config == nil {
		d.Config = &config.Config{}
		d.Config.Auth.TokenMode = config.TokenModeMock
		d.Config.Auth.TokenTTL = 24 * time.Hour
		d.Config.Workflow.EnforceTransitions = true
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Sessions == nil {
		d.Sessions = session.NewMemory(d.Now)
	}
	if d.Events == nil {
		d.Events = nopPublisher{}
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
}

// Services MES 服务集合
type Services struct {
	Auth          *AuthService
	Dashboard     *DashboardService
	Inventory     *InventoryService
	Catalog       *CatalogService
	Manufacturing *ManufacturingService
	Quality       *QualityService
	Machine       *MachineService
	Planning      *PlanningService
	ShopFloor     *ShopFloorService
	Export        *ExportService
}

func NewServices(repos *repository.Repositories, deps Deps) *Services {
	deps.defaults()
	return &Services{
		Auth:          NewAuthService(repos.User, deps),
		Dashboard:     NewDashboardService(repos.Dashboard, repos.WorkOrder, repos.NCR),
		Inventory:     NewInventoryService(repos.Inventory, repos.Catalog),
		Catalog:       NewCatalogService(repos.Catalog),
		Manufacturing: NewManufacturingService(repos.WorkOrder, repos.Catalog, deps),
		Quality:       NewQualityService(repos.NCR, repos.WorkOrder, repos.Catalog, repos.Quality, deps),
		Machine:       NewMachineService(repos.Machine, deps),
		Planning:      NewPlanningService(repos.Planning, deps),
		ShopFloor:     NewShopFloorService(repos.Production, repos.WorkOrder, repos.User, deps),
		Export:        NewExportService(repos.Inventory, repos.WorkOrder),
	}
}

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

func actorOr(actor string) string {
	if actor == "" {
		return DefaultActor
	}
	return actor
}
