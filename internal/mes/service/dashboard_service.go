package service

import (
	"context"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
)

const (
	DefaultProductionDays = 7
	recentLimit           = 5
)

// KPIs where a rising value is bad news
var lowerIsBetter = map[string]bool{
	"openWorkOrders": true,
}

type DashboardService struct {
	dashRepo *repository.DashboardRepository
	woRepo   *repository.WorkOrderRepository
	ncrRepo  *repository.NCRRepository
}

func NewDashboardService(dashRepo *repository.DashboardRepository, woRepo *repository.WorkOrderRepository, ncrRepo *repository.NCRRepository) *DashboardService {
	return &DashboardService{dashRepo: dashRepo, woRepo: woRepo, ncrRepo: ncrRepo}
}

// KPIs fixture figures, with open work orders counted live from the overlay
func (s *DashboardService) KPIs(ctx context.Context) entity.KPIData {
	kpis := s.dashRepo.KPIs()
	kpis.OpenWorkOrders = s.woRepo.CountOpen()
	for name, trend := range kpis.Trends {
		trend.Label = entity.TrendLabel(trend.Value)
		if lowerIsBetter[name] {
			trend.IsPositive = trend.Value <= 0
		} else {
			trend.IsPositive = trend.Value >= 0
		}
		kpis.Trends[name] = trend
	}
	return kpis
}

// Production the trailing days of the daily series
func (s *DashboardService) Production(ctx context.Context, days int) ([]entity.ProductionData, error) {
	if days <= 0 {
		return nil, badInput("days must be a positive integer")
	}
	return s.dashRepo.Production(days), nil
}

func (s *DashboardService) RecentWorkOrders(ctx context.Context) []entity.WorkOrder {
	return s.woRepo.Recent(recentLimit)
}

func (s *DashboardService) RecentNCRs(ctx context.Context) []entity.NonConformanceReport {
	return s.ncrRepo.Recent(recentLimit)
}
