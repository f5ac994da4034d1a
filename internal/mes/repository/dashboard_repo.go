package repository

import "github.com/bitfantasy/nimo-mes/internal/mes/entity"

// DashboardRepository fixture KPIs and the daily production series
type DashboardRepository struct {
	kpis       entity.KPIData
	production []entity.ProductionData
}

func NewDashboardRepository(kpis entity.KPIData, production []entity.ProductionData) *DashboardRepository {
	return &DashboardRepository{kpis: kpis, production: append([]entity.ProductionData{}, production...)}
}

func (r *DashboardRepository) KPIs() entity.KPIData {
	k := r.kpis
	if r.kpis.Trends != nil {
		k.Trends = make(map[string]entity.KPITrend, len(r.kpis.Trends))
		for name, t := range r.kpis.Trends {
			k.Trends[name] = t
		}
	}
	return k
}

// Production the last days points of the series; days <= 0 or beyond the series returns all
func (r *DashboardRepository) Production(days int) []entity.ProductionData {
	if days <= 0 || days > len(r.production) {
		days = len(r.production)
	}
	return append([]entity.ProductionData{}, r.production[len(r.production)-days:]...)
}
