package entity

// Trend directions
const (
	TrendUp   = "up"
	TrendDown = "down"
	TrendFlat = "flat"
)

// KPITrend change of a KPI against the previous period
type KPITrend struct {
	Value      float64 `json:"value"`
	IsPositive bool    `json:"isPositive"`
	Label      string  `json:"label"`
}

// KPIData headline dashboard figures
type KPIData struct {
	OEE            float64             `json:"oee"`
	OnTimeDelivery float64             `json:"onTimeDelivery"`
	InventoryTurns float64             `json:"inventoryTurns"`
	OpenWorkOrders int                 `json:"openWorkOrders"`
	Trends         map[string]KPITrend `json:"trends,omitempty"`
}

// ProductionData daily produced quantity
type ProductionData struct {
	Date string `json:"date"`
	Qty  int    `json:"qty"`
}

// TrendLabel classifies a KPI delta
func TrendLabel(delta float64) string {
	switch {
	case delta > 0:
		return TrendUp
	case delta < 0:
		return TrendDown
	default:
		return TrendFlat
	}
}
