package entity

import "time"

// OperatorSession a clock-in/clock-out span
type OperatorSession struct {
	ID           string     `json:"id"`
	OperatorID   string     `json:"operatorId"`
	OperatorName string     `json:"operatorName"`
	ClockInTime  time.Time  `json:"clockInTime"`
	ClockOutTime *time.Time `json:"clockOutTime,omitempty"`
	WorkCenter   string     `json:"workCenter,omitempty"`
}

// ProductionEntry quantities reported by an operator against a work order
type ProductionEntry struct {
	ID               string    `json:"id"`
	WorkOrderID      string    `json:"workOrderId"`
	OperatorID       string    `json:"operatorId"`
	Timestamp        time.Time `json:"timestamp"`
	QtyProduced      int       `json:"qtyProduced"`
	QtyScrap         int       `json:"qtyScrap"`
	InspectionResult string    `json:"inspectionResult,omitempty"`
	Notes            string    `json:"notes,omitempty"`
}
