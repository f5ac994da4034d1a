package entity

import "time"

// Checkpoint types
const (
	CheckpointPassFail    = "pass_fail"
	CheckpointMeasurement = "measurement"
	CheckpointVisual      = "visual"
)

// Inspection outcomes
const (
	ResultPass = "pass"
	ResultFail = "fail"
)

// InspectionForm checklist used by quality inspectors
type InspectionForm struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	ProductID   string                 `json:"productId,omitempty"`
	Checkpoints []InspectionCheckpoint `json:"checkpoints"`
}

// InspectionCheckpoint one line of a form
type InspectionCheckpoint struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Specification string   `json:"specification,omitempty"`
	MinValue      *float64 `json:"minValue,omitempty"`
	MaxValue      *float64 `json:"maxValue,omitempty"`
	Unit          string   `json:"unit,omitempty"`
}

// InspectionResult a filled-in form
type InspectionResult struct {
	ID            string             `json:"id"`
	FormID        string             `json:"formId"`
	WorkOrderID   string             `json:"workOrderId"`
	InspectorID   string             `json:"inspectorId"`
	InspectorName string             `json:"inspectorName"`
	Timestamp     time.Time          `json:"timestamp"`
	OverallResult string             `json:"overallResult"`
	Results       []CheckpointResult `json:"results"`
}

// CheckpointResult outcome of one checkpoint; Value is a number or a string
type CheckpointResult struct {
	CheckpointID string `json:"checkpointId"`
	Result       string `json:"result"`
	Value        any    `json:"value,omitempty"`
	Notes        string `json:"notes,omitempty"`
}
