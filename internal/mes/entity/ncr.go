package entity

import "time"

// NCR statuses
const (
	NCRStatusOpen          = "open"
	NCRStatusInvestigating = "investigating"
	NCRStatusClosed        = "closed"
)

// Severities
const (
	SeverityMinor    = "minor"
	SeverityMajor    = "major"
	SeverityCritical = "critical"
)

// Dispositions
const (
	DispositionScrap          = "scrap"
	DispositionRework         = "rework"
	DispositionUseAsIs        = "use_as_is"
	DispositionReturnToVendor = "return_to_vendor"
)

var ncrTransitions = map[string][]string{
	NCRStatusOpen:          {NCRStatusInvestigating},
	NCRStatusInvestigating: {NCRStatusClosed},
	NCRStatusClosed:        {},
}

// CanTransitionNCR reports whether from -> to is in the NCR successor table
func CanTransitionNCR(from, to string) bool {
	return contains(ncrTransitions[from], to)
}

// IsNCRStatus reports whether s is a known NCR status
func IsNCRStatus(s string) bool {
	_, ok := ncrTransitions[s]
	return ok
}

// IsSeverity reports whether s is a known severity
func IsSeverity(s string) bool {
	return s == SeverityMinor || s == SeverityMajor || s == SeverityCritical
}

// IsDisposition reports whether d is a known disposition
func IsDisposition(d string) bool {
	switch d {
	case DispositionScrap, DispositionRework, DispositionUseAsIs, DispositionReturnToVendor:
		return true
	}
	return false
}

// NonConformanceReport quality defect record
type NonConformanceReport struct {
	ID               string     `json:"id"`
	NCRNumber        string     `json:"ncrNumber"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	WorkOrderID      string     `json:"workOrderId,omitempty"`
	WorkOrderNumber  string     `json:"workOrderNumber,omitempty"`
	ProductID        string     `json:"productId,omitempty"`
	ProductName      string     `json:"productName,omitempty"`
	DefectType       string     `json:"defectType"`
	Severity         string     `json:"severity"`
	Status           string     `json:"status"`
	Quantity         int        `json:"quantity"`
	Disposition      string     `json:"disposition,omitempty"`
	RootCause        string     `json:"rootCause,omitempty"`
	CorrectiveAction string     `json:"correctiveAction,omitempty"`
	ReportedBy       string     `json:"reportedBy"`
	ReportedAt       time.Time  `json:"reportedAt"`
	AssignedTo       string     `json:"assignedTo,omitempty"`
	ClosedAt         *time.Time `json:"closedAt,omitempty"`
	ClosedBy         string     `json:"closedBy,omitempty"`
	Attachments      []string   `json:"attachments,omitempty"`
}

// Clone deep copy
func (n *NonConformanceReport) Clone() *NonConformanceReport {
	c := *n
	c.ClosedAt = cloneTime(n.ClosedAt)
	c.Attachments = append([]string(nil), n.Attachments...)
	return &c
}
