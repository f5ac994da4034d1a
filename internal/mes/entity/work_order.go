package entity

import "time"

// WorkOrder statuses
const (
	WOStatusCreated    = "created"
	WOStatusReleased   = "released"
	WOStatusInProgress = "in_progress"
	WOStatusCompleted  = "completed"
	WOStatusCancelled  = "cancelled"
)

// WorkOrder priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Operation statuses
const (
	OpStatusPending    = "pending"
	OpStatusInProgress = "in_progress"
	OpStatusCompleted  = "completed"
)

var woTransitions = map[string][]string{
	WOStatusCreated:    {WOStatusReleased, WOStatusCancelled},
	WOStatusReleased:   {WOStatusInProgress, WOStatusCancelled},
	WOStatusInProgress: {WOStatusCompleted, WOStatusCancelled},
	WOStatusCompleted:  {},
	WOStatusCancelled:  {},
}

var opTransitions = map[string][]string{
	OpStatusPending:    {OpStatusInProgress},
	OpStatusInProgress: {OpStatusCompleted},
	OpStatusCompleted:  {},
}

// WorkOrderNextStatuses legal successors of a work order status
func WorkOrderNextStatuses(status string) []string {
	return append([]string(nil), woTransitions[status]...)
}

// CanTransitionWorkOrder reports whether from -> to is in the successor table
func CanTransitionWorkOrder(from, to string) bool {
	return contains(woTransitions[from], to)
}

// IsWorkOrderStatus reports whether s is a known work order status
func IsWorkOrderStatus(s string) bool {
	_, ok := woTransitions[s]
	return ok
}

// IsWorkOrderTerminal completed and cancelled accept no further transitions
func IsWorkOrderTerminal(status string) bool {
	return status == WOStatusCompleted || status == WOStatusCancelled
}

// IsPriority reports whether p is a known priority
func IsPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// CanTransitionOperation reports whether an operation may move from -> to
func CanTransitionOperation(from, to string) bool {
	return contains(opTransitions[from], to)
}

// WorkOrder a production order for one product
type WorkOrder struct {
	ID              string               `json:"id"`
	WorkOrderNumber string               `json:"workOrderNumber"`
	ProductID       string               `json:"productId"`
	ProductName     string               `json:"productName"`
	ProductSKU      string               `json:"productSku"`
	Qty             int                  `json:"qty"`
	ProducedQty     int                  `json:"producedQty"`
	ScrapQty        int                  `json:"scrapQty"`
	Status          string               `json:"status"`
	Priority        string               `json:"priority"`
	DueDate         string               `json:"dueDate"`
	StartDate       *time.Time           `json:"startDate,omitempty"`
	CompletedDate   *time.Time           `json:"completedDate,omitempty"`
	BOMVersion      string               `json:"bomVersion"`
	AssignedTo      string               `json:"assignedTo,omitempty"`
	Notes           string               `json:"notes,omitempty"`
	Operations      []WorkOrderOperation `json:"operations"`
	ActivityLog     []ActivityLogEntry   `json:"activityLog"`
	CreatedAt       time.Time            `json:"createdAt"`
	CreatedBy       string               `json:"createdBy"`
}

// WorkOrderOperation one routing step
type WorkOrderOperation struct {
	ID          string     `json:"id"`
	Sequence    int        `json:"sequence"`
	Name        string     `json:"name"`
	WorkCenter  string     `json:"workCenter"`
	SetupTime   int        `json:"setupTime"`
	RunTime     int        `json:"runTime"`
	Status      string     `json:"status"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Operator    string     `json:"operator,omitempty"`
}

// ActivityLogEntry append-only audit record
type ActivityLogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	User      string    `json:"user"`
	Details   string    `json:"details,omitempty"`
}

// AppendActivity appends one entry. Timestamps strictly increase within a log.
func (wo *WorkOrder) AppendActivity(entry ActivityLogEntry) ActivityLogEntry {
	if n := len(wo.ActivityLog); n > 0 {
		last := wo.ActivityLog[n-1].Timestamp
		if !entry.Timestamp.After(last) {
			entry.Timestamp = last.Add(time.Millisecond)
		}
	}
	wo.ActivityLog = append(wo.ActivityLog, entry)
	return entry
}

// Operation finds an operation by id
func (wo *WorkOrder) Operation(id string) *WorkOrderOperation {
	for i := range wo.Operations {
		if wo.Operations[i].ID == id {
			return &wo.Operations[i]
		}
	}
	return nil
}

// Progress produced quantity as a percentage of the order quantity, capped at 100
func (wo *WorkOrder) Progress() float64 {
	if wo.Qty <= 0 {
		return 0
	}
	p := float64(wo.ProducedQty) / float64(wo.Qty) * 100
	if p > 100 {
		return 100
	}
	return p
}

// Clone deep copy
func (wo *WorkOrder) Clone() *WorkOrder {
	c := *wo
	c.StartDate = cloneTime(wo.StartDate)
	c.CompletedDate = cloneTime(wo.CompletedDate)
	c.Operations = make([]WorkOrderOperation, len(wo.Operations))
	for i, op := range wo.Operations {
		op.StartedAt = cloneTime(op.StartedAt)
		op.CompletedAt = cloneTime(op.CompletedAt)
		c.Operations[i] = op
	}
	c.ActivityLog = append([]ActivityLogEntry(nil), wo.ActivityLog...)
	return &c
}

// RoutingStep template used to seed new work orders
type RoutingStep struct {
	Sequence   int
	Name       string
	WorkCenter string
	SetupTime  int
	RunTime    int
}

// DefaultRouting fixed 3-step routing applied to every new work order
var DefaultRouting = []RoutingStep{
	{Sequence: 10, Name: "Preparation", WorkCenter: "WC-PREP", SetupTime: 30, RunTime: 20},
	{Sequence: 20, Name: "Assembly", WorkCenter: "WC-ASSY", SetupTime: 20, RunTime: 30},
	{Sequence: 30, Name: "Quality Check", WorkCenter: "WC-QC", SetupTime: 10, RunTime: 15},
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
