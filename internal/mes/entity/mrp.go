package entity

import "time"

// MRPResult output of a planning run
type MRPResult struct {
	ID                 string              `json:"id"`
	RunDate            time.Time           `json:"runDate"`
	PlannedOrders      []PlannedOrder      `json:"plannedOrders"`
	SuggestedPurchases []SuggestedPurchase `json:"suggestedPurchases"`
}

// PlannedOrder suggested production
type PlannedOrder struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Qty         int    `json:"qty"`
	DueDate     string `json:"dueDate"`
	Reason      string `json:"reason"`
}

// SuggestedPurchase suggested buy
type SuggestedPurchase struct {
	ItemID        string `json:"itemId"`
	ItemName      string `json:"itemName"`
	Qty           int    `json:"qty"`
	SuggestedDate string `json:"suggestedDate"`
	Supplier      string `json:"supplier,omitempty"`
}
