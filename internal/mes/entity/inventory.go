package entity

// Inventory transaction types
const (
	TxTypeReceipt    = "receipt"
	TxTypeIssue      = "issue"
	TxTypeAdjustment = "adjustment"
	TxTypeTransfer   = "transfer"
)

// InventoryItem stock position of a single SKU.
// Available is expected to equal OnHand - Allocated; items are read-only here.
type InventoryItem struct {
	ID           string                 `json:"id"`
	SKU          string                 `json:"sku"`
	Name         string                 `json:"name"`
	Description  string                 `json:"description"`
	Category     string                 `json:"category"`
	OnHand       int                    `json:"onHand"`
	Allocated    int                    `json:"allocated"`
	Available    int                    `json:"available"`
	Location     string                 `json:"location"`
	UnitCost     float64                `json:"unitCost"`
	ReorderPoint int                    `json:"reorderPoint"`
	Lots         []LotInfo              `json:"lots"`
	Transactions []InventoryTransaction `json:"transactions"`
}

// BelowReorderPoint reports whether available stock has dropped to the reorder point
func (i *InventoryItem) BelowReorderPoint() bool {
	return i.Available <= i.ReorderPoint
}

// LotInfo a received lot
type LotInfo struct {
	Lot          string `json:"lot"`
	Qty          int    `json:"qty"`
	ExpiryDate   string `json:"expiryDate,omitempty"`
	ReceivedDate string `json:"receivedDate"`
}

// InventoryTransaction a stock movement
type InventoryTransaction struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Type      string `json:"type"`
	Qty       int    `json:"qty"`
	Reference string `json:"reference"`
	User      string `json:"user"`
}

// ProductRef product that consumes an item in one of its BOM versions
type ProductRef struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
}

// InventoryItemDetail item plus BOM back-references
type InventoryItemDetail struct {
	InventoryItem
	UsedIn []ProductRef `json:"usedIn"`
}

// PaginatedResponse one page of a filtered list
type PaginatedResponse[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}
