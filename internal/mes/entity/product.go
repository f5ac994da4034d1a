package entity

// Product statuses
const (
	ProductStatusActive       = "active"
	ProductStatusInactive     = "inactive"
	ProductStatusDiscontinued = "discontinued"
)

// BOM version statuses
const (
	BOMStatusDraft    = "draft"
	BOMStatusActive   = "active"
	BOMStatusObsolete = "obsolete"
)

// Product a finished good
type Product struct {
	ID                string  `json:"id"`
	SKU               string  `json:"sku"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Category          string  `json:"category"`
	UnitOfMeasure     string  `json:"unitOfMeasure"`
	StandardCost      float64 `json:"standardCost"`
	CurrentBOMVersion string  `json:"currentBomVersion"`
	Status            string  `json:"status"`
}

// BOMNode a component line, possibly with sub-components
type BOMNode struct {
	ID            string    `json:"id"`
	ItemID        string    `json:"itemId"`
	ItemSKU       string    `json:"itemSku"`
	ItemName      string    `json:"itemName"`
	Quantity      float64   `json:"quantity"`
	UnitOfMeasure string    `json:"unitOfMeasure"`
	Level         int       `json:"level"`
	Children      []BOMNode `json:"children,omitempty"`
}

// BOMVersion one revision of a product structure
type BOMVersion struct {
	Version       string    `json:"version"`
	EffectiveDate string    `json:"effectiveDate"`
	Status        string    `json:"status"`
	Nodes         []BOMNode `json:"nodes"`
	CreatedBy     string    `json:"createdBy"`
	CreatedAt     string    `json:"createdAt"`
}

// ProductBOM all BOM versions of a product
type ProductBOM struct {
	ProductID   string       `json:"productId"`
	ProductName string       `json:"productName"`
	Versions    []BOMVersion `json:"versions"`
}

// Uses reports whether any version references itemID at any depth
func (b *ProductBOM) Uses(itemID string) bool {
	for _, v := range b.Versions {
		if nodesUse(v.Nodes, itemID) {
			return true
		}
	}
	return false
}

func nodesUse(nodes []BOMNode, itemID string) bool {
	for _, n := range nodes {
		if n.ItemID == itemID || nodesUse(n.Children, itemID) {
			return true
		}
	}
	return false
}
