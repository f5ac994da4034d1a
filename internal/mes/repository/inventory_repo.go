package repository

import (
	"strings"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
)

// InventoryRepository items are loaded once and never written
type InventoryRepository struct {
	t *memTable[entity.InventoryItem]
}

func NewInventoryRepository(items []entity.InventoryItem) *InventoryRepository {
	t := newMemTable(
		func(i *entity.InventoryItem) string { return i.ID },
		cloneItem,
	)
	for i := range items {
		t.insert(&items[i])
	}
	return &InventoryRepository{t: t}
}

type ItemListParams struct {
	Search   string
	Category string
	Page     int
	PageSize int
}

// List filters by case-insensitive substring on sku/name/location and exact category,
// then returns the requested 1-based page and the filtered total.
func (r *InventoryRepository) List(params ItemListParams) ([]entity.InventoryItem, int) {
	search := strings.ToLower(params.Search)
	filtered := r.t.list(func(i *entity.InventoryItem) bool {
		if search != "" &&
			!strings.Contains(strings.ToLower(i.SKU), search) &&
			!strings.Contains(strings.ToLower(i.Name), search) &&
			!strings.Contains(strings.ToLower(i.Location), search) {
			return false
		}
		return params.Category == "" || i.Category == params.Category
	})

	total := len(filtered)
	start := (params.Page - 1) * params.PageSize
	if start < 0 || start >= total {
		return []entity.InventoryItem{}, total
	}
	end := start + params.PageSize
	if end > total {
		end = total
	}
	return filtered[start:end], total
}

func (r *InventoryRepository) GetByID(id string) (*entity.InventoryItem, error) {
	return r.t.get(id)
}

func (r *InventoryRepository) All() []entity.InventoryItem {
	return r.t.list(nil)
}

func cloneItem(i *entity.InventoryItem) *entity.InventoryItem {
	c := *i
	c.Lots = append([]entity.LotInfo{}, i.Lots...)
	c.Transactions = append([]entity.InventoryTransaction{}, i.Transactions...)
	return &c
}
