package repository

import (
	"sort"
	"sync"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
)

// CatalogRepository products and their BOMs
type CatalogRepository struct {
	mu       sync.RWMutex
	products []entity.Product
	boms     map[string]entity.ProductBOM
}

func NewCatalogRepository(products []entity.Product, boms map[string]entity.ProductBOM) *CatalogRepository {
	r := &CatalogRepository{
		products: append([]entity.Product(nil), products...),
		boms:     make(map[string]entity.ProductBOM, len(boms)),
	}
	for k, v := range boms {
		r.boms[k] = v
	}
	return r
}

func (r *CatalogRepository) ListProducts() []entity.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]entity.Product(nil), r.products...)
}

func (r *CatalogRepository) GetProduct(id string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.ID == id {
			c := p
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

// GetBOM BOMs are immutable after seeding, so the stored value is returned as-is
func (r *CatalogRepository) GetBOM(productID string) (*entity.ProductBOM, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bom, ok := r.boms[productID]
	if !ok {
		return nil, ErrNotFound
	}
	return &bom, nil
}

// UsedIn products whose BOM versions reference itemID, ordered by product id
func (r *CatalogRepository) UsedIn(itemID string) []entity.ProductRef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	refs := []entity.ProductRef{}
	for _, bom := range r.boms {
		if bom.Uses(itemID) {
			refs = append(refs, entity.ProductRef{ProductID: bom.ProductID, ProductName: bom.ProductName})
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ProductID < refs[j].ProductID })
	return refs
}
