package service

import (
	"context"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type InventoryService struct {
	itemRepo    *repository.InventoryRepository
	catalogRepo *repository.CatalogRepository
}

func NewInventoryService(itemRepo *repository.InventoryRepository, catalogRepo *repository.CatalogRepository) *InventoryService {
	return &InventoryService{itemRepo: itemRepo, catalogRepo: catalogRepo}
}

// List one page of the filtered inventory. Zero page or page size fall back to defaults.
func (s *InventoryService) List(ctx context.Context, params repository.ItemListParams) (*entity.PaginatedResponse[entity.InventoryItem], error) {
	if params.Page < 0 || params.PageSize < 0 {
		return nil, badInput("page and pageSize must not be negative")
	}
	if params.Page == 0 {
		params.Page = 1
	}
	if params.PageSize == 0 {
		params.PageSize = DefaultPageSize
	}
	if params.PageSize > MaxPageSize {
		return nil, badInput("pageSize must not exceed %d", MaxPageSize)
	}

	items, total := s.itemRepo.List(params)
	return &entity.PaginatedResponse[entity.InventoryItem]{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: (total + params.PageSize - 1) / params.PageSize,
	}, nil
}

// Get an item with the products whose BOMs consume it
func (s *InventoryService) Get(ctx context.Context, id string) (*entity.InventoryItemDetail, error) {
	item, err := s.itemRepo.GetByID(id)
	if err != nil {
		return nil, lookup(err, "Item")
	}
	return &entity.InventoryItemDetail{
		InventoryItem: *item,
		UsedIn:        s.catalogRepo.UsedIn(id),
	}, nil
}
