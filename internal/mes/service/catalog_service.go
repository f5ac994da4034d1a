package service

import (
	"context"

	"github.com/bitfantasy/nimo-mes/internal/mes/entity"
	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
)

type CatalogService struct {
	catalogRepo *repository.CatalogRepository
}

func NewCatalogService(catalogRepo *repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo}
}

func (s *CatalogService) ListProducts(ctx context.Context) []entity.Product {
	return s.catalogRepo.ListProducts()
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	p, err := s.catalogRepo.GetProduct(id)
	if err != nil {
		return nil, lookup(err, "Product")
	}
	return p, nil
}

func (s *CatalogService) GetBOM(ctx context.Context, productID string) (*entity.ProductBOM, error) {
	bom, err := s.catalogRepo.GetBOM(productID)
	if err != nil {
		return nil, lookup(err, "BOM")
	}
	return bom, nil
}
