package handler

import (
	"github.com/bitfantasy/nimo-mes/internal/mes/repository"
	"github.com/bitfantasy/nimo-mes/internal/mes/service"
	"github.com/gin-gonic/gin"
)

// InventoryHandler 库存处理器
type InventoryHandler struct {
	svc *service.InventoryService
}

func NewInventoryHandler(svc *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// List GET /api/items?search=&category=&page=&pageSize=
func (h *InventoryHandler) List(c *gin.Context) {
	page, ok := queryInt(c, "page")
	if !ok {
		return
	}
	pageSize, ok := queryInt(c, "pageSize")
	if !ok {
		return
	}
	result, err := h.svc.List(c.Request.Context(), repository.ItemListParams{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, result)
}

// Get GET /api/items/:id
func (h *InventoryHandler) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, item)
}

// CatalogHandler 产品/BOM处理器
type CatalogHandler struct {
	svc *service.CatalogService
}

func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	OK(c, h.svc.ListProducts(c.Request.Context()))
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	p, err := h.svc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, p)
}

// GetBOM GET /api/boms/:productId
func (h *CatalogHandler) GetBOM(c *gin.Context) {
	bom, err := h.svc.GetBOM(c.Request.Context(), c.Param("productId"))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, bom)
}
