package service

import (
	"strings"

	"github.com/vitrine-next/internal/catalog"
	"github.com/vitrine-next/internal/models"
	"github.com/vitrine-next/internal/repository"
)

// CatalogService 商品目录服务
type CatalogService struct {
	productRepo repository.ProductRepository
}

// NewCatalogService 创建目录服务
func NewCatalogService(productRepo repository.ProductRepository) *CatalogService {
	return &CatalogService{productRepo: productRepo}
}

// List 按筛选条件分页获取上架商品
func (s *CatalogService) List(filter catalog.Filter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// GetBySlug 根据 slug 获取上架商品
func (s *CatalogService) GetBySlug(slug string) (*models.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrProductNotFound
	}
	product, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetByID 根据 ID 获取上架商品
func (s *CatalogService) GetByID(id uint) (*models.Product, error) {
	if id == 0 {
		return nil, ErrProductNotFound
	}
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}
