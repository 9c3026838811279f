package service

import (
	"strings"

	"github.com/mallhub-next/internal/models"
	"github.com/mallhub-next/internal/repository"
)

// ProductService 商品业务服务
type ProductService struct {
	productRepo repository.ProductRepository
	tenantRepo  repository.TenantRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, tenantRepo repository.TenantRepository) *ProductService {
	return &ProductService{productRepo: productRepo, tenantRepo: tenantRepo}
}

// ProductInput 创建/更新商品输入
type ProductInput struct {
	Name        string
	Description string
	ImageURL    string
	Price       models.Money
	Stock       int
	IsActive    *bool
}

// ListPublic 获取公开商品列表（仅在售）
func (s *ProductService) ListPublic(search string, tenantID uint, page, pageSize int) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		TenantID:   tenantID,
		Search:     search,
		OnlyActive: true,
		WithTenant: true,
	}
	return s.productRepo.List(filter)
}

// GetPublic 获取公开商品详情
func (s *ProductService) GetPublic(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListForTenant 获取商户自己的商品列表（含下架）
func (s *ProductService) ListForTenant(tenantID uint, search string, page, pageSize int) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		TenantID: tenantID,
		Search:   search,
	}
	return s.productRepo.List(filter)
}

// CreateForTenant 商户创建商品，店铺未通过审核时拒绝
func (s *ProductService) CreateForTenant(userID uint, input ProductInput) (*models.Product, error) {
	tenant, err := s.approvedTenant(userID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProductNameRequired
	}

	product := &models.Product{
		TenantID:    tenant.ID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		Price:       input.Price,
		Stock:       input.Stock,
		IsActive:    true,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if product.Stock < 0 {
		product.Stock = 0
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateForTenant 商户更新自己的商品
func (s *ProductService) UpdateForTenant(userID, productID uint, input ProductInput) (*models.Product, error) {
	tenant, err := s.approvedTenant(userID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.TenantID != tenant.ID {
		return nil, ErrProductNotFound
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		product.Name = name
	}
	product.Description = strings.TrimSpace(input.Description)
	product.ImageURL = strings.TrimSpace(input.ImageURL)
	product.Price = input.Price
	product.Stock = input.Stock
	if product.Stock < 0 {
		product.Stock = 0
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteForTenant 商户删除自己的商品
func (s *ProductService) DeleteForTenant(userID, productID uint) error {
	tenant, err := s.tenantForUser(userID)
	if err != nil {
		return err
	}
	rows, err := s.productRepo.Delete(productID, tenant.ID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *ProductService) tenantForUser(userID uint) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, ErrTenantNotFound
	}
	return tenant, nil
}

func (s *ProductService) approvedTenant(userID uint) (*models.Tenant, error) {
	tenant, err := s.tenantForUser(userID)
	if err != nil {
		return nil, err
	}
	if !tenant.IsApproved {
		return nil, ErrTenantNotApproved
	}
	return tenant, nil
}
