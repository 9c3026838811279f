package tenant

import (
	"strconv"
	"strings"

	"github.com/mallhub-next/internal/http/response"
	"github.com/mallhub-next/internal/models"
	"github.com/mallhub-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	ImageURL    string       `json:"image_url"`
	Price       models.Money `json:"price"`
	Stock       int          `json:"stock"`
	IsActive    *bool        `json:"is_active"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Price:       r.Price,
		Stock:       r.Stock,
		IsActive:    r.IsActive,
	}
}

// GetProducts 获取本店铺商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	tenant, err := h.TenantService.EnsureForUser(uid)
	if err != nil {
		respondTenantError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	search := strings.TrimSpace(c.Query("search"))

	products, total, err := h.ProductService.ListForTenant(tenant.ID, search, page, pageSize)
	if err != nil {
		respondTenantError(c, err)
		return
	}

	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, gin.H{"products": products}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.CreateForTenant(uid, req.toInput())
	if err != nil {
		respondTenantError(c, err)
		return
	}
	response.Success(c, gin.H{"product": product})
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.UpdateForTenant(uid, uint(productID), req.toInput())
	if err != nil {
		respondTenantError(c, err)
		return
	}
	response.Success(c, gin.H{"product": product})
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.ProductService.DeleteForTenant(uid, uint(productID)); err != nil {
		respondTenantError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
