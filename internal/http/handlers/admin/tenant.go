package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/mallhub-next/internal/http/response"
	"github.com/mallhub-next/internal/repository"
	"github.com/mallhub-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetTenants 获取商户列表
func (h *Handler) GetTenants(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	views, total, err := h.DashboardService.ListTenants(repository.TenantListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
		Category: strings.TrimSpace(c.Query("category")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, gin.H{"tenants": views}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// ToggleTenantApproval 切换商户审核状态
func (h *Handler) ToggleTenantApproval(c *gin.Context) {
	tenantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || tenantID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	tenant, err := h.DashboardService.ToggleTenantApproval(uint(tenantID))
	if err != nil {
		if errors.Is(err, service.ErrTenantNotFound) {
			respondError(c, response.CodeNotFound, "error.tenant_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"tenant": tenant})
}
