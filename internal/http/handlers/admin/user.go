package admin

import (
	"context"
	"strconv"
	"strings"

	"github.com/mallhub-next/internal/cache"
	"github.com/mallhub-next/internal/constants"
	"github.com/mallhub-next/internal/http/response"
	"github.com/mallhub-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// userListItem 管理端用户列表项
type userListItem struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// GetUsers 获取用户列表
func (h *Handler) GetUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	users, total, err := h.UserRepo.List(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Role:     strings.TrimSpace(c.Query("role")),
		Status:   strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	items := make([]userListItem, 0, len(users))
	for _, user := range users {
		items = append(items, userListItem{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			Role:      user.Role,
			Status:    user.Status,
			CreatedAt: user.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, gin.H{"users": items}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// UpdateUserStatusRequest 用户状态更新请求
type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateUserStatus 启用/禁用用户，禁用后已签发 Token 立即失效
func (h *Handler) UpdateUserStatus(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || userID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if uint(userID) == adminID {
		// 不允许管理员禁用自己
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status != constants.UserStatusActive && status != constants.UserStatusDisabled {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	user, err := h.UserRepo.GetByID(uint(userID))
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "error.not_found", nil)
		return
	}

	if err := h.UserRepo.UpdateStatus(user.ID, status); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if err := cache.DelUserAuthState(context.Background(), user.ID); err != nil {
		requestLog(c).Warnw("auth_state_invalidate_failed", "user_id", user.ID, "error", err)
	}
	response.Success(c, gin.H{"user_id": user.ID, "status": status})
}

// GetUserLoginLogs 获取登录日志列表
func (h *Handler) GetUserLoginLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.UserLoginLogListFilter{
		Page:     page,
		PageSize: pageSize,
		Username: strings.TrimSpace(c.Query("username")),
		Status:   strings.TrimSpace(c.Query("status")),
	}
	if raw := c.Query("user_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		filter.UserID = uint(parsed)
	}

	logs, total, err := h.UserLoginLogRepo.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, gin.H{"logs": logs}, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}
