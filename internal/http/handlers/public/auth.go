package public

import (
	"github.com/mallhub-next/internal/http/response"
	"github.com/mallhub-next/internal/logger"
	"github.com/mallhub-next/internal/models"
	"github.com/mallhub-next/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// userView 对外暴露的用户信息
type userView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

func newUserView(user *models.User) userView {
	return userView{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		Status:   user.Status,
	}
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.AuthService.Register(service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if h.AuthzService != nil {
		if err := h.AuthzService.SetUserRoles(user.ID, []string{user.Role}); err != nil {
			respondError(c, response.CodeInternal, "error.internal", err)
			return
		}
	}

	response.Success(c, gin.H{"user": newUserView(user)})
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	lctx := service.LoginContext{
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok {
			lctx.RequestID = id
		}
	}

	user, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password, lctx)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	// 预置账号可能尚未建立角色绑定，登录时同步一次
	if h.AuthzService != nil {
		if err := h.AuthzService.SetUserRoles(user.ID, []string{user.Role}); err != nil {
			logger.Warnw("login_role_sync_failed", "error", err, "user_id", user.ID)
		}
	}

	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"user":       newUserView(user),
	})
}

// Logout 退出登录
func (h *Handler) Logout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.AuthService.Logout(uid); err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{"logged_out": true})
}

// ChangePassword 修改密码
func (h *Handler) ChangePassword(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.AuthService.ChangePassword(uid, req.OldPassword, req.NewPassword); err != nil {
		respondAuthError(c, err)
		return
	}
	response.Success(c, gin.H{"changed": true})
}

// Me 获取当前用户信息
func (h *Handler) Me(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserRepo.GetByID(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "error.not_found", nil)
		return
	}
	response.Success(c, gin.H{"user": newUserView(user)})
}
