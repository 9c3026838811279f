package shared

import (
	"strings"

	"github.com/mallhub-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// SessionIDHeader 会话购物车标识头
const SessionIDHeader = "X-Session-ID"

// GetContextUintWithKeys 从上下文读取 uint 值并统一处理错误响应。
func GetContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, typeInvalidKey, nil)
		return 0, false
	}
}

// GetSessionID 读取购物车会话标识，缺失时返回 false 并响应 400。
func GetSessionID(c *gin.Context) (string, bool) {
	sessionID := strings.TrimSpace(c.GetHeader(SessionIDHeader))
	if sessionID == "" {
		RespondError(c, response.CodeBadRequest, "error.session_required", nil)
		return "", false
	}
	return sessionID, true
}
