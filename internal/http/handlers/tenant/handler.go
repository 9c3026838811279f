package tenant

import (
	"errors"

	handlershared "github.com/mallhub-next/internal/http/handlers/shared"
	"github.com/mallhub-next/internal/http/response"
	"github.com/mallhub-next/internal/i18n"
	"github.com/mallhub-next/internal/provider"
	"github.com/mallhub-next/internal/service"

	"github.com/gin-gonic/gin"
)

// Handler 商户侧接口处理器入口
type Handler struct {
	*provider.Container
}

// New 创建商户处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "user_id", "error.user_id_invalid", "error.user_id_type_invalid")
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func normalizePagination(page, pageSize int) (int, int) {
	return handlershared.NormalizePagination(page, pageSize)
}

// localizedError 携带文案 key 与参数的业务错误。
type localizedError interface {
	error
	Key() string
	Args() []interface{}
}

type mappedHandlerError struct {
	target error
	code   int
	key    string
}

var tenantErrorRules = []mappedHandlerError{
	{target: service.ErrTenantNotFound, code: response.CodeNotFound, key: "error.tenant_not_found"},
	{target: service.ErrTenantNotApproved, code: response.CodeForbidden, key: "error.tenant_not_approved"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrProductNameRequired, code: response.CodeBadRequest, key: "error.product_name_required"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrInvalidOrderStatus, code: response.CodeBadRequest, key: "error.invalid_order_status"},
	{target: service.ErrInvalidTransition, code: response.CodeConflict, key: "error.invalid_transition"},
}

func respondTenantError(c *gin.Context, err error) {
	for _, rule := range tenantErrorRules {
		if errors.Is(err, rule.target) {
			var le localizedError
			if errors.As(err, &le) {
				locale := i18n.ResolveLocale(c)
				response.Error(c, rule.code, i18n.Sprintf(locale, le.Key(), le.Args()...))
				return
			}
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, response.CodeInternal, "error.internal", err)
}
