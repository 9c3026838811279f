package public

import (
	"errors"

	"github.com/mallhub-next/internal/http/response"
	"github.com/mallhub-next/internal/i18n"
	"github.com/mallhub-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

// localizedError 携带文案 key 与参数的业务错误。
type localizedError interface {
	error
	Key() string
	Args() []interface{}
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
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
	respondError(c, fallbackCode, fallbackKey, err)
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCartItem, code: response.CodeBadRequest, key: "error.cart_item_invalid"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrInsufficientStock, code: response.CodeConflict, key: "error.insufficient_stock"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrContactNameRequired, code: response.CodeBadRequest, key: "error.contact_name_required"},
	{target: service.ErrContactPhoneRequired, code: response.CodeBadRequest, key: "error.contact_phone_required"},
	{target: service.ErrAddressRequired, code: response.CodeBadRequest, key: "error.address_required"},
	{target: service.ErrDeliveryTimeInvalid, code: response.CodeBadRequest, key: "error.delivery_time_invalid"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrInsufficientStock, code: response.CodeConflict, key: "error.insufficient_stock"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrInvalidOrderStatus, code: response.CodeBadRequest, key: "error.invalid_order_status"},
	{target: service.ErrInvalidTransition, code: response.CodeConflict, key: "error.invalid_transition"},
	{target: service.ErrTenantNotFound, code: response.CodeNotFound, key: "error.tenant_not_found"},
}

var wishlistErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
}

var authErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeBadRequest, key: "error.invalid_credentials"},
	{target: service.ErrUserDisabled, code: response.CodeForbidden, key: "error.user_disabled"},
	{target: service.ErrUsernameTaken, code: response.CodeConflict, key: "error.username_taken"},
	{target: service.ErrEmailTaken, code: response.CodeConflict, key: "error.email_taken"},
	{target: service.ErrInvalidRole, code: response.CodeBadRequest, key: "error.invalid_role"},
	{target: service.ErrInvalidPassword, code: response.CodeBadRequest, key: "error.invalid_password"},
	{target: service.ErrWeakPassword, code: response.CodeBadRequest, key: "error.password_too_weak"},
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
}

func respondCheckoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.internal")
}

func respondOrderError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "error.internal")
}

func respondWishlistError(c *gin.Context, err error) {
	respondWithMappedError(c, err, wishlistErrorRules, response.CodeInternal, "error.internal")
}

func respondAuthError(c *gin.Context, err error) {
	respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "error.internal")
}
