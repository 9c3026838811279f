package i18n

import (
	"fmt"
	"strings"

	"github.com/mallhub-next/internal/constants"

	"github.com/gin-gonic/gin"
)

// messages 按语言组织的文案表，键缺失时回退到 en-US，再回退到键本身
var messages = map[string]map[string]string{
	constants.LocaleEnUS: {
		"error.bad_request":              "invalid request",
		"error.unauthorized":             "unauthorized",
		"error.forbidden":                "forbidden",
		"error.not_found":                "resource not found",
		"error.internal":                 "internal server error",
		"error.rate_limited":             "too many requests, retry in %d seconds",
		"error.rate_limit_unavailable":   "rate limiter unavailable",
		"error.login_too_many":           "too many login attempts, retry in %d seconds",
		"error.jwt_secret_missing":       "jwt secret not configured",
		"error.auth_header_missing":      "authorization header is required",
		"error.auth_header_invalid":      "authorization header is malformed",
		"error.token_invalid":            "invalid or expired token",
		"error.token_revoked":            "token has been revoked",
		"error.invalid_credentials":      "invalid username or password",
		"error.user_disabled":            "account disabled",
		"error.username_taken":           "username already registered",
		"error.email_taken":              "email already registered",
		"error.invalid_role":             "invalid role",
		"error.invalid_password":         "current password is incorrect",
		"error.password_too_weak":        "password does not meet the policy",
		"error.password_min_length":      "password must be at least %d characters",
		"error.password_require_upper":   "password must contain an uppercase letter",
		"error.password_require_lower":   "password must contain a lowercase letter",
		"error.password_require_number":  "password must contain a digit",
		"error.password_require_special": "password must contain a special character",
		"error.session_required":         "X-Session-ID header is required",
		"error.user_id_invalid":          "invalid user id",
		"error.user_id_type_invalid":     "unexpected user id type",
		"error.product_name_required":    "product name is required",
		"error.queue_unavailable":        "task queue unavailable",
		"error.product_not_found":        "product not found",
		"error.cart_item_invalid":        "invalid cart item",
		"error.cart_empty":               "cart is empty",
		"error.contact_name_required":    "contact name is required",
		"error.contact_phone_required":   "contact phone is required",
		"error.address_required":         "delivery address is required",
		"error.delivery_time_invalid":    "delivery time must be a future ISO-8601 timestamp",
		"error.insufficient_stock":       "insufficient stock for %s",
		"error.order_not_found":          "order not found",
		"error.invalid_transition":       "cannot change order status from %s to %s",
		"error.invalid_order_status":     "invalid order status",
		"error.tenant_not_found":         "tenant profile not found",
		"error.tenant_not_approved":      "shop not approved, please contact admin",
		"error.wishlist_product_invalid": "invalid wishlist product",
	},
	constants.LocaleZhCN: {
		"error.bad_request":              "请求参数无效",
		"error.unauthorized":             "未登录或登录已过期",
		"error.forbidden":                "没有操作权限",
		"error.not_found":                "资源不存在",
		"error.internal":                 "服务器内部错误",
		"error.rate_limited":             "请求过于频繁，请在 %d 秒后重试",
		"error.rate_limit_unavailable":   "限流服务不可用",
		"error.login_too_many":           "登录尝试过于频繁，请在 %d 秒后重试",
		"error.jwt_secret_missing":       "JWT 密钥未配置",
		"error.auth_header_missing":      "缺少 Authorization 请求头",
		"error.auth_header_invalid":      "Authorization 请求头格式错误",
		"error.token_invalid":            "登录凭证无效或已过期",
		"error.token_revoked":            "登录凭证已失效",
		"error.invalid_credentials":      "用户名或密码错误",
		"error.user_disabled":            "账号已被禁用",
		"error.username_taken":           "用户名已被注册",
		"error.email_taken":              "邮箱已被注册",
		"error.invalid_role":             "角色无效",
		"error.invalid_password":         "原密码错误",
		"error.password_too_weak":        "密码不符合安全策略",
		"error.password_min_length":      "密码长度不能少于 %d 位",
		"error.password_require_upper":   "密码必须包含大写字母",
		"error.password_require_lower":   "密码必须包含小写字母",
		"error.password_require_number":  "密码必须包含数字",
		"error.password_require_special": "密码必须包含特殊字符",
		"error.session_required":         "缺少 X-Session-ID 请求头",
		"error.user_id_invalid":          "用户标识无效",
		"error.user_id_type_invalid":     "用户标识类型异常",
		"error.product_name_required":    "商品名称不能为空",
		"error.queue_unavailable":        "队列服务不可用",
		"error.product_not_found":        "商品不存在",
		"error.cart_item_invalid":        "购物车条目无效",
		"error.cart_empty":               "购物车为空",
		"error.contact_name_required":    "联系人姓名不能为空",
		"error.contact_phone_required":   "联系电话不能为空",
		"error.address_required":         "配送地址不能为空",
		"error.delivery_time_invalid":    "配送时间必须是未来的 ISO-8601 时间",
		"error.insufficient_stock":       "商品 %s 库存不足",
		"error.order_not_found":          "订单不存在",
		"error.invalid_transition":       "订单状态不能从 %s 变更为 %s",
		"error.invalid_order_status":     "订单状态无效",
		"error.tenant_not_found":         "店铺信息不存在",
		"error.tenant_not_approved":      "店铺未通过审核，请联系管理员",
		"error.wishlist_product_invalid": "收藏的商品无效",
	},
}

// ResolveLocale 从请求头解析站点语言，不认识的值回退到默认语言
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return constants.LocaleEnUS
	}
	raw := strings.TrimSpace(c.GetHeader("Accept-Language"))
	if raw == "" {
		return constants.LocaleEnUS
	}
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		for _, locale := range constants.SupportedLocales {
			if strings.EqualFold(tag, locale) || strings.EqualFold(tag, strings.SplitN(locale, "-", 2)[0]) {
				return locale
			}
		}
	}
	return constants.LocaleEnUS
}

// T 按语言取文案
func T(locale, key string) string {
	if table, ok := messages[locale]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[constants.LocaleEnUS][key]; ok {
		return msg
	}
	return key
}

// Sprintf 按语言取带参数的文案
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}
