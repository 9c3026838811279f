package service

import (
	"errors"
	"fmt"
)

// 业务哨兵错误，HTTP 层通过 errors.Is 映射为响应码
var (
	ErrNotFound           = errors.New("资源不存在")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrInvalidPassword    = errors.New("原密码错误")
	ErrWeakPassword       = errors.New("密码不符合安全策略")
	ErrUserDisabled       = errors.New("账号已被禁用")
	ErrUsernameTaken      = errors.New("用户名已被注册")
	ErrEmailTaken         = errors.New("邮箱已被注册")
	ErrInvalidRole        = errors.New("角色无效")

	ErrProductNotFound     = errors.New("商品不存在")
	ErrProductNameRequired = errors.New("商品名称不能为空")
	ErrProductNotAvailable = errors.New("商品已下架")
	ErrInvalidCartItem     = errors.New("购物车条目无效")
	ErrCartEmpty           = errors.New("购物车为空")

	ErrContactNameRequired  = errors.New("联系人姓名不能为空")
	ErrContactPhoneRequired = errors.New("联系电话不能为空")
	ErrAddressRequired      = errors.New("配送地址不能为空")
	ErrDeliveryTimeInvalid  = errors.New("配送时间必须是未来的 ISO-8601 时间")

	ErrInsufficientStock  = errors.New("库存不足")
	ErrOrderNotFound      = errors.New("订单不存在")
	ErrInvalidTransition  = errors.New("订单状态流转非法")
	ErrInvalidOrderStatus = errors.New("订单状态无效")

	ErrTenantNotFound    = errors.New("店铺信息不存在")
	ErrTenantNotApproved = errors.New("店铺未通过审核")

	ErrQueueUnavailable = errors.New("队列服务不可用")
)

// localizedError 携带文案 key 与参数的错误，HTTP 层用于渲染本地化消息
type localizedError interface {
	error
	Key() string
	Args() []interface{}
}

// insufficientStockError 库存不足冲突，携带商品名用于原样透出
type insufficientStockError struct {
	productName string
}

func (e insufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.productName)
}

func (e insufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

func (e insufficientStockError) Key() string {
	return "error.insufficient_stock"
}

func (e insufficientStockError) Args() []interface{} {
	return []interface{}{e.productName}
}

// NewInsufficientStockError 构建库存不足错误
func NewInsufficientStockError(productName string) error {
	return insufficientStockError{productName: productName}
}

// invalidTransitionError 状态流转冲突，携带前后状态用于原样透出
type invalidTransitionError struct {
	from string
	to   string
}

func (e invalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change order status from %s to %s", e.from, e.to)
}

func (e invalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

func (e invalidTransitionError) Key() string {
	return "error.invalid_transition"
}

func (e invalidTransitionError) Args() []interface{} {
	return []interface{}{e.from, e.to}
}

// NewInvalidTransitionError 构建状态流转错误
func NewInvalidTransitionError(from, to string) error {
	return invalidTransitionError{from: from, to: to}
}
