package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// 用户角色常量
const (
	RoleAdmin    = "admin"
	RoleTenant   = "tenant"
	RoleCustomer = "customer"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 会员等级常量
const (
	TierBronze = "Bronze"
	TierSilver = "Silver"
	TierGold   = "Gold"
)

// 会员等级积分阈值
const (
	TierSilverThreshold = 500
	TierGoldThreshold   = 1500
)

// 订单金额常量
const (
	// ServiceSurchargePercent 下单时在商品小计上附加的服务费百分比
	ServiceSurchargePercent = 10
)

// 商品库存状态常量
const (
	ProductStockStatusInStock    = "in_stock"
	ProductStockStatusLowStock   = "low_stock"
	ProductStockStatusOutOfStock = "out_of_stock"
)

// 店铺分类默认值
const (
	TenantCategoryDefault = "General"
)

// 登录日志状态常量
const (
	LoginLogStatusSuccess = "success"
	LoginLogStatusFailed  = "failed"
)

// 登录日志失败原因常量
const (
	LoginLogFailReasonBadRequest         = "bad_request"
	LoginLogFailReasonInvalidCredentials = "invalid_credentials"
	LoginLogFailReasonUserDisabled       = "user_disabled"
	LoginLogFailReasonInternalError      = "internal_error"
)

// 队列常量
const (
	QueueDefault           = "default"
	TaskLoyaltyCredit      = "loyalty:credit"
	TaskOrderOverdueCancel = "order:overdue_cancel"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "mh"
)

// 缓存键常量
const (
	CacheKeyShopDirectory = "catalog:shops"
)

// 站点语言常量
const (
	LocaleZhCN = "zh-CN"
	LocaleEnUS = "en-US"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleZhCN, LocaleEnUS}
