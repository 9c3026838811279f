package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                            // 主键
	OrderNo           string         `gorm:"uniqueIndex;not null" json:"order_no"`                            // 订单编号
	UserID            uint           `gorm:"index;not null" json:"user_id"`                                   // 下单用户ID
	Status            string         `gorm:"index;not null" json:"status"`                                    // 订单状态
	ContactName       string         `gorm:"not null" json:"contact_name"`                                    // 联系人姓名
	ContactPhone      string         `gorm:"not null" json:"contact_phone"`                                   // 联系电话
	Contact           string         `gorm:"not null" json:"contact"`                                         // 联系方式展示串 "{name} ({phone})"
	DeliveryAddress   string         `gorm:"not null" json:"delivery_address"`                                // 配送地址
	DeliveryTime      *time.Time     `gorm:"index" json:"delivery_time"`                                      // 期望配送时间（可空）
	SubtotalAmount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal_amount"`   // 商品小计
	SurchargeAmount   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"surcharge_amount"`  // 服务费
	TotalAmount       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`      // 实付金额
	LoyaltyCreditedAt *time.Time     `gorm:"index" json:"-"`                                                  // 积分入账时间（防止重复入账）
	CompletedAt       *time.Time     `gorm:"index" json:"completed_at"`                                       // 完成时间
	CancelledAt       *time.Time     `gorm:"index" json:"cancelled_at"`                                       // 取消时间
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                                         // 创建时间
	UpdatedAt         time.Time      `gorm:"index" json:"updated_at"`                                         // 更新时间
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                                  // 软删除时间

	// 关联
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
