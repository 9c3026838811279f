package models

import (
	"time"

	"gorm.io/gorm"
)

// Tenant 商户店铺表
type Tenant struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                          // 主键
	UserID         uint           `gorm:"uniqueIndex;not null" json:"user_id"`                           // 所属用户ID
	ShopName       string         `gorm:"not null" json:"shop_name"`                                     // 店铺名称
	Description    string         `gorm:"type:text" json:"description"`                                  // 店铺介绍
	ImageURL       string         `json:"image_url"`                                                     // 店铺图片
	Category       string         `gorm:"index;default:'General'" json:"category"`                       // 店铺分类
	IsApproved     bool           `gorm:"default:false;index" json:"is_approved"`                        // 是否通过审核
	AccountBalance Money          `gorm:"type:decimal(20,2);not null;default:0" json:"account_balance"` // 累计营收
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt      time.Time      `json:"updated_at"`                                                    // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间
}

// TableName 指定表名
func (Tenant) TableName() string {
	return "tenants"
}
