package models

import "time"

// CustomerProfile 顾客资料表，积分只存累计值，等级永远按积分现算
type CustomerProfile struct {
	ID            uint      `gorm:"primarykey" json:"id"`                // 主键
	UserID        uint      `gorm:"uniqueIndex;not null" json:"user_id"` // 所属用户ID
	LoyaltyPoints int       `gorm:"not null;default:0" json:"loyalty_points"`
	CreatedAt     time.Time `json:"created_at"` // 创建时间
	UpdatedAt     time.Time `json:"updated_at"` // 更新时间
}

// TableName 指定表名
func (CustomerProfile) TableName() string {
	return "customer_profiles"
}
