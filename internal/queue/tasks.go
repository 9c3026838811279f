package queue

import (
	"encoding/json"

	"github.com/mallhub-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskLoyaltyCredit 订单完成后的积分入账任务
	TaskLoyaltyCredit = constants.TaskLoyaltyCredit
	// TaskOrderOverdueCancel 配送超期取消任务
	TaskOrderOverdueCancel = constants.TaskOrderOverdueCancel
)

// LoyaltyCreditPayload 积分入账任务载荷
type LoyaltyCreditPayload struct {
	OrderID uint `json:"order_id"`
}

// OrderOverdueCancelPayload 超期取消任务载荷
type OrderOverdueCancelPayload struct {
	OrderID uint `json:"order_id"`
}

// NewLoyaltyCreditTask 创建积分入账任务
func NewLoyaltyCreditTask(payload LoyaltyCreditPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLoyaltyCredit, body), nil
}

// NewOrderOverdueCancelTask 创建超期取消任务
func NewOrderOverdueCancelTask(payload OrderOverdueCancelPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderOverdueCancel, body), nil
}
