package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mallhub-next/internal/logger"
	"github.com/mallhub-next/internal/provider"
	"github.com/mallhub-next/internal/queue"
	"github.com/mallhub-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskLoyaltyCredit, c.handleLoyaltyCredit)
	mux.HandleFunc(queue.TaskOrderOverdueCancel, c.handleOrderOverdueCancel)
}

func (c *Consumer) handleLoyaltyCredit(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_loyalty_credit_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.LoyaltyCreditPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_loyalty_credit_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_loyalty_credit_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.LoyaltyService == nil {
		logger.Warnw("worker_loyalty_credit_skip_service_nil", "order_id", payload.OrderID)
		return nil
	}
	if err := c.LoyaltyService.CreditOrder(payload.OrderID); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			logger.Debugw("worker_loyalty_credit_skip_order_not_found", "order_id", payload.OrderID)
			return nil
		}
		logger.Warnw("worker_loyalty_credit_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleOrderOverdueCancel(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_overdue_cancel_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderOverdueCancelPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_overdue_cancel_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_overdue_cancel_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.OrderService == nil {
		logger.Warnw("worker_order_overdue_cancel_skip_service_nil", "order_id", payload.OrderID)
		return nil
	}
	if err := c.OrderService.CancelOverdue(payload.OrderID); err != nil {
		logger.Warnw("worker_order_overdue_cancel_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	return nil
}
