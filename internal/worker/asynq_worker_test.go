package worker

import (
	"context"
	"testing"

	"github.com/mallhub-next/internal/provider"
	"github.com/mallhub-next/internal/queue"

	"github.com/hibiken/asynq"
)

func TestHandleLoyaltyCreditSkipsInvalidPayload(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})

	task := asynq.NewTask(queue.TaskLoyaltyCredit, []byte(`{"order_id":0}`))
	if err := consumer.handleLoyaltyCredit(context.Background(), task); err != nil {
		t.Fatalf("expected nil for zero order id, got %v", err)
	}
}

func TestHandleLoyaltyCreditRejectsMalformedPayload(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})

	task := asynq.NewTask(queue.TaskLoyaltyCredit, []byte(`{not-json`))
	if err := consumer.handleLoyaltyCredit(context.Background(), task); err == nil {
		t.Fatalf("expected unmarshal error for malformed payload")
	}
}

func TestHandleLoyaltyCreditSkipsWhenServiceMissing(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})

	task, err := queue.NewLoyaltyCreditTask(queue.LoyaltyCreditPayload{OrderID: 42})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	// 服务未装配时直接跳过，不应让任务进入重试
	if err := consumer.handleLoyaltyCredit(context.Background(), task); err != nil {
		t.Fatalf("expected nil when loyalty service missing, got %v", err)
	}
}

func TestHandleOrderOverdueCancelSkipsInvalidPayload(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})

	task := asynq.NewTask(queue.TaskOrderOverdueCancel, []byte(`{"order_id":0}`))
	if err := consumer.handleOrderOverdueCancel(context.Background(), task); err != nil {
		t.Fatalf("expected nil for zero order id, got %v", err)
	}
}

func TestRegisterToleratesNilMux(t *testing.T) {
	consumer := NewConsumer(nil)
	consumer.Register(nil)

	var nilConsumer *Consumer
	nilConsumer.Register(asynq.NewServeMux())
}
