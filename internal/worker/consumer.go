package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/vitrine-next/internal/logger"
	"github.com/vitrine-next/internal/provider"
	"github.com/vitrine-next/internal/queue"
	"github.com/vitrine-next/internal/service"

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
	mux.HandleFunc(queue.TaskOrderConfirm, c.handleOrderConfirm)
}

func (c *Consumer) handleOrderConfirm(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.Container == nil || c.CheckoutService == nil {
		logger.Debugw("worker_order_confirm_skip_nil", "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseOrderConfirmPayload(task.Payload())
	if err != nil {
		logger.Warnw("worker_order_confirm_invalid_payload", "error", err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	order, err := c.CheckoutService.ConfirmOrder(payload.OrderNo)
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		logger.Warnw("worker_order_confirm_order_not_found", "order_no", payload.OrderNo)
		return nil
	case errors.Is(err, service.ErrOrderStatusInvalid):
		logger.Warnw("worker_order_confirm_status_invalid", "order_no", payload.OrderNo)
		return nil
	case err != nil:
		logger.Warnw("worker_order_confirm_failed", "order_no", payload.OrderNo, "error", err)
		return err
	}
	logger.Debugw("worker_order_confirm_done", "order_no", order.OrderNo, "status", order.Status)
	return nil
}
