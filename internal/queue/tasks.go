package queue

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vitrine-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderConfirm 订单延迟确认任务
	TaskOrderConfirm = constants.TaskOrderConfirm
)

// OrderConfirmPayload 订单确认任务载荷
type OrderConfirmPayload struct {
	OrderNo string `json:"order_no"`
}

// NewOrderConfirmTask 创建订单确认任务
func NewOrderConfirmTask(payload OrderConfirmPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderConfirm, body), nil
}

// ParseOrderConfirmPayload 解析订单确认任务载荷
func ParseOrderConfirmPayload(body []byte) (OrderConfirmPayload, error) {
	var payload OrderConfirmPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return payload, err
	}
	payload.OrderNo = strings.TrimSpace(payload.OrderNo)
	if payload.OrderNo == "" {
		return payload, fmt.Errorf("order_no is required")
	}
	return payload, nil
}
