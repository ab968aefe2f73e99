package queue

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vitrine-next/internal/config"
	"github.com/vitrine-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault
	// ConfirmQueue 订单确认任务所在队列
	ConfirmQueue = constants.QueueCritical

	orderConfirmMaxRetry = 5
)

// Client 队列客户端封装，未启用时所有投递都是 no-op
type Client struct {
	client       *asynq.Client
	enabled      bool
	confirmQueue string
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{enabled: false, confirmQueue: ConfirmQueue}, nil
	}
	opt := buildRedisOpt(cfg)
	client := asynq.NewClient(opt)
	return &Client{
		client:       client,
		enabled:      true,
		confirmQueue: ConfirmQueue,
	}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueOrderConfirm 推送订单延迟确认任务。同一订单号只保留一个任务，重复投递视为成功。
func (c *Client) EnqueueOrderConfirm(payload OrderConfirmPayload, delay time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	if delay < 0 {
		delay = 0
	}
	task, err := NewOrderConfirmTask(payload)
	if err != nil {
		return err
	}
	options := []asynq.Option{
		asynq.Queue(c.confirmQueue),
		asynq.ProcessIn(delay),
		asynq.MaxRetry(orderConfirmMaxRetry),
		asynq.TaskID(orderConfirmTaskID(payload.OrderNo)),
	}
	_, err = c.client.Enqueue(task, options...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}

func orderConfirmTaskID(orderNo string) string {
	return TaskOrderConfirm + ":" + orderNo
}

// BuildServerConfig 生成队列服务配置；确认队列缺省时补上，避免确认任务无人消费
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	opt := buildRedisOpt(cfg)
	concurrency := 10
	if cfg != nil && cfg.Concurrency > 0 {
		concurrency = cfg.Concurrency
	}
	queues := map[string]int{ConfirmQueue: 2, DefaultQueue: 1}
	if cfg != nil && len(cfg.Queues) > 0 {
		queues = make(map[string]int, len(cfg.Queues)+1)
		for name, weight := range cfg.Queues {
			if weight > 0 {
				queues[name] = weight
			}
		}
		if _, ok := queues[ConfirmQueue]; !ok {
			queues[ConfirmQueue] = 1
		}
	}
	return opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
	}
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	host := "127.0.0.1"
	port := 6379
	password := ""
	db := 0
	if cfg != nil {
		if strings.TrimSpace(cfg.Host) != "" {
			host = strings.TrimSpace(cfg.Host)
		}
		if cfg.Port > 0 {
			port = cfg.Port
		}
		password = cfg.Password
		db = cfg.DB
	}
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	}
}
