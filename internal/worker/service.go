package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vitrine-next/internal/config"
	"github.com/vitrine-next/internal/logger"
	"github.com/vitrine-next/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	staleConfirmInterval = time.Minute
	staleConfirmBatch    = 100
)

// Service 订单确认 worker：消费 order:confirm 任务，并定期补确认漏掉的订单
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer

	mu          sync.Mutex
	cancelSweep context.CancelFunc
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   asynq.NewServer(opt, serverCfg),
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动消费与补确认循环，阻塞到服务关闭
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.CheckoutService != nil {
		sweepCtx, cancel := context.WithCancel(ctx)
		s.mu.Lock()
		s.cancelSweep = cancel
		s.mu.Unlock()
		go s.runStaleConfirmLoop(sweepCtx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止补确认循环并关闭 asynq 服务
func (s *Service) Stop(_ context.Context) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	if s.cancelSweep != nil {
		s.cancelSweep()
		s.cancelSweep = nil
	}
	s.mu.Unlock()
	if s.server != nil {
		s.server.Shutdown()
	}
	return nil
}

// runStaleConfirmLoop 定期补确认丢失了队列任务的订单
func (s *Service) runStaleConfirmLoop(ctx context.Context) {
	s.sweepOnce()

	ticker := time.NewTicker(staleConfirmInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepOnce()
		}
	}
}

func (s *Service) sweepOnce() int {
	confirmed, err := s.consumer.CheckoutService.ConfirmStale(staleConfirmBatch)
	if err != nil {
		logger.Warnw("worker_confirm_stale_failed", "error", err)
		return 0
	}
	if confirmed > 0 {
		logger.Infow("worker_confirm_stale_done", "confirmed", confirmed)
	}
	return confirmed
}
