package worker

import (
	"context"
	"errors"
	"time"

	"github.com/palengke/storefront/internal/config"
	"github.com/palengke/storefront/internal/logger"
	"github.com/palengke/storefront/internal/queue"

	"github.com/hibiken/asynq"
)

const defaultSweepInterval = time.Hour

// Service runs the asynq consumer plus the periodic order sweep.
type Service struct {
	name          string
	server        *asynq.Server
	mux           *asynq.ServeMux
	consumer      *Consumer
	sweepInterval time.Duration
}

// NewService creates the worker service.
func NewService(cfg *config.QueueConfig, consumer *Consumer, sweepIntervalMinutes int) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	sweepInterval := defaultSweepInterval
	if sweepIntervalMinutes > 0 {
		sweepInterval = time.Duration(sweepIntervalMinutes) * time.Minute
	}
	return &Service{
		name:          "worker",
		server:        server,
		mux:           mux,
		consumer:      consumer,
		sweepInterval: sweepInterval,
	}, nil
}

// Name returns the service name.
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start runs the consumer and the sweep loop until the context ends.
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.OrderService != nil {
		go runOrderSweepLoop(ctx, s.consumer, s.sweepInterval)
	}
	return s.server.Run(s.mux)
}

// Stop shuts the consumer down.
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// SweepService runs only the periodic order sweep, for deployments that
// keep the queue disabled.
type SweepService struct {
	consumer      *Consumer
	sweepInterval time.Duration
}

// NewSweepService creates a sweep-only service.
func NewSweepService(consumer *Consumer, sweepIntervalMinutes int) *SweepService {
	sweepInterval := defaultSweepInterval
	if sweepIntervalMinutes > 0 {
		sweepInterval = time.Duration(sweepIntervalMinutes) * time.Minute
	}
	return &SweepService{consumer: consumer, sweepInterval: sweepInterval}
}

// Name returns the service name.
func (s *SweepService) Name() string {
	return "order-sweep"
}

// Start blocks on the sweep loop until the context ends.
func (s *SweepService) Start(ctx context.Context) error {
	if s == nil || s.consumer == nil || s.consumer.OrderService == nil {
		return errors.New("sweep not initialized")
	}
	runOrderSweepLoop(ctx, s.consumer, s.sweepInterval)
	return nil
}

// Stop is a no-op; the loop exits with the start context.
func (s *SweepService) Stop(ctx context.Context) error {
	_ = ctx
	return nil
}

// runOrderSweepLoop periodically completes delivered orders that have
// aged past the configured window.
func runOrderSweepLoop(ctx context.Context, consumer *Consumer, interval time.Duration) {
	if consumer == nil || consumer.OrderService == nil {
		return
	}
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	runOnce := func() {
		if _, err := consumer.OrderService.CompleteAgedDeliveries(time.Now()); err != nil {
			logger.Warnw("worker_order_sweep_failed", "error", err)
		}
	}
	runOnce()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
