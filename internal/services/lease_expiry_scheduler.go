package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"propman/pkg/logger"

	"github.com/robfig/cron/v3"
)

// LeaseExpiryScheduler 定时将已过结束日期的租约置为 ENDED
type LeaseExpiryScheduler struct {
	leases   *LeaseService
	schedule string
	cron     *cron.Cron
	now      func() time.Time

	mu      sync.Mutex
	running bool
}

// NewLeaseExpiryScheduler schedule 为标准5段 cron 表达式
func NewLeaseExpiryScheduler(leases *LeaseService, schedule string) *LeaseExpiryScheduler {
	return &LeaseExpiryScheduler{
		leases:   leases,
		schedule: schedule,
		cron:     cron.New(),
		now:      time.Now,
	}
}

// Start 启动调度器
func (s *LeaseExpiryScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("lease expiry scheduler already running")
	}

	if _, err := s.cron.AddFunc(s.schedule, s.runOnce); err != nil {
		return fmt.Errorf("invalid lease expiry schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.running = true
	logger.GetLogger().Infof("Lease expiry scheduler started, cron: %s", s.schedule)
	return nil
}

// Stop 停止调度器，等待正在执行的任务结束
func (s *LeaseExpiryScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	<-s.cron.Stop().Done()
	s.running = false
	logger.GetLogger().Info("Lease expiry scheduler stopped")
}

// Sweep 立即执行一次
func (s *LeaseExpiryScheduler) Sweep(ctx context.Context) (int64, error) {
	return s.leases.EndExpired(ctx, s.now())
}

func (s *LeaseExpiryScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	ended, err := s.Sweep(ctx)
	if err != nil {
		logger.GetLogger().Errorf("Lease expiry sweep failed: %v", err)
		return
	}
	if ended > 0 {
		logger.GetLogger().Infof("Lease expiry sweep ended %d lease(s)", ended)
	}
}
