package app

import (
	"context"
	"errors"
	"os/signal"
	"time"

	"go.uber.org/zap"
)

// DefaultShutdownTimeout 优雅停机的默认等待时长
const DefaultShutdownTimeout = 10 * time.Second

// Service 可独立启停的后台服务（HTTP 接口、队列 worker）
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Runner 按组启动服务，任一服务退出即触发整体停机
type Runner struct {
	services []Service
}

// NewRunner 创建服务运行器
func NewRunner(services ...Service) *Runner {
	return &Runner{services: services}
}

// RunWithOptions 运行服务并处理系统信号
func RunWithOptions(runner *Runner, opts Options) error {
	if runner == nil {
		return errors.New("runner is nil")
	}
	opts = normalizeOptions(opts)

	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var cancel context.CancelFunc
		ctx, cancel = signal.NotifyContext(ctx, opts.Signals...)
		defer cancel()
	}
	return runner.Run(ctx, opts.ShutdownTimeout, opts.Logger)
}

// Run 并发启动全部服务，阻塞至 ctx 取消或任一服务返回
func (r *Runner) Run(ctx context.Context, stopTimeout time.Duration, log *zap.SugaredLogger) error {
	if r == nil || len(r.services) == 0 {
		return errors.New("no services to run")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	exitCh := make(chan error, len(r.services))
	for _, svc := range r.services {
		go r.startService(ctx, svc, log, exitCh)
	}

	var runErr error
	select {
	case <-ctx.Done():
		runErr = ctx.Err()
	case err := <-exitCh:
		runErr = err
	}
	cancel()

	r.stopAll(stopTimeout, log)

	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

func (r *Runner) startService(ctx context.Context, svc Service, log *zap.SugaredLogger, exitCh chan<- error) {
	if svc == nil {
		exitCh <- errors.New("service is nil")
		return
	}
	name := svc.Name()
	if log != nil {
		log.Infow("service_start", "service", name)
	}
	exitCh <- svc.Start(ctx)
	if log != nil {
		log.Infow("service_exit", "service", name)
	}
}

func (r *Runner) stopAll(stopTimeout time.Duration, log *zap.SugaredLogger) {
	if stopTimeout <= 0 {
		stopTimeout = DefaultShutdownTimeout
	}
	stopCtx, stopCancel := context.WithTimeout(context.Background(), stopTimeout)
	defer stopCancel()

	for _, svc := range r.services {
		if svc == nil {
			continue
		}
		if err := svc.Stop(stopCtx); err != nil && log != nil {
			log.Errorw("service_stop_failed", "service", svc.Name(), "error", err)
		}
	}
}
