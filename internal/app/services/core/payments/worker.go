package payments

import (
	"context"
	"medconsult-service/internal/app/config"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/pkg/constvars"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	defaultReconcileCronSpec = "@every 5m"
	reconcileLeaderLockTTL   = 2 * time.Minute
)

// Worker periodically reconciles pushes still awaiting a provider callback.
// Only one instance runs a pass at a time, guarded by a Redis leader lock.
type Worker struct {
	log            *zap.Logger
	cfg            *config.InternalConfig
	locker         contracts.LockerService
	paymentUsecase contracts.PaymentUsecase
	stop           chan struct{}
	cron           *cron.Cron
	runCtx         context.Context
	cancel         context.CancelFunc
}

func NewWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, paymentUsecase contracts.PaymentUsecase) *Worker {
	return &Worker{log: log, cfg: cfg, locker: lockerSvc, paymentUsecase: paymentUsecase, stop: make(chan struct{})}
}

func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.Payment.ReconcileCronSpec
	if spec == "" {
		spec = defaultReconcileCronSpec
	}
	_, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("payments.worker: invalid cron spec, falling back to default",
			zap.String("spec", spec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(defaultReconcileCronSpec, func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop waits for an in-flight pass to finish.
func (w *Worker) Stop() {
	select {
	case <-w.stop:
	default:
		close(w.stop)
	}
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		ctx := w.cron.Stop()
		<-ctx.Done()
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisKeyReconcileLeaderLock, reconcileLeaderLockTTL)
	if err != nil {
		w.log.Warn("payments.worker: leader lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Info("payments.worker: leader lock held by another instance")
		return
	}
	defer w.locker.Unlock(ctx, constvars.RedisKeyReconcileLeaderLock, token)

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go func() {
		tick := time.NewTicker(reconcileLeaderLockTTL / 2)
		defer tick.Stop()
		for {
			select {
			case <-refreshCtx.Done():
				return
			case <-tick.C:
				if err := w.locker.Refresh(ctx, constvars.RedisKeyReconcileLeaderLock, token, reconcileLeaderLockTTL); err != nil {
					w.log.Warn("payments.worker: failed to refresh leader lock", zap.Error(err))
				}
			}
		}
	}()

	settled, err := w.paymentUsecase.ReconcileAwaitingSettlement(ctx)
	if err != nil {
		w.log.Warn("payments.worker: reconciliation pass failed", zap.Error(err))
		return
	}
	w.log.Info("payments.worker: reconciliation pass finished", zap.Int(constvars.LoggingCountKey, settled))
}
