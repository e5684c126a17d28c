package sweep

import (
	"context"
	"time"

	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/config"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/contracts"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/constvars"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Worker periodically lapses expired slot locks back to pending.
type Worker struct {
	log                *zap.Logger
	cfg                *config.InternalConfig
	locker             contracts.LockerService
	appointmentUsecase contracts.AppointmentUsecase
	cron               *cron.Cron
	runCtx             context.Context
	cancel             context.CancelFunc
}

func NewWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, appointmentUsecase contracts.AppointmentUsecase) *Worker {
	return &Worker{log: log, cfg: cfg, locker: lockerSvc, appointmentUsecase: appointmentUsecase}
}

// Start begins the periodic sweep loop.
func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)
	c := cron.New()
	spec := w.cfg.Booking.SweepCronSpec
	_, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) })
	if err != nil {
		w.log.Warn("sweep.worker: failed to schedule with provided cron spec; falling back to @every 1m", zap.Error(err))
		c = cron.New()
		_, _ = c.AddFunc("@every 1m", func() { w.runOnce(w.runCtx) })
	}
	c.Start()
	w.cron = c
}

// Stop gracefully stops the worker cron and any in-flight sweep.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		ctx := w.cron.Stop() // wait for running jobs to finish
		<-ctx.Done()
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	// Only one instance sweeps at a time.
	ttl := 2 * time.Minute
	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisKeySweepLeader, ttl)
	if err != nil {
		w.log.Warn("sweep.worker: leader lock attempt failed", zap.Error(err))
		return
	}
	if !acquired {
		w.log.Info("sweep.worker: leader lock not acquired; another instance is running")
		return
	}
	defer w.locker.Unlock(ctx, constvars.RedisKeySweepLeader, token)

	swept, err := w.appointmentUsecase.SweepExpiredLocks(ctx)
	if err != nil {
		w.log.Warn("sweep.worker: sweep run failed", zap.Error(err))
		return
	}
	if swept > 0 {
		w.log.Info("sweep.worker: released expired locks",
			zap.Int64(constvars.LoggingSweptCountKey, swept),
		)
	}
}
