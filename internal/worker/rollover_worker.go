package worker

import (
	"context"
	"goalTracker/internal/logger"
	"time"

	"go.uber.org/zap"
)

type Initializer interface {
	Initialize(context.Context) (bool, error)
}

// RolloverWorker re-runs the day rollover check so a server left running
// past midnight starts the new day with empty lists.
type RolloverWorker struct {
	store    Initializer
	interval time.Duration
}

func NewRolloverWorker(store Initializer, interval *time.Duration) *RolloverWorker {
	var intervalToSet time.Duration
	if interval == nil {
		intervalToSet = time.Minute
	} else {
		intervalToSet = *interval
	}

	return &RolloverWorker{
		store:    store,
		interval: intervalToSet,
	}
}

func (w *RolloverWorker) Enabled() bool {
	return w.interval > 0
}

// Start blocks until ctx is done. A non-positive interval returns at once.
func (w *RolloverWorker) Start(ctx context.Context) {
	if !w.Enabled() {
		logger.Info("Worker: Фоновая проверка смены дня отключена")
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Check(ctx)
		case <-ctx.Done():
			logger.Info("Worker: Фоновая проверка останавливается")
			return
		}
	}
}

func (w *RolloverWorker) Check(ctx context.Context) bool {
	start := time.Now()

	reset, err := w.store.Initialize(ctx)
	if err != nil {
		logger.Warn("Worker: Ошибка проверки смены дня", zap.Error(err))
		return false
	}

	if reset {
		logger.Info("Worker: Цели сброшены для нового дня", zap.Duration("ms", time.Since(start)))
	}
	return reset
}
