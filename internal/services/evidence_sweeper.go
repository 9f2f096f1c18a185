package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/questgo/backend/internal/infrastructure/evidence"
)

// SweeperConfig controls how often old evidence is pruned.
type SweeperConfig struct {
	Interval  time.Duration
	Retention time.Duration
}

// EvidenceSweeper prunes evidence submissions past the retention window.
// Completion records are untouched: only the proof artifacts age out.
type EvidenceSweeper struct {
	store  *evidence.Store
	logger *zap.Logger
	cron   *cron.Cron
	cfg    SweeperConfig
}

func NewEvidenceSweeper(store *evidence.Store, logger *zap.Logger, cfg SweeperConfig) *EvidenceSweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = 6 * time.Hour
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 90 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sw := &EvidenceSweeper{
		store:  store,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = sw.cron.AddFunc(schedule, sw.sweep)

	return sw
}

// Start launches the cron scheduler.
func (sw *EvidenceSweeper) Start() {
	if sw == nil || sw.cron == nil {
		return
	}
	sw.cron.Start()
	sw.logger.Info("evidence sweeper started",
		zap.Duration("interval", sw.cfg.Interval),
		zap.Duration("retention", sw.cfg.Retention))
}

// Stop gracefully stops the scheduler, waiting for a running sweep.
func (sw *EvidenceSweeper) Stop() {
	if sw == nil || sw.cron == nil {
		return
	}
	<-sw.cron.Stop().Done()
	sw.logger.Info("evidence sweeper stopped")
}

func (sw *EvidenceSweeper) sweep() {
	cutoff := time.Now().Add(-sw.cfg.Retention)
	removed, err := sw.store.Cleanup(cutoff)
	if err != nil {
		sw.logger.Error("evidence sweep failed", zap.Error(err))
		return
	}
	if removed > 0 {
		sw.logger.Info("evidence sweep completed", zap.Int("removed", removed))
	}
}
