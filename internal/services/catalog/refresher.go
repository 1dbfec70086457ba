package catalog

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/cognicart/internal/common"
	"github.com/ternarybob/cognicart/internal/interfaces"
	"github.com/ternarybob/cognicart/internal/models"
)

// Refresher periodically re-syncs the persistent product store from a
// product supplier on a cron schedule.
type Refresher struct {
	config   *common.RefreshConfig
	logger   arbor.ILogger
	supplier func() []models.Product
	storage  interfaces.ProductStorage
	cache    interfaces.SearchCache
	cron     *cron.Cron
}

// NewRefresher creates a catalog refresher. The supplier provides the
// authoritative product set on each run.
func NewRefresher(config *common.RefreshConfig, supplier func() []models.Product, storage interfaces.ProductStorage, cache interfaces.SearchCache, logger arbor.ILogger) *Refresher {
	return &Refresher{
		config:   config,
		logger:   logger,
		supplier: supplier,
		storage:  storage,
		cache:    cache,
		cron:     cron.New(),
	}
}

// Start registers the schedule and begins running syncs.
func (r *Refresher) Start() error {
	if !r.config.Enabled {
		return nil
	}
	if _, err := r.cron.AddFunc(r.config.Schedule, r.sync); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", r.config.Schedule, err)
	}
	r.cron.Start()
	r.logger.Info().Str("schedule", r.config.Schedule).Msg("Catalog refresher started")
	return nil
}

// Stop halts the schedule, waiting for a running sync to finish.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}

func (r *Refresher) sync() {
	products := r.supplier()
	if err := r.storage.SaveProducts(products); err != nil {
		r.logger.Warn().Err(err).Msg("Catalog refresh failed")
		return
	}
	if r.cache != nil {
		r.cache.Clear()
	}
	r.logger.Info().Int("products", len(products)).Msg("Catalog refreshed")
}
