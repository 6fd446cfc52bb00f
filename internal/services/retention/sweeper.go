package retention

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/memoria/internal/common"
	"github.com/ternarybob/memoria/internal/interfaces"
)

// Sweeper periodically removes stale draft documents. Disabled by default;
// documents past draft status are never touched.
type Sweeper struct {
	config  *common.RetentionConfig
	storage interfaces.CIMStorage
	logger  arbor.ILogger
	cron    *cron.Cron
	maxAge  time.Duration
}

// NewSweeper creates a retention sweeper from configuration
func NewSweeper(config *common.RetentionConfig, storage interfaces.CIMStorage, logger arbor.ILogger) (*Sweeper, error) {
	maxAge, err := time.ParseDuration(config.MaxAge)
	if err != nil {
		return nil, fmt.Errorf("invalid retention max_age '%s': %w", config.MaxAge, err)
	}
	if err := common.ValidateRetentionSchedule(config.Schedule); err != nil {
		return nil, fmt.Errorf("retention schedule: %w", err)
	}

	return &Sweeper{
		config:  config,
		storage: storage,
		logger:  logger,
		maxAge:  maxAge,
	}, nil
}

// Start schedules the sweep. No-op when retention is disabled.
func (s *Sweeper) Start() error {
	if !s.config.Enabled {
		s.logger.Debug().Msg("Draft retention sweeper disabled")
		return nil
	}

	s.cron = cron.New()
	_, err := s.cron.AddFunc(s.config.Schedule, func() {
		if err := s.Sweep(context.Background()); err != nil {
			s.logger.Error().Err(err).Msg("Draft retention sweep failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule retention sweep: %w", err)
	}

	s.cron.Start()
	s.logger.Info().
		Str("schedule", s.config.Schedule).
		Str("max_age", s.config.MaxAge).
		Msg("Draft retention sweeper started")
	return nil
}

// Sweep removes drafts older than the configured age
func (s *Sweeper) Sweep(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-s.maxAge)
	deleted, err := s.storage.DeleteStaleDrafts(ctx, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.logger.Info().Int("deleted", deleted).Str("cutoff", cutoff.Format(time.RFC3339)).Msg("Removed stale draft documents")
	}
	return nil
}

// Stop cancels the schedule and waits for a running sweep to finish
func (s *Sweeper) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
}
