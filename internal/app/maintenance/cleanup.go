// Package maintenance runs background integrity sweeps on a cron schedule.
package maintenance

import (
	"context"
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/teambuilder-dev/teambuilder/internal/models"
	"github.com/teambuilder-dev/teambuilder/pkg/logger"
)

const defaultSweepSpec = "@every 10m"

// Cleaner removes orphaned rows left behind by interrupted cascades. Project
// deletion removes its applications transactionally, so under normal
// operation the sweeps find nothing; they exist to repair the data after
// crashes or manual database surgery.
type Cleaner struct {
	db   *gorm.DB
	cron *cron.Cron
	log  *zap.Logger

	schedule string
}

// Option customises the Cleaner.
type Option func(*Cleaner)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(cleaner *Cleaner) {
		if c != nil {
			cleaner.cron = c
		}
	}
}

// WithSchedule overrides the cron specification for the sweep.
func WithSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.schedule = spec
		}
	}
}

// NewCleaner constructs a Cleaner with sensible defaults.
func NewCleaner(db *gorm.DB, opts ...Option) *Cleaner {
	cleaner := &Cleaner{
		db:       db,
		schedule: defaultSweepSpec,
		log:      logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(cleaner)
	}

	if cleaner.cron == nil {
		cleaner.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return cleaner
}

// Start registers the sweep with the cron scheduler and launches it.
func (c *Cleaner) Start() error {
	if c.db == nil {
		return nil
	}

	if _, err := c.cron.AddFunc(c.schedule, func() {
		if err := c.RunOnce(context.Background()); err != nil {
			c.log.Warn("integrity sweep failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	c.cron.Start()
	return nil
}

// Stop halts the underlying scheduler, waiting for any running jobs to complete.
func (c *Cleaner) Stop() context.Context {
	if c.cron == nil {
		return context.Background()
	}
	return c.cron.Stop()
}

// RunOnce executes all sweeps sequentially. Primarily used in tests and
// during graceful shutdown.
func (c *Cleaner) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.db == nil {
		return nil
	}

	var errs error

	if removed, err := CleanupOrphanApplications(ctx, c.db); err != nil {
		errs = multierr.Append(errs, err)
	} else if removed > 0 {
		c.log.Info("removed orphaned applications", zap.Int64("count", removed))
	}

	if removed, err := CleanupOrphanInvites(ctx, c.db); err != nil {
		errs = multierr.Append(errs, err)
	} else if removed > 0 {
		c.log.Info("removed orphaned invites", zap.Int64("count", removed))
	}

	return errs
}

// CleanupOrphanApplications removes applications whose project no longer exists.
func CleanupOrphanApplications(ctx context.Context, db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, errors.New("cleanup applications: db is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	result := db.WithContext(ctx).
		Where("project_id NOT IN (?)", db.Model(&models.Project{}).Select("id")).
		Delete(&models.Application{})
	if result.Error != nil {
		return 0, fmt.Errorf("cleanup applications: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// CleanupOrphanInvites removes invites whose sender or recipient account is gone.
func CleanupOrphanInvites(ctx context.Context, db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, errors.New("cleanup invites: db is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	senders := db.Model(&models.User{}).Select("id")
	recipients := db.Model(&models.User{}).Select("id")
	result := db.WithContext(ctx).
		Where("from_user_id NOT IN (?) OR to_user_id NOT IN (?)", senders, recipients).
		Delete(&models.Invite{})
	if result.Error != nil {
		return 0, fmt.Errorf("cleanup invites: %w", result.Error)
	}
	return result.RowsAffected, nil
}
