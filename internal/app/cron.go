package app

import (
	"context"
	"fmt"
	"time"

	pkgcron "github.com/foxbeep/site-core/internal/pkg/cron"
	"go.uber.org/zap"
)

// registerCronJobs registers all scheduled background jobs.
func (a *App) registerCronJobs() {
	log := a.logger.Named("CronService")

	a.sched.Register(pkgcron.Job{
		Name:        "cleanup_expired_ads",
		Description: "Mark advertisements past their expiry date as expired",
		Interval:    time.Hour,
		Fn: func(ctx context.Context) error {
			n, err := a.adsSvc.CleanupExpiredAds()
			if err != nil {
				log.Warn("expired ad cleanup failed", zap.Error(err))
				return err
			}
			if n > 0 {
				log.Info(fmt.Sprintf("marked %d advertisements as expired", n))
			}
			return nil
		},
	})

	a.sched.Register(pkgcron.Job{
		Name:        "cleanup_ad_analytics",
		Description: "Delete advertisement analytics events older than 90 days",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			n, err := a.adsSvc.CleanupAnalytics()
			if err != nil {
				log.Warn("analytics cleanup failed", zap.Error(err))
				return err
			}
			log.Info(fmt.Sprintf("deleted %d stale analytics events", n))
			return nil
		},
	})

	if a.cfg.Backup.Enable {
		a.sched.Register(pkgcron.Job{
			Name:        "auto_backup",
			Description: "Export all tables to a local zip archive",
			Interval:    24 * time.Hour,
			Fn: func(ctx context.Context) error {
				if err := a.backupSvc.Run(ctx); err != nil {
					log.Warn("scheduled backup failed", zap.Error(err))
					return err
				}
				return nil
			},
		})
	}
}
