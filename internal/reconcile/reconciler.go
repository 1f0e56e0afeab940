package reconcile

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"
)

// Reconciler periodically pins the denormalized wave counters back to
// the waves relation, which is the source of truth. The toggle path
// keeps them consistent on its own; the sweep catches anything it
// cannot see (operator edits, partial failures, restored backups).
type Reconciler struct {
	DB       *gorm.DB
	Interval time.Duration
	Log      *slog.Logger
}

func (r *Reconciler) logger() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return slog.Default()
}

func (r *Reconciler) Run(ctx context.Context) {
	if r.Interval <= 0 {
		return
	}
	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			repaired, err := r.Sweep(ctx)
			if err != nil {
				r.logger().Warn("counter reconcile failed", "err", err)
				continue
			}
			if repaired > 0 {
				r.logger().Info("counter drift repaired", "rows", repaired)
			}
		}
	}
}

// Sweep repairs posts.wave_count and users.total_waves in place and
// returns how many rows changed.
func (r *Reconciler) Sweep(ctx context.Context) (int64, error) {
	db := r.DB.WithContext(ctx)

	posts := db.Exec(`
update posts
set wave_count = (select count(*) from waves where waves.post_id = posts.id)
where wave_count <> (select count(*) from waves where waves.post_id = posts.id)
`)
	if posts.Error != nil {
		return 0, posts.Error
	}

	users := db.Exec(`
update users
set total_waves = (select coalesce(sum(wave_count), 0) from posts where posts.author_id = users.id)
where total_waves <> (select coalesce(sum(wave_count), 0) from posts where posts.author_id = users.id)
`)
	if users.Error != nil {
		return posts.RowsAffected, users.Error
	}

	return posts.RowsAffected + users.RowsAffected, nil
}
