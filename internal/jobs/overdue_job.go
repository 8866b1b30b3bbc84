package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/agencydesk/agencyflow/internal/repository"
)

// OverdueSweepJob counts scheduled posts whose publish time has passed
// without a publish outcome. Overdue is a derived view, never a stored
// status, so the sweep only reports.
type OverdueSweepJob struct {
	sp repository.ScheduledPostRepository
}

func NewOverdueSweepJob(sp repository.ScheduledPostRepository) *OverdueSweepJob {
	return &OverdueSweepJob{
		sp: sp,
	}
}

func (c *OverdueSweepJob) Sweep() {
	ctx := context.Background()

	count, err := c.sp.CountOverdue(ctx, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return
	}

	if count > 0 {
		slog.Warn("scheduled posts are overdue", "count", count)
	}
}
