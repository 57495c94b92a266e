package jobs

import (
	"context"
	"time"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/domain"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/service"
	"go.uber.org/zap"
)

// ReportWarmupJobName is the name of the report cache warmup job
const ReportWarmupJobName = "report_warmup"

// TenantLister defines the tenant lookup the warmup job needs.
// This interface allows the job to run without importing the repository package directly.
type TenantLister interface {
	// ListActive returns all active tenants.
	ListActive(ctx context.Context) ([]domain.Tenant, error)
}

// ReportWarmer defines the interface for precomputing the yesterday report.
type ReportWarmer interface {
	// WarmTenant builds and caches the unfiltered day report for one tenant.
	WarmTenant(ctx context.Context, tenantID string, day time.Time) error
}

// ReportWarmupJob precomputes yesterday's visit report for every active
// tenant shortly after midnight, so the first portal load of the day is
// served from cache.
type ReportWarmupJob struct {
	tenants TenantLister
	warmer  ReportWarmer
	logger  *zap.Logger
	timeout time.Duration
}

// NewReportWarmupJob creates a new report warmup job.
// The timeout bounds the whole warmup run across all tenants.
func NewReportWarmupJob(tenants TenantLister, warmer ReportWarmer, logger *zap.Logger, timeout time.Duration) *ReportWarmupJob {
	return &ReportWarmupJob{
		tenants: tenants,
		warmer:  warmer,
		logger:  logger,
		timeout: timeout,
	}
}

// Run executes the warmup for all active tenants.
// This is called by the scheduler according to the cron expression.
// A failing tenant is logged and skipped; the run continues.
func (j *ReportWarmupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	day := service.Yesterday(start)
	j.logger.Info("starting report warmup job",
		zap.String("report_date", day.Format("2006-01-02")))

	tenants, err := j.tenants.ListActive(ctx)
	if err != nil {
		j.logger.Error("report warmup failed to list tenants",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	warmed, failed := 0, 0
	for _, tenant := range tenants {
		if ctx.Err() != nil {
			j.logger.Warn("report warmup aborted",
				zap.Error(ctx.Err()),
				zap.Int("warmed", warmed),
				zap.Int("failed", failed))
			return
		}

		if err := j.warmer.WarmTenant(ctx, tenant.ID, day); err != nil {
			j.logger.Error("report warmup failed for tenant",
				zap.String("tenant_id", tenant.ID),
				zap.Error(err))
			failed++
			continue
		}
		warmed++
	}

	j.logger.Info("report warmup job completed",
		zap.String("report_date", day.Format("2006-01-02")),
		zap.Int("warmed", warmed),
		zap.Int("failed", failed),
		zap.Duration("duration", time.Since(start)))
}
