package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/auth"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/cache"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/domain"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/mapper"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/reporting"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/repository"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/sessionwarehouse"
)

// VisitReportService builds the yesterday-visits KPI report
type VisitReportService struct {
	visitRepo *repository.VisitRepository
	userRepo  *repository.UserRepository
	sessions  *sessionwarehouse.Client
	cache     *cache.ReportCache
	logger    *zap.Logger
}

// NewVisitReportService creates a new VisitReportService instance.
// sessions and cache are optional; nil disables work-time KPIs and caching.
func NewVisitReportService(
	visitRepo *repository.VisitRepository,
	userRepo *repository.UserRepository,
	sessions *sessionwarehouse.Client,
	reportCache *cache.ReportCache,
	logger *zap.Logger,
) *VisitReportService {
	return &VisitReportService{
		visitRepo: visitRepo,
		userRepo:  userRepo,
		sessions:  sessions,
		cache:     reportCache,
		logger:    logger,
	}
}

// Yesterday returns yesterday's date truncated to midnight UTC
func Yesterday(now time.Time) time.Time {
	y, m, d := now.UTC().AddDate(0, 0, -1).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// isUnfiltered reports whether the selection carries no constraint, which
// makes the canonical cached snapshot usable.
func isUnfiltered(f reporting.VisitFilter) bool {
	return f.Status == "" && f.Region == "" && f.City == "" && f.Market == "" &&
		f.TeamLeaderID == "" && f.OwnerID == "" && f.JourneyPlanState == "" &&
		f.DateFrom == nil && f.DateTo == nil
}

// visitFacts projects a snapshot row into the reporting core's shape
func visitFacts(v *domain.Visit) reporting.VisitFacts {
	facts := reporting.VisitFacts{
		Ref:              v.ID.String(),
		OwnerID:          v.OwnerID,
		MarketID:         v.MarketID,
		Store:            v.Store,
		Branch:           v.Branch,
		City:             v.City,
		Region:           v.Region,
		StartedAt:        v.StartedAt,
		FinishedAt:       v.FinishedAt,
		EndReasonEn:      v.EndReasonEn,
		EndReasonAr:      v.EndReasonAr,
		JourneyPlanState: v.JourneyPlanState,
	}
	if v.TeamLeaderID != nil {
		facts.TeamLeaderID = *v.TeamLeaderID
	}
	return facts
}

// GetYesterdayReport builds the report for the authenticated tenant.
// The unfiltered report is served from the cache when warm; filtered
// selections always recompute because the cache stores only the canonical
// day snapshot.
func (s *VisitReportService) GetYesterdayReport(ctx context.Context, filter reporting.VisitFilter) (*domain.VisitReportDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUserContextRequired
	}
	tenantID := userCtx.TenantID

	day := Yesterday(time.Now())

	if isUnfiltered(filter) && tenantID != "" {
		var cached domain.VisitReportDTO
		if err := s.cache.GetReport(ctx, tenantID, day, &cached); err == nil {
			s.logger.Debug("yesterday report served from cache",
				zap.String("tenant_id", tenantID),
				zap.String("day", day.Format("2006-01-02")),
			)
			return &cached, nil
		}
	}

	visits, err := s.visitRepo.ListForDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load visit snapshot: %w", err)
	}

	report, err := s.buildReport(ctx, tenantID, day, visits, filter)
	if err != nil {
		return nil, err
	}

	if isUnfiltered(filter) && tenantID != "" {
		s.cache.SetReport(ctx, tenantID, day, report)
	}

	return report, nil
}

// WarmTenant computes and caches the unfiltered report for one tenant.
// Used by the nightly warmup job, which runs outside any request context.
func (s *VisitReportService) WarmTenant(ctx context.Context, tenantID string, day time.Time) error {
	visits, err := s.visitRepo.ListForDateTenant(ctx, tenantID, day)
	if err != nil {
		return fmt.Errorf("failed to load visit snapshot: %w", err)
	}

	report, err := s.buildReportForTenant(ctx, tenantID, day, visits, reporting.VisitFilter{}, nil)
	if err != nil {
		return err
	}

	s.cache.SetReport(ctx, tenantID, day, report)
	return nil
}

func (s *VisitReportService) buildReport(ctx context.Context, tenantID string, day time.Time, visits []domain.Visit, filter reporting.VisitFilter) (*domain.VisitReportDTO, error) {
	_, byID, err := loadRosterIndex(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	return s.buildReportForTenant(ctx, tenantID, day, visits, filter, byID)
}

// buildReportForTenant assembles rows and totals. byID may be nil when the
// caller has no request context; names then fall back to raw ids.
func (s *VisitReportService) buildReportForTenant(ctx context.Context, tenantID string, day time.Time, visits []domain.Visit, filter reporting.VisitFilter, byID map[string]*domain.User) (*domain.VisitReportDTO, error) {
	byRef := make(map[string]*domain.Visit, len(visits))
	facts := make([]reporting.VisitFacts, 0, len(visits))
	for i := range visits {
		v := &visits[i]
		byRef[v.ID.String()] = v
		facts = append(facts, visitFacts(v))
	}

	matched := reporting.ApplyVisitFilter(facts, filter)
	best := reporting.BestByMarket(matched)

	window := reporting.Window{Start: day, End: day.Add(24 * time.Hour)}
	sessions := s.loadSessions(ctx, tenantID, window)
	totals := reporting.ComputeTotals(best, sessions, window)

	rows := make([]domain.VisitRowDTO, 0, len(best))
	for _, fact := range best {
		v := byRef[fact.Ref]

		name, roleLabel := fact.OwnerID, "-"
		if byID != nil {
			name, roleLabel = displayNameOrID(byID, fact.OwnerID)
		}

		duration := ""
		if v.StartedAt != nil && v.FinishedAt != nil {
			duration = reporting.FormatDelta(reporting.DeltaSeconds(*v.FinishedAt, *v.StartedAt))
		}

		endReason := strings.TrimSpace(v.EndReasonEn)
		if endReason == "" {
			endReason = strings.TrimSpace(v.EndReasonAr)
		}

		rows = append(rows, mapper.ToVisitRowDTO(v, name, roleLabel, reporting.DeriveVisitStatus(fact), duration, endReason))
	}

	return &domain.VisitReportDTO{
		Date: day.Format("2006-01-02"),
		Rows: rows,
		Totals: domain.TotalsDTO{
			VisitTime:   reporting.FormatDelta(totals.VisitSeconds),
			WorkTime:    reporting.FormatDelta(totals.WorkSeconds),
			TravelTime:  reporting.FormatDelta(totals.TravelSeconds),
			Total:       totals.Total,
			Finished:    totals.Finished,
			Ended:       totals.Ended,
			Pending:     totals.Pending,
			FinishedPct: totals.FinishedPct,
			EndedPct:    totals.EndedPct,
			PendingPct:  totals.PendingPct,
		},
	}, nil
}

// loadSessions fetches the day's app sessions. Missing warehouse or fetch
// failure degrades to no work-time data, never to a failed report.
func (s *VisitReportService) loadSessions(ctx context.Context, tenantID string, window reporting.Window) []reporting.SessionRow {
	if !s.sessions.IsEnabled() || tenantID == "" {
		return nil
	}

	sessions, err := s.sessions.GetUserSessions(ctx, tenantID, window.Start, window.End)
	if err != nil {
		s.logger.Warn("session warehouse fetch failed, work time omitted",
			zap.String("tenant_id", tenantID),
			zap.Error(err),
		)
		return nil
	}
	return sessions
}
