package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/reporting"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/service"
	"go.uber.org/zap"
)

// validVisitStatuses contains the filterable derived visit states
var validVisitStatuses = map[string]bool{
	string(reporting.VisitPending):  true,
	string(reporting.VisitFinished): true,
	string(reporting.VisitEnded):    true,
}

// ReportHandler handles HTTP requests for visit reports
type ReportHandler struct {
	reportService *service.VisitReportService
	logger        *zap.Logger
}

// NewReportHandler creates a new ReportHandler instance
func NewReportHandler(reportService *service.VisitReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// YesterdayVisits godoc
// @Summary Yesterday's visits report
// @Description Get yesterday's representative visit rows and KPI totals (visit/work/travel time, status counts and percentages)
// @Tags Reports
// @Accept json
// @Produce json
// @Param status query string false "Filter by derived status" Enums(pending, finished, ended)
// @Param region query string false "Filter by region"
// @Param city query string false "Filter by city"
// @Param market query string false "Filter by market identity"
// @Param teamLeaderId query string false "Filter by team leader id"
// @Param ownerId query string false "Filter by visit owner id"
// @Param journeyPlanState query string false "Filter by journey plan state"
// @Success 200 {object} domain.VisitReportDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /reports/yesterday-visits [get]
func (h *ReportHandler) YesterdayVisits(w http.ResponseWriter, r *http.Request) {
	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if status != "" && !validVisitStatuses[status] {
		respondWithError(w, http.StatusBadRequest, "invalid status: must be one of pending, finished, ended")
		return
	}

	filter := reporting.VisitFilter{
		Status:           reporting.VisitStatus(status),
		Region:           strings.TrimSpace(r.URL.Query().Get("region")),
		City:             strings.TrimSpace(r.URL.Query().Get("city")),
		Market:           strings.TrimSpace(r.URL.Query().Get("market")),
		TeamLeaderID:     strings.TrimSpace(r.URL.Query().Get("teamLeaderId")),
		OwnerID:          strings.TrimSpace(r.URL.Query().Get("ownerId")),
		JourneyPlanState: strings.TrimSpace(r.URL.Query().Get("journeyPlanState")),
	}

	report, err := h.reportService.GetYesterdayReport(r.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrUserContextRequired) {
			respondWithError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		h.logger.Error("failed to build yesterday visits report", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to build report")
		return
	}

	respondJSON(w, http.StatusOK, report)
}
