package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/domain"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/repository"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// validRequestStatuses contains the filterable visit request states
var validRequestStatuses = map[string]bool{
	string(domain.RequestPending):   true,
	string(domain.RequestApproved):  true,
	string(domain.RequestRejected):  true,
	string(domain.RequestCancelled): true,
	string(domain.RequestExpired):   true,
}

// VisitRequestHandler handles HTTP requests for off-route visit requests
type VisitRequestHandler struct {
	visitRequestService *service.VisitRequestService
	logger              *zap.Logger
}

// NewVisitRequestHandler creates a new VisitRequestHandler instance
func NewVisitRequestHandler(visitRequestService *service.VisitRequestService, logger *zap.Logger) *VisitRequestHandler {
	return &VisitRequestHandler{
		visitRequestService: visitRequestService,
		logger:              logger,
	}
}

// List godoc
// @Summary List off-route visit requests
// @Description Get paginated visit requests with derived wait times
// @Tags VisitRequests
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param status query string false "Filter by status" Enums(pending, approved, rejected, cancelled, expired)
// @Param requesterId query string false "Filter by requester id"
// @Param region query string false "Filter by region"
// @Param city query string false "Filter by city"
// @Param dateFrom query string false "Requested on or after (YYYY-MM-DD)"
// @Param dateTo query string false "Requested on or before (YYYY-MM-DD)"
// @Param sortBy query string false "Sort field" Enums(requestedAt, decidedAt, status, region, city, waitSeconds)
// @Param sortOrder query string false "Sort direction" Enums(asc, desc) default(desc)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.VisitRequestDTO}
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /visit-requests [get]
func (h *VisitRequestHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePaging(r)

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if status != "" && !validRequestStatuses[status] {
		respondWithError(w, http.StatusBadRequest, "invalid status: must be one of pending, approved, rejected, cancelled, expired")
		return
	}

	dateFrom, err := parseDateParam(r, "dateFrom")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	dateTo, err := parseDateParam(r, "dateTo")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter := repository.VisitRequestListFilter{
		Status:      domain.VisitRequestStatus(status),
		RequesterID: strings.TrimSpace(r.URL.Query().Get("requesterId")),
		Region:      strings.TrimSpace(r.URL.Query().Get("region")),
		City:        strings.TrimSpace(r.URL.Query().Get("city")),
		DateFrom:    dateFrom,
		DateTo:      dateTo,
	}

	sort := repository.DefaultSortConfig()
	if v := strings.TrimSpace(r.URL.Query().Get("sortBy")); v != "" {
		sort.Field = v
	}
	if v := strings.TrimSpace(r.URL.Query().Get("sortOrder")); v != "" {
		sort.Order = repository.ParseSortOrder(v)
	}

	result, err := h.visitRequestService.List(r.Context(), filter, sort, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrUserContextRequired) {
			respondWithError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		h.logger.Error("failed to list visit requests", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list visit requests")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Approve godoc
// @Summary Approve a visit request
// @Description Approve a pending off-route visit request and notify the requester
// @Tags VisitRequests
// @Accept json
// @Produce json
// @Param id path string true "Visit request ID" format(uuid)
// @Param request body domain.DecideVisitRequestRequest false "Optional decision note"
// @Success 200 {object} domain.VisitRequestDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /visit-requests/{id}/approve [post]
func (h *VisitRequestHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.visitRequestService.Approve, "approve")
}

// Reject godoc
// @Summary Reject a visit request
// @Description Reject a pending off-route visit request and notify the requester
// @Tags VisitRequests
// @Accept json
// @Produce json
// @Param id path string true "Visit request ID" format(uuid)
// @Param request body domain.DecideVisitRequestRequest false "Optional decision note"
// @Success 200 {object} domain.VisitRequestDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /visit-requests/{id}/reject [post]
func (h *VisitRequestHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.visitRequestService.Reject, "reject")
}

func (h *VisitRequestHandler) decide(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, id uuid.UUID, note string) (*domain.VisitRequestDTO, error),
	verb string,
) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid visit request ID: must be a valid UUID")
		return
	}

	// The note body is optional; an empty body decides without one.
	var req domain.DecideVisitRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	dto, err := fn(r.Context(), id, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserContextRequired):
			respondWithError(w, http.StatusUnauthorized, "Authentication required")
		case errors.Is(err, service.ErrRequestNotFound):
			respondWithError(w, http.StatusNotFound, "Visit request not found")
		case errors.Is(err, service.ErrRequestNotPending):
			respondWithError(w, http.StatusConflict, "Visit request has already been decided")
		default:
			h.logger.Error(fmt.Sprintf("failed to %s visit request", verb),
				zap.String("request_id", id.String()),
				zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to %s visit request", verb))
		}
		return
	}

	respondJSON(w, http.StatusOK, dto)
}
