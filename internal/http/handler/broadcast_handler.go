package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/auth"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/domain"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/reporting"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// validDisplayStatuses contains the filterable broadcast display states
var validDisplayStatuses = map[string]bool{
	string(reporting.StatusQueued):   true,
	string(reporting.StatusRead):     true,
	string(reporting.StatusActioned): true,
}

// BroadcastHandler handles HTTP requests for broadcast notifications
type BroadcastHandler struct {
	broadcastService *service.BroadcastService
	maxUploadMB      int64
	logger           *zap.Logger
}

// NewBroadcastHandler creates a new BroadcastHandler instance
func NewBroadcastHandler(broadcastService *service.BroadcastService, maxUploadMB int64, logger *zap.Logger) *BroadcastHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	return &BroadcastHandler{
		broadcastService: broadcastService,
		maxUploadMB:      maxUploadMB,
		logger:           logger,
	}
}

// Send godoc
// @Summary Send a broadcast
// @Description Compose and send a notification to explicit users, roles, or everyone. Accepts JSON, or multipart/form-data with a "payload" JSON field and an optional "file" attachment.
// @Tags Broadcasts
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Param request body domain.SendBroadcastRequest true "Broadcast payload"
// @Success 201 {object} domain.BroadcastDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 413 {object} domain.APIError
// @Failure 422 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /broadcasts [post]
func (h *BroadcastHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req domain.SendBroadcastRequest
	var attachment *service.AttachmentUpload

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadMB*1024*1024)

		if err := r.ParseMultipartForm(h.maxUploadMB * 1024 * 1024); err != nil {
			respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Attachment too large: maximum size is %dMB", h.maxUploadMB))
			return
		}

		payload := r.FormValue("payload")
		if payload == "" {
			respondWithError(w, http.StatusBadRequest, "Missing payload: multipart requests need a JSON payload field")
			return
		}
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid payload: "+err.Error())
			return
		}

		file, header, err := r.FormFile("file")
		if err == nil {
			defer file.Close()
			attachment = &service.AttachmentUpload{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Data:        file,
			}
		} else if !errors.Is(err, http.ErrMissingFile) {
			respondWithError(w, http.StatusBadRequest, "Invalid file upload")
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}

	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	dto, err := h.broadcastService.Send(r.Context(), &req, attachment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserContextRequired):
			respondWithError(w, http.StatusUnauthorized, "Authentication required")
		case errors.Is(err, service.ErrEmptyAudience):
			respondWithError(w, http.StatusUnprocessableEntity, "The targeting resolves to an empty audience")
		case errors.Is(err, service.ErrAttachmentTooLarge):
			respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Attachment too large: maximum size is %dMB", h.maxUploadMB))
		default:
			h.logger.Error("failed to send broadcast", zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to send broadcast")
		}
		return
	}

	respondJSON(w, http.StatusCreated, dto)
}

// List godoc
// @Summary List sent broadcasts
// @Description Get the sent-notification analytics list with completion, display status and time-taken
// @Tags Broadcasts
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page (max 200)" default(20)
// @Param dateFrom query string false "Sent on or after (YYYY-MM-DD)"
// @Param dateTo query string false "Sent on or before (YYYY-MM-DD)"
// @Param senderType query string false "Filter by sender kind" Enums(system, named)
// @Param senderId query string false "Filter by sender id"
// @Param recipientRole query string false "Filter by targeted role"
// @Param recipientId query string false "Filter by reachable recipient id"
// @Param status query string false "Filter by display status" Enums(queued, read, actioned)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.BroadcastDTO}
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /broadcasts [get]
func (h *BroadcastHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePaging(r)

	filter, err := parseBroadcastFilter(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.broadcastService.List(r.Context(), filter, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrUserContextRequired) {
			respondWithError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		h.logger.Error("failed to list broadcasts", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list broadcasts")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// parseBroadcastFilter reads the analytics list filters from query parameters
func parseBroadcastFilter(r *http.Request) (reporting.BroadcastFilter, error) {
	var filter reporting.BroadcastFilter

	dateFrom, err := parseDateParam(r, "dateFrom")
	if err != nil {
		return filter, err
	}
	dateTo, err := parseDateParam(r, "dateTo")
	if err != nil {
		return filter, err
	}
	filter.DateFrom = dateFrom
	filter.DateTo = dateTo

	senderType := strings.TrimSpace(r.URL.Query().Get("senderType"))
	if senderType != "" && senderType != "system" && senderType != "named" {
		return filter, fmt.Errorf("invalid senderType: must be system or named")
	}
	filter.SenderType = senderType
	filter.SenderID = strings.TrimSpace(r.URL.Query().Get("senderId"))
	filter.RecipientRole = strings.TrimSpace(r.URL.Query().Get("recipientRole"))
	filter.RecipientID = strings.TrimSpace(r.URL.Query().Get("recipientId"))

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	if status != "" && !validDisplayStatuses[status] {
		return filter, fmt.Errorf("invalid status: must be one of queued, read, actioned")
	}
	filter.Status = reporting.DisplayStatus(status)

	return filter, nil
}

// GetDetail godoc
// @Summary Get broadcast detail
// @Description Get one broadcast with its per-recipient delivery, read and action breakdown
// @Tags Broadcasts
// @Accept json
// @Produce json
// @Param id path string true "Broadcast ID" format(uuid)
// @Success 200 {object} domain.BroadcastDetailDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /broadcasts/{id} [get]
func (h *BroadcastHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid broadcast ID: must be a valid UUID")
		return
	}

	dto, err := h.broadcastService.GetDetail(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBroadcastNotFound):
			respondWithError(w, http.StatusNotFound, "Broadcast not found")
		case errors.Is(err, service.ErrUserContextRequired):
			respondWithError(w, http.StatusUnauthorized, "Authentication required")
		default:
			h.logger.Error("failed to get broadcast detail", zap.String("broadcast_id", id.String()), zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to get broadcast")
		}
		return
	}

	respondJSON(w, http.StatusOK, dto)
}

// DownloadAttachment godoc
// @Summary Download broadcast attachment
// @Description Stream the attachment stored with a broadcast
// @Tags Broadcasts
// @Produce octet-stream
// @Param id path string true "Broadcast ID" format(uuid)
// @Success 200 {file} binary
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /broadcasts/{id}/attachment [get]
func (h *BroadcastHandler) DownloadAttachment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid broadcast ID: must be a valid UUID")
		return
	}

	reader, storedPath, err := h.broadcastService.DownloadAttachment(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBroadcastNotFound):
			respondWithError(w, http.StatusNotFound, "Broadcast not found")
		case errors.Is(err, service.ErrNoAttachment):
			respondWithError(w, http.StatusNotFound, "Broadcast has no attachment")
		default:
			h.logger.Error("failed to download attachment", zap.String("broadcast_id", id.String()), zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to download attachment")
		}
		return
	}
	defer reader.Close()

	filename := path.Base(storedPath)
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Warn("attachment stream interrupted",
			zap.String("broadcast_id", id.String()),
			zap.Error(err))
	}
}

// MarkRead godoc
// @Summary Acknowledge a broadcast as read
// @Description Record the calling user's read receipt for a broadcast
// @Tags Broadcasts
// @Accept json
// @Produce json
// @Param id path string true "Broadcast ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /broadcasts/{id}/read [post]
func (h *BroadcastHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	h.acknowledge(w, r, h.broadcastService.MarkRead)
}

// MarkActioned godoc
// @Summary Acknowledge a broadcast as actioned
// @Description Record the calling user's action receipt for a broadcast
// @Tags Broadcasts
// @Accept json
// @Produce json
// @Param id path string true "Broadcast ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Router /broadcasts/{id}/actioned [post]
func (h *BroadcastHandler) MarkActioned(w http.ResponseWriter, r *http.Request) {
	h.acknowledge(w, r, h.broadcastService.MarkActioned)
}

func (h *BroadcastHandler) acknowledge(w http.ResponseWriter, r *http.Request, mark func(ctx context.Context, id uuid.UUID, userID string) error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid broadcast ID: must be a valid UUID")
		return
	}

	userCtx, ok := auth.FromContext(r.Context())
	if !ok || userCtx == nil {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := mark(r.Context(), id, userCtx.UserID); err != nil {
		switch {
		case errors.Is(err, service.ErrBroadcastNotFound):
			respondWithError(w, http.StatusNotFound, "Broadcast not found")
		default:
			h.logger.Error("failed to acknowledge broadcast",
				zap.String("broadcast_id", id.String()),
				zap.String("user_id", userCtx.UserID),
				zap.Error(err))
			respondWithError(w, http.StatusInternalServerError, "Failed to acknowledge broadcast")
		}
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
