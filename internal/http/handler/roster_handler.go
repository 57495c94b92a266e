package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/service"
	"go.uber.org/zap"
)

// RosterHandler handles HTTP requests for the recipient roster
type RosterHandler struct {
	rosterService *service.RosterService
	logger        *zap.Logger
}

// NewRosterHandler creates a new RosterHandler instance
func NewRosterHandler(rosterService *service.RosterService, logger *zap.Logger) *RosterHandler {
	return &RosterHandler{
		rosterService: rosterService,
		logger:        logger,
	}
}

// List godoc
// @Summary List composable recipients
// @Description Get the active, non-admin roster entries selectable as broadcast recipients
// @Tags Roster
// @Accept json
// @Produce json
// @Param role query string false "Filter by role"
// @Success 200 {array} domain.RosterEntryDTO
// @Failure 401 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /roster [get]
func (h *RosterHandler) List(w http.ResponseWriter, r *http.Request) {
	roleFilter := strings.TrimSpace(r.URL.Query().Get("role"))

	entries, err := h.rosterService.GetComposable(r.Context(), roleFilter)
	if err != nil {
		if errors.Is(err, service.ErrUserContextRequired) {
			respondWithError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		h.logger.Error("failed to list roster", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list roster")
		return
	}

	respondJSON(w, http.StatusOK, entries)
}
