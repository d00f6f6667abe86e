package list_notifications

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-OrgNotifications/internal/api/handlers"
	"github.com/m04kA/SMC-OrgNotifications/internal/api/handlers/list_notifications/models"
	"github.com/m04kA/SMC-OrgNotifications/internal/domain"
)

const (
	msgInvalidOrganizationID = "неверный ID организации"
	msgInvalidQuery          = "неверные параметры пагинации"
)

type Handler struct {
	registry ViewRegistry
	logger   Logger
}

func NewHandler(registry ViewRegistry, logger Logger) *Handler {
	return &Handler{
		registry: registry,
		logger:   logger,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	orgID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || orgID <= 0 {
		h.logger.Warn("Invalid organization ID: %s", idStr)
		handlers.RespondBadRequest(w, msgInvalidOrganizationID)
		return
	}

	params, err := domain.ParseQueryParams(r.URL.Query())
	if err != nil {
		h.logger.Warn("Invalid query parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	snapshot, err := h.registry.Mount(r.Context(), orgID, params)
	if err != nil {
		h.logger.Error("Failed to load notifications for organization %d: %v", orgID, err)
		if !handlers.RespondServiceError(w, err) {
			handlers.RespondInternalError(w)
		}
		return
	}

	// Каноничный адрес текущей страницы, чтобы ее состояние можно было сохранить и передать
	if query, ok := h.registry.Location(orgID); ok {
		w.Header().Set("Content-Location", location(orgID, query))
	}

	h.logger.Info("Listed %d notification templates for organization %d", len(snapshot.Templates), orgID)

	handlers.RespondJSON(w, http.StatusOK, models.FromSnapshot(snapshot))
}

func location(orgID int64, query string) string {
	path := fmt.Sprintf("/api/v1/organizations/%d/notifications", orgID)
	if query == "" {
		return path
	}
	return path + "?" + query
}
