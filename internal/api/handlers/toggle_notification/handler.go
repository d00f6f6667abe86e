package toggle_notification

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-OrgNotifications/internal/api/handlers"
	"github.com/m04kA/SMC-OrgNotifications/internal/api/handlers/toggle_notification/models"
	"github.com/m04kA/SMC-OrgNotifications/internal/domain"
)

const (
	msgInvalidOrganizationID = "неверный ID организации"
	msgInvalidTemplateID     = "неверный ID шаблона"
	msgInvalidRequestBody    = "неверный формат тела запроса"
	msgInvalidStatus         = "status должен быть success или error"
	msgMissingEnabled        = "необходимо указать текущее состояние enabled"
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
	vars := mux.Vars(r)

	orgID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil || orgID <= 0 {
		h.logger.Warn("Invalid organization ID: %s", vars["id"])
		handlers.RespondBadRequest(w, msgInvalidOrganizationID)
		return
	}

	templateID, err := strconv.ParseInt(vars["template_id"], 10, 64)
	if err != nil || templateID <= 0 {
		h.logger.Warn("Invalid template ID: %s", vars["template_id"])
		handlers.RespondBadRequest(w, msgInvalidTemplateID)
		return
	}

	var req models.ToggleNotificationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("Failed to decode request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	bucket, err := domain.ParseBucket(req.Status)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidStatus)
		return
	}

	if req.Enabled == nil {
		handlers.RespondBadRequest(w, msgMissingEnabled)
		return
	}

	membership, err := h.registry.Toggle(r.Context(), orgID, templateID, *req.Enabled, bucket)
	if err != nil {
		h.logger.Error("Failed to toggle %s notifications for template %d (organization %d): %v", bucket, templateID, orgID, err)
		if !handlers.RespondServiceError(w, err) {
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("Toggled %s notifications for template %d (organization %d, was enabled: %t)", bucket, templateID, orgID, *req.Enabled)

	handlers.RespondJSON(w, http.StatusOK, models.FromMembership(membership))
}
