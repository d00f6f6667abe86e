package list_audit

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-OrgNotifications/internal/api/handlers"
	"github.com/m04kA/SMC-OrgNotifications/internal/api/handlers/list_audit/models"
	"github.com/m04kA/SMC-OrgNotifications/internal/domain"
	"github.com/m04kA/SMC-OrgNotifications/internal/infra/storage/toggle_audit"
	"github.com/m04kA/SMC-OrgNotifications/pkg/ptr"
)

const msgInvalidOrganizationID = "неверный ID организации"

type Handler struct {
	repo   AuditRepository
	logger Logger
}

func NewHandler(repo AuditRepository, logger Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orgID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || orgID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidOrganizationID)
		return
	}

	query, err := h.parseQuery(r)
	if err != nil {
		h.logger.Warn("Invalid query parameters: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}
	query.Normalize()

	changes, err := h.repo.List(r.Context(), toggle_audit.ListFilter{
		OrganizationID: orgID,
		TemplateID:     query.TemplateID,
		Bucket:         query.Bucket,
		Limit:          query.Limit,
		Offset:         (query.Page - 1) * query.Limit,
	})
	if err != nil {
		h.logger.Error("Failed to list association changes for organization %d: %v", orgID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainChanges(orgID, changes, query.Page, query.Limit))
}

// parseQuery парсит query параметры из HTTP запроса
func (h *Handler) parseQuery(r *http.Request) (*models.ListAuditQuery, error) {
	params := r.URL.Query()
	query := &models.ListAuditQuery{}

	if s := params.Get("template_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid template_id: %s", s)
		}
		query.TemplateID = ptr.Ptr(id)
	}

	if s := params.Get("status"); s != "" {
		bucket, err := domain.ParseBucket(s)
		if err != nil {
			return nil, fmt.Errorf("invalid status: %s", s)
		}
		query.Bucket = ptr.Ptr(bucket)
	}

	if s := params.Get("page"); s != "" {
		page, err := strconv.Atoi(s)
		if err != nil || page < 1 || page > models.MaxPage {
			return nil, fmt.Errorf("invalid page: %s", s)
		}
		query.Page = page
	}

	if s := params.Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 1 {
			return nil, fmt.Errorf("invalid limit: %s", s)
		}
		query.Limit = limit
	}

	return query, nil
}
