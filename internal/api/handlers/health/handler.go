package health

import (
	"net/http"

	"github.com/m04kA/SMC-OrgNotifications/internal/api/handlers"
)

// Response ответ проверки состояния сервиса
type Response struct {
	Status      string `json:"status"`
	ActiveViews int    `json:"active_views"`
}

type Handler struct {
	views ViewCounter
}

func NewHandler(views ViewCounter) *Handler {
	return &Handler{views: views}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Response{
		Status:      "healthy",
		ActiveViews: h.views.Active(),
	})
}
