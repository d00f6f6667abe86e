package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-OrgNotifications/internal/domain"
	"github.com/m04kA/SMC-OrgNotifications/internal/integrations/controller"
	"github.com/m04kA/SMC-OrgNotifications/internal/service/notifications_list"
	"github.com/m04kA/SMC-OrgNotifications/internal/service/views"
)

const (
	msgInternalError    = "внутренняя ошибка сервера"
	msgNotFound         = "организация или шаблон не найдены"
	msgViewNotMounted   = "список уведомлений организации не загружен"
	msgStaleFetch       = "запрос устарел: данные уже изменены более новым запросом"
	msgUnknownBucket    = "неизвестный тип оповещений (ожидается success или error)"
	msgUpstreamFailure  = "сервис шаблонов уведомлений недоступен"
	msgUpstreamAuthFail = "нет доступа к сервису шаблонов уведомлений"
)

// ErrorResponse модель ошибки API
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError отправляет ошибку в формате ErrorResponse
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondBadGateway(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadGateway, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// DecodeJSON декодирует тело запроса, запрещая неизвестные поля
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}

	return nil
}

// RespondServiceError сопоставляет ошибки сервисного слоя и API контроллера со статусами HTTP.
// Возвращает false, если ошибка неизвестна и ответ не отправлен.
func RespondServiceError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, views.ErrViewNotMounted):
		RespondConflict(w, msgViewNotMounted)
	case errors.Is(err, notifications_list.ErrStaleFetch):
		RespondConflict(w, msgStaleFetch)
	case errors.Is(err, notifications_list.ErrUnknownBucket), errors.Is(err, domain.ErrUnknownBucket):
		RespondBadRequest(w, msgUnknownBucket)
	case errors.Is(err, controller.ErrNotFound):
		RespondNotFound(w, msgNotFound)
	case errors.Is(err, controller.ErrUnauthorized):
		RespondBadGateway(w, msgUpstreamAuthFail)
	case errors.Is(err, controller.ErrInvalidResponse), errors.Is(err, controller.ErrInternal):
		RespondBadGateway(w, msgUpstreamFailure)
	default:
		return false
	}

	return true
}
