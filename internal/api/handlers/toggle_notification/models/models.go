package models

import (
	serviceModels "github.com/m04kA/SMC-OrgNotifications/internal/service/notifications_list/models"
)

// ToggleNotificationRequest запрос на переключение привязки шаблона
type ToggleNotificationRequest struct {
	Status  string `json:"status"`  // success или error
	Enabled *bool  `json:"enabled"` // Текущее состояние привязки
}

// MembershipResponse привязки шаблона после переключения
type MembershipResponse struct {
	TemplateID     int64 `json:"template_id"`
	SuccessEnabled bool  `json:"success_enabled"`
	ErrorEnabled   bool  `json:"error_enabled"`
}

// FromMembership преобразует сервисную модель в HTTP ответ
func FromMembership(m *serviceModels.Membership) *MembershipResponse {
	return &MembershipResponse{
		TemplateID:     m.TemplateID,
		SuccessEnabled: m.SuccessEnabled,
		ErrorEnabled:   m.ErrorEnabled,
	}
}
