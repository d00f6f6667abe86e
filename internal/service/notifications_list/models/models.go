package models

import "github.com/m04kA/SMC-OrgNotifications/internal/domain"

// TemplateStatus шаблон с признаками привязки к оповещениям
type TemplateStatus struct {
	domain.NotificationTemplate
	SuccessEnabled bool
	ErrorEnabled   bool
}

// Snapshot согласованный снимок представления организации
type Snapshot struct {
	OrganizationID     int64
	Templates          []TemplateStatus
	SuccessTemplateIDs []int64
	ErrorTemplateIDs   []int64
	Params             domain.QueryParams
	Loaded             bool
}

// Query каноничная query string текущей страницы
func (s *Snapshot) Query() string {
	return s.Params.Encode()
}

// NewSnapshot собирает снимок из шаблонов страницы и состояния привязок
func NewSnapshot(orgID int64, templates []domain.NotificationTemplate, state domain.ViewState, params domain.QueryParams, loaded bool) *Snapshot {
	statuses := make([]TemplateStatus, len(templates))
	for i, t := range templates {
		statuses[i] = TemplateStatus{
			NotificationTemplate: t,
			SuccessEnabled:       state.SuccessTemplateIDs.Contains(t.ID),
			ErrorEnabled:         state.ErrorTemplateIDs.Contains(t.ID),
		}
	}

	return &Snapshot{
		OrganizationID:     orgID,
		Templates:          statuses,
		SuccessTemplateIDs: state.SuccessTemplateIDs.Sorted(),
		ErrorTemplateIDs:   state.ErrorTemplateIDs.Sorted(),
		Params:             params,
		Loaded:             loaded,
	}
}

// Membership привязки одного шаблона
type Membership struct {
	TemplateID     int64
	SuccessEnabled bool
	ErrorEnabled   bool
}
