package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Bucket представляет тип оповещений, к которому привязывается шаблон
type Bucket string

const (
	BucketSuccess Bucket = "success" // Оповещения об успешном завершении
	BucketError   Bucket = "error"   // Оповещения об ошибке
)

// ErrUnknownBucket возвращается при неизвестном типе оповещений
var ErrUnknownBucket = errors.New("domain: unknown notification bucket")

// ParseBucket преобразует строку в Bucket
func ParseBucket(s string) (Bucket, error) {
	switch b := Bucket(strings.ToLower(strings.TrimSpace(s))); b {
	case BucketSuccess, BucketError:
		return b, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBucket, s)
	}
}

// AssociationAction действие над связью шаблона с организацией
type AssociationAction string

const (
	ActionAssociate    AssociationAction = "associate"
	ActionDisassociate AssociationAction = "disassociate"
)

// ActionFor возвращает действие, соответствующее флагу disassociate
func ActionFor(disassociate bool) AssociationAction {
	if disassociate {
		return ActionDisassociate
	}
	return ActionAssociate
}

// NotificationTemplate шаблон уведомления, доступный организации
type NotificationTemplate struct {
	ID               int64  `json:"id"`
	Name             string `json:"name,omitempty"`
	Description      string `json:"description,omitempty"`
	NotificationType string `json:"notification_type"`
	Organization     int64  `json:"organization,omitempty"`
}

// TemplateRef минимальное представление шаблона в ответах на фильтрованные запросы
type TemplateRef struct {
	ID int64 `json:"id"`
}

// JoinIDs собирает id шаблонов через запятую в порядке их следования ("1,2,3")
func JoinIDs(templates []NotificationTemplate) string {
	parts := make([]string, len(templates))
	for i, t := range templates {
		parts[i] = strconv.FormatInt(t.ID, 10)
	}
	return strings.Join(parts, ",")
}

// AssociationChange успешное изменение привязки шаблона к оповещениям организации
type AssociationChange struct {
	ID             int64             `db:"id"`
	OrganizationID int64             `db:"organization_id"`
	TemplateID     int64             `db:"template_id"`
	Bucket         Bucket            `db:"bucket"`
	Action         AssociationAction `db:"action"`
	ChangedAt      time.Time         `db:"changed_at"`
}
