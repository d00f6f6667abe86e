package notifications_list

import "errors"

var (
	// ErrFetchFailed возвращается, если не удалось загрузить страницу шаблонов или их привязки
	ErrFetchFailed = errors.New("service.notifications_list: failed to fetch notifications")

	// ErrStaleFetch возвращается, если за время загрузки состояние успело измениться
	ErrStaleFetch = errors.New("service.notifications_list: fetch superseded by a newer change")

	// ErrToggleFailed возвращается, если запрос на привязку/отвязку завершился ошибкой
	ErrToggleFailed = errors.New("service.notifications_list: failed to toggle notification")

	// ErrUnknownBucket возвращается при неизвестном типе оповещений
	ErrUnknownBucket = errors.New("service.notifications_list: unknown notification bucket")
)
