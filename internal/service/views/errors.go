package views

import "errors"

var (
	// ErrViewNotMounted возвращается, если представление организации еще не открыто
	ErrViewNotMounted = errors.New("service.views: view is not mounted")
)
