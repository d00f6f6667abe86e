package controller

import "errors"

var (
	// ErrNotFound возвращается, когда организация или шаблон не найдены
	ErrNotFound = errors.New("controller client: not found")

	// ErrUnauthorized возвращается при отказе в доступе (401/403)
	ErrUnauthorized = errors.New("controller client: unauthorized")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("controller client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от API
	ErrInvalidResponse = errors.New("controller client: invalid response")
)
