package controller

// ListResponse страница результатов API контроллера
type ListResponse[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// AssociationRequest тело запроса на привязку/отвязку шаблона.
// Ключ disassociate отсутствует в теле, если отвязка не требуется.
type AssociationRequest struct {
	ID           int64 `json:"id"`
	Disassociate bool  `json:"disassociate,omitempty"`
}

