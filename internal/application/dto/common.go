package dto

// DefaultPageSize tamaño fijo de página; no hay paginación más allá de la primera.
const DefaultPageSize = 50

// ListResponse envoltorio de listados.
type ListResponse[T any] struct {
	Items    []T  `json:"items"`
	Total    int  `json:"total"`
	Page     int  `json:"page"`
	PageSize int  `json:"pageSize"`
	HasMore  bool `json:"hasMore"`
}

// NewList construye una página única con todos los elementos.
func NewList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{
		Items:    items,
		Total:    len(items),
		Page:     1,
		PageSize: DefaultPageSize,
		HasMore:  false,
	}
}

// Envelope cuerpo común de todas las respuestas HTTP.
type Envelope struct {
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse resultado de operaciones sin entidad de retorno.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
