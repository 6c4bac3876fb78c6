package dto

// ErrorResponse formato uniforme de error para la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Retryable indica al caller que puede reintentar la operación completa
	// (contención transitoria sobre el producto).
	Retryable bool `json:"retryable,omitempty"`
}
