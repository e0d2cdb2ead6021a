package types

type ApiResponse struct {
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Token   string      `json:"token,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// ValidationErrorResponse carries field-level validation errors so the client
// can render them inline next to the offending inputs.
type ValidationErrorResponse struct {
	Message string            `json:"message"`
	Status  int               `json:"status"`
	Fields  map[string]string `json:"fields"`
}
