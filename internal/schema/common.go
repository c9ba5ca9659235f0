package schema

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// StatusResponse acknowledges a delete.
type StatusResponse struct {
	Status string `json:"status"`
}
