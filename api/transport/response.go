package transport

import "encoding/json"

// ErrorBody is returned for every non-2xx response.
type ErrorBody struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

// MessageResponse carries a human-readable outcome such as a login result.
type MessageResponse struct {
	Mensaje string `json:"mensaje"`
}

// HealthResponse reports storage reachability.
type HealthResponse struct {
	Status string `json:"status"`
	SQLite bool   `json:"sqlite"`
	Error  string `json:"error,omitempty"`
}

// NewError returns an error body.
func NewError(code string, detail string) ErrorBody {
	return ErrorBody{
		Detail: detail,
		Code:   code,
	}
}

// NewMessage returns a message body.
func NewMessage(msg string) MessageResponse {
	return MessageResponse{Mensaje: msg}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e ErrorBody) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
