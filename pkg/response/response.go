// Package response defines the JSON envelope shared by every endpoint, so
// clients can branch on the status field without parsing HTTP codes.
package response

// Response carries either a data payload or an error message, never both.
type Response struct {
	Status     string      `json:"status"`
	StatusCode int         `json:"status_code"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Success wraps data in a success envelope.
func Success(statusCode int, data interface{}) Response {
	return Response{Status: "success", StatusCode: statusCode, Data: data}
}

// Error wraps msg in an error envelope.
func Error(statusCode int, msg string) Response {
	return Response{Status: "error", StatusCode: statusCode, Error: msg}
}
