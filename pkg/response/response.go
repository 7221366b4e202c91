// Package response defines the JSON envelope shared by every domain endpoint.
package response

// Response is {status, status_code, data | error}.
type Response struct {
	Status     string      `json:"status"` // "success" or "error"
	StatusCode int         `json:"status_code"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     StatusSuccess,
		StatusCode: statusCode,
		Data:       data,
	}
}

func Error(statusCode int, message string) Response {
	return Response{
		Status:     StatusError,
		StatusCode: statusCode,
		Error:      message,
	}
}
