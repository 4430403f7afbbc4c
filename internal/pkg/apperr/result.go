// internal/pkg/apperr/result.go
package apperr

// Result is the uniform action outcome returned to clients. Every mutating
// endpoint resolves to one of these; failures never propagate past the
// handler boundary.
type Result struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// OK builds a success result.
func OK(message string, data interface{}) Result {
	return Result{Success: true, Message: message, Data: data}
}

// Fail builds a failure result from any error, using the application
// error's message when available.
func Fail(err error) Result {
	return Result{Success: false, Message: err.Error()}
}
