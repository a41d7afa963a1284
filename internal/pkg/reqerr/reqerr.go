package reqerr

import "net/http"

// Err is a business-rule violation that carries the message and HTTP
// status the boundary should respond with. Services raise it at the point
// of violation and let it propagate unhandled to the classifier.
type Err struct {
	Message    string
	StatusCode int
}

func (e *Err) Error() string {
	return e.Message
}

// New returns a domain error with the default 400 status.
func New(message string) *Err {
	return &Err{Message: message, StatusCode: http.StatusBadRequest}
}

func NewWithStatus(message string, status int) *Err {
	return &Err{Message: message, StatusCode: status}
}

func NotFound(message string) *Err {
	return &Err{Message: message, StatusCode: http.StatusNotFound}
}

func Forbidden(message string) *Err {
	return &Err{Message: message, StatusCode: http.StatusForbidden}
}
