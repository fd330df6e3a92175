package runtime

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies how an invocation error should be surfaced.
type ErrorKind string

const (
	// KindConfiguration signals missing or invalid node settings.
	KindConfiguration ErrorKind = "configuration_error"
	// KindSerialization signals input that cannot be represented as JSON.
	KindSerialization ErrorKind = "serialization_error"
	// KindImage signals input that does not decode as a usable image.
	KindImage ErrorKind = "image_error"
	// KindUpload signals a storage write failure.
	KindUpload ErrorKind = "upload_error"
	// KindNotification signals a webhook delivery failure. Never fatal;
	// present for logging and task metadata only.
	KindNotification ErrorKind = "notification_error"
	// KindRuntime covers everything the framework itself produces.
	KindRuntime ErrorKind = "runtime_error"
)

// Kinder is implemented by node error types that know their own kind.
// The HTTP handler uses it to pick a response status.
type Kinder interface {
	Kind() ErrorKind
}

// InvocationError is the canonical error envelope returned to the host.
// It is JSON-serializable so the host GUI can render it directly.
type InvocationError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Node    string    `json:"node"`
	Task    string    `json:"task"`
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("[%s] %s (node: %s, task: %s)", e.Kind, e.Message, e.Node, e.Task)
}

// NewInvocationError builds the envelope for an error returned by a task.
// Node errors implementing Kinder keep their kind; everything else is
// classified as a runtime error.
func NewInvocationError(err error, node, task string) *InvocationError {
	kind := KindRuntime
	var kinder Kinder
	if errors.As(err, &kinder) {
		kind = kinder.Kind()
	}
	return &InvocationError{
		Kind:    kind,
		Message: err.Error(),
		Node:    node,
		Task:    task,
	}
}

// StatusCode maps an error kind to the HTTP status returned to the host.
func (e *InvocationError) StatusCode() int {
	switch e.Kind {
	case KindConfiguration, KindImage:
		return http.StatusUnprocessableEntity
	case KindSerialization:
		return http.StatusBadRequest
	case KindUpload:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
