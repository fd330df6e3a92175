package r2

import (
	"fmt"

	"r2node/runtime"
)

// ConfigurationError reports missing or invalid node settings. Raised
// before any network call is made.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

func (e *ConfigurationError) Kind() runtime.ErrorKind { return runtime.KindConfiguration }

// SerializationError reports workflow metadata that cannot be
// represented as JSON.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialization error: %v", e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

func (e *SerializationError) Kind() runtime.ErrorKind { return runtime.KindSerialization }

// ImageError reports input that does not decode as a usable image.
type ImageError struct {
	Reason string
}

func (e *ImageError) Error() string {
	return "image error: " + e.Reason
}

func (e *ImageError) Kind() runtime.ErrorKind { return runtime.KindImage }

// UploadError reports a failed storage write. The underlying transport
// or status detail is preserved for display to the user.
type UploadError struct {
	Key string
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload of %s failed: %v", e.Key, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

func (e *UploadError) Kind() runtime.ErrorKind { return runtime.KindUpload }

// NotificationError reports a failed webhook delivery. Logged by the
// node, never propagated to the host.
type NotificationError struct {
	Err error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification failed: %v", e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }

func (e *NotificationError) Kind() runtime.ErrorKind { return runtime.KindNotification }
