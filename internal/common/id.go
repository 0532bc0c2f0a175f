package common

import (
	"github.com/google/uuid"
)

// NewInvocationID generates a unique ID for one helper run, used as the log correlation ID
// Format: rc_<uuid>
func NewInvocationID() string {
	return "rc_" + uuid.New().String()
}
