package common

import (
	"github.com/google/uuid"
)

// NewUploadID generates a unique upload record ID with the "upl_" prefix
// Format: upl_<uuid>
func NewUploadID() string {
	return "upl_" + uuid.New().String()
}
