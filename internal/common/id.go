package common

import (
	"github.com/google/uuid"
)

// NewCIMID generates a unique document ID with the "cim_" prefix
// Format: cim_<uuid>
func NewCIMID() string {
	return "cim_" + uuid.New().String()
}
