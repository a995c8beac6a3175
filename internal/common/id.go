package common

import (
	"github.com/google/uuid"
)

// NewRecordID generates a random UUID v4 record id
func NewRecordID() string {
	return uuid.New().String()
}
