package utils

import "github.com/google/uuid"

// GenerateID returns a new random identifier for any entity
func GenerateID() string {
	return uuid.New().String()
}
