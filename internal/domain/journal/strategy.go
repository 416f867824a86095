package journal

import (
	"strings"

	"github.com/google/uuid"
)

// Strategy is a globally registered strategy name, unique case-insensitively
type Strategy struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// NewStrategy trims and validates the name
func NewStrategy(name string) (*Strategy, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyStrategyName
	}
	return &Strategy{ID: uuid.New(), Name: name}, nil
}
