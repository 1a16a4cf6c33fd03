package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID returns a random identifier for stored documents.
func NewID() string {
	return uuid.NewString()
}

// NewTimeOrderedID returns prefix-<uuid v7>. Ids minted later sort after earlier ones.
func NewTimeOrderedID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	prefix = strings.TrimSuffix(prefix, "-")
	if prefix == "" {
		return id.String()
	}
	return prefix + "-" + id.String()
}
