package utils

import (
	"errors"

	"github.com/google/uuid"
)

var errNilID = errors.New("nil identifier")

// GenerateID returns a new random (version 4) identifier.
// It panics if the system randomness source fails.
func GenerateID() uuid.UUID {
	return uuid.New()
}

// ParseID parses a textual identifier, rejecting the nil UUID
func ParseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, err
	}
	if id == uuid.Nil {
		return uuid.Nil, errNilID
	}
	return id, nil
}
