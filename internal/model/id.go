package model

import "github.com/google/uuid"

// ParseID parses s as a UUID, reporting a ValidationError against field.
func ParseID(field, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, &ValidationError{
			Message: "invalid input",
			Fields:  map[string]string{field: "must be a valid UUID"},
		}
	}
	return id, nil
}
