package validator

import (
	"fmt"

	"github.com/google/uuid"
)

// parseUUID accepts only the canonical 36 character form.
func parseUUID(value string) (uuid.UUID, bool) {
	if len(value) != 36 || value[8] != '-' || value[13] != '-' || value[18] != '-' || value[23] != '-' {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(value)
	return id, err == nil
}

func ValidUUID(field, value string) Rule {
	return Rule{
		Check: func() bool {
			_, ok := parseUUID(value)
			return ok
		},
		Error: newError(field, "must be a valid UUID", "validation.uuid", nil),
	}
}

func ValidUUIDVersion(field, value string, version int) Rule {
	return Rule{
		Check: func() bool {
			id, ok := parseUUID(value)
			return ok && id.Version() == uuid.Version(version)
		},
		Error: newError(field, fmt.Sprintf("must be a UUID version %d", version), "validation.uuid_version",
			map[string]any{"version": version}),
	}
}
