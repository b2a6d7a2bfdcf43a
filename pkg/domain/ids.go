package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// idPattern matches valid entity identifiers: leading letter, then
// alphanumerics with hyphens/underscores.
var idPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// ValidateID checks that a caller-supplied identifier (project, module
// or step id arriving over HTTP or the CLI) is well formed.
func ValidateID(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%w: id cannot be empty", ErrValidation)
	}
	if !idPattern.MatchString(value) {
		return fmt.Errorf("%w: invalid id format: %s", ErrValidation, value)
	}
	return nil
}
