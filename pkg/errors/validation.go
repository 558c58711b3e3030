package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateMemberPattern validates a `workspace.members` or
// `workspace.exclude` entry. Entries are relative paths or glob patterns
// resolved against the workspace root.
func ValidateMemberPattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return New(ErrCodeInvalidWorkspace, "member path cannot be empty")
	}

	for _, r := range pattern {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidWorkspace, "member path %q contains control characters", pattern)
		}
	}

	if filepath.IsAbs(pattern) || strings.HasPrefix(pattern, "/") {
		return New(ErrCodeInvalidWorkspace, "member path %q must be relative to the workspace root", pattern)
	}

	return nil
}
