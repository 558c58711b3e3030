package errors

import (
	"testing"
)

func TestValidateMemberPattern(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain", "crates/a", false},
		{"glob", "crates/*", false},
		{"double star", "libs/**", false},
		{"parent", "../shared", false},

		{"empty", "", true},
		{"blank", "  ", true},
		{"absolute", "/opt/crate", true},
		{"control char", "crates/\x01a", true},
		{"newline", "crates/a\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMemberPattern(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMemberPattern(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidWorkspace) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidWorkspace)
			}
		})
	}
}
