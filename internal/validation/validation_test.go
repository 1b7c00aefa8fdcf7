package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		in      string
		wantErr error
	}{
		{"jane.doe@example.com", nil},
		{"a@b.co", nil},
		{"first+tag@sub.domain.org", nil},
		{"invalid-email", ErrInvalidFormat},
		{"", ErrInvalidFormat},
		{"@example.com", ErrInvalidFormat},
		{"jane@", ErrInvalidFormat},
		{"jane doe@example.com", ErrInvalidFormat},
		{"jane@example", ErrInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.ErrorIs(t, Email(tt.in), tt.wantErr)
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		in      string
		wantErr error
	}{
		{"Jane", nil},
		{"Édouard", nil},
		{"", ErrInvalidFormat},
		{"Jane1", ErrInvalidFormat},
		{"Jane Doe", ErrInvalidFormat},
		{"O'Brien", ErrInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.ErrorIs(t, Name(tt.in), tt.wantErr)
		})
	}
}

func TestPassword(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr error
	}{
		{"valid", "Str0ng!pass", nil},
		{"too short", "weak", ErrWeakPassword},
		{"short but all classes", "Aa1!", ErrWeakPassword},
		{"no uppercase", "str0ng!pass", ErrWeakPassword},
		{"no lowercase", "STR0NG!PASS", ErrWeakPassword},
		{"no digit", "Strong!pass", ErrWeakPassword},
		{"no special", "Str0ngpass", ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Password(tt.in), tt.wantErr)
		})
	}
}
