package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Valid", "Alice", false},
		{"Exactly Min Length", "Al", false},
		{"Unicode", "Zoë", false},
		{"Two Runes Multibyte", "日本", false},
		{"Too Short", "A", true},
		{"Empty", "", true},
		{"Whitespace Padding Only", "  A  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"Valid", "alice@example.com", false},
		{"Plus Tag", "alice+friends@example.co.uk", false},
		{"Padded", "  bob@example.com ", false},
		{"Empty", "", true},
		{"No At", "alice.example.com", true},
		{"No Domain", "alice@", true},
		{"Two Addresses", "a@example.com b@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
