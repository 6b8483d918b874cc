package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Valid", "Pass1!", false},
		{"Valid longer", "Sup3r-Secret", false},
		{"Too short", "Ab1!", true},
		{"No uppercase", "pass1!", true},
		{"No digit", "Passwd!", true},
		{"No symbol", "Passwd1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"Valid", "amira@example.com", false},
		{"Subdomain", "a.b@mail.example.co", false},
		{"Missing at", "amira.example.com", true},
		{"Missing tld", "amira@example", true},
		{"Empty", "", true},
		{"Spaces", "a mira@example.com", true},
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

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("amira_k"))
	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername("_amira"))
	assert.Error(t, ValidateUsername("amira!"))
}
