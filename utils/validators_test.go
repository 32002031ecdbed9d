package utils

import "testing"

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"abc1!x", true},
		{"longenough2#", true},
		{"short", false},
		{"nodigits!!", false},
		{"nospecial123", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := ValidatePassword(tc.password); got != tc.want {
			t.Errorf("ValidatePassword(%q) = %v, want %v", tc.password, got, tc.want)
		}
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+14155550123", true},
		{"+491711234567", true},
		{"14155550123", false},
		{"+0123456789", false},
		{"+1-415-555", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := ValidatePhoneNumber(tc.phone); got != tc.want {
			t.Errorf("ValidatePhoneNumber(%q) = %v, want %v", tc.phone, got, tc.want)
		}
	}
}
