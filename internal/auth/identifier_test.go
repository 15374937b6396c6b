package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidIdentifier(t *testing.T) {
	cases := []struct {
		name string
		id   string
		want bool
	}{
		{"valid checksum", "12345678Z", true},
		{"valid zero number", "00000000T", true},
		{"lowercase letter accepted", "12345678z", true},
		{"wrong checksum letter", "12345678A", false},
		{"too short", "1234567Z", false},
		{"too long", "123456789Z", false},
		{"empty", "", false},
		{"letter inside digits", "1234X678Z", false},
		{"digit in checksum position", "123456789", false},
		{"whitespace", "12345678 ", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidIdentifier(tc.id))
		})
	}
}
