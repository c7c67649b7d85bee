package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeVRM(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"PG23WCR", "PG23WCR"},
		{"pg23 wcr", "PG23WCR"},
		{"  ab12-cde  ", "AB12CDE"},
		{"A1.B2/C3", "A1B2C3"},
		{"", ""},
		{" - ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeVRM(tt.in), "input %q", tt.in)
	}
}
