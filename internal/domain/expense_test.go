package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidAmount(t *testing.T) {
	tests := []struct {
		amount string
		want   bool
	}{
		{"0", true},
		{"12.5", true},
		{"0.01", true},
		{"999999999999.99", true},
		{"1000000000000", false},
		{"1e20", false},
		{"0.001", false},
		{"-0.01", false},
	}

	for _, tc := range tests {
		t.Run(tc.amount, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidAmount(decimal.RequireFromString(tc.amount)))
		})
	}
}
