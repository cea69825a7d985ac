package essay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenBudget(t *testing.T) {
	cases := []struct {
		name       string
		length     int
		configured int
		want       int
	}{
		{"short essay", 500, 12000, 1500},
		{"budget capped", 5000, 12000, 12000},
		{"configured cap lower", 5000, 8000, 8000},
		{"zero config falls back to hard cap", 5000, 0, 12000},
		{"config above hard cap is clamped", 10000, 50000, 12000},
		{"tiny length floors at one", 0, 12000, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tokenBudget(tc.length, tc.configured))
		})
	}
}
