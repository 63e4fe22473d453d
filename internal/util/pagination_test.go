package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantFrom   int
		wantLimit  int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 5, 10, 5},
		{"zero page clamps to first", 0, 10, 0, 10},
		{"negative page clamps to first", -2, 10, 0, 10},
		{"zero size falls back to default", 2, 0, DefaultPageSize, DefaultPageSize},
		{"oversized page size falls back to default", 1, 500, 0, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, limit := Calculate(tt.page, tt.size)
			require.Equal(t, tt.wantFrom, from)
			require.Equal(t, tt.wantLimit, limit)
		})
	}
}
