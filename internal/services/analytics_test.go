package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuccessRate(t *testing.T) {
	tests := []struct {
		name       string
		successful int64
		total      int64
		want       float64
	}{
		{"seven of ten", 7, 10, 70.0},
		{"no rides", 0, 0, 0},
		{"all successful", 5, 5, 100.0},
		{"none successful", 0, 8, 0},
		{"rounds to one decimal", 1, 3, 33.3},
		{"rounds half up", 2, 3, 66.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, successRate(tt.successful, tt.total))
		})
	}
}
