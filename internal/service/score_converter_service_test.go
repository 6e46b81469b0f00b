package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCEFR(t *testing.T) {
	conv := NewScoreConverterService()

	tests := []struct {
		total, max float64
		want       string
	}{
		{0, 50, CEFRA0},
		{7, 50, CEFRA0},
		{7.5, 50, CEFRA1},
		{17.5, 50, CEFRA2},
		{27.5, 50, CEFRB1},
		{37.5, 50, CEFRB2},
		{45, 50, CEFRC},
		{60, 50, CEFRC},
		{3, 0, CEFRA0},
	}
	for _, tt := range tests {
		got, err := conv.ToCEFR(tt.total, tt.max)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "total=%v max=%v", tt.total, tt.max)
	}

	_, err := conv.ToCEFR(-1, 10)
	assert.Error(t, err)
}
