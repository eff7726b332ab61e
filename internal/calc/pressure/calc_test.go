package pressure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		intake  float64
		exhaust float64
		want    Category
	}{
		{"upper boundary is neutral", 20, 10, Neutral},
		{"just above upper boundary", 20.0001, 10, Positive},
		{"lower boundary is neutral", 10, 20, Neutral},
		{"just below lower boundary", 10, 20.0001, Negative},
		{"balanced", 0, 0, Neutral},
		{"gaming pc", 143, 65, Positive},
		{"exhaust heavy", 1170, 3520, Negative},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.intake, tt.exhaust)
			assert.Equal(t, tt.want, got.Category)
			assert.InDelta(t, tt.intake-tt.exhaust, got.DifferentialCFM, 1e-12)
		})
	}
}

func TestClassify_ExactDifferentials(t *testing.T) {
	assert.Equal(t, Neutral, Classify(10, 0).Category)
	assert.Equal(t, Positive, Classify(10.0001, 0).Category)
	assert.Equal(t, Neutral, Classify(0, 10).Category)
	assert.Equal(t, Negative, Classify(0, 10.0001).Category)
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("Negative Pressure")
	assert.True(t, ok)
	assert.Equal(t, Negative, c)

	c, ok = ParseCategory(" positive")
	assert.True(t, ok)
	assert.Equal(t, Positive, c)

	_, ok = ParseCategory("auto detect")
	assert.False(t, ok)
}
