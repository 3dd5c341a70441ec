package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCOP(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		decimals int
		expected string
	}{
		{"zero", 0, 2, "$ 0,00"},
		{"small", 500, 2, "$ 500,00"},
		{"thousands", 1234, 2, "$ 1.234,00"},
		{"millions", 1234567, 2, "$ 1.234.567,00"},
		{"no decimals", 1000, 0, "$ 1.000"},
		{"cents", 1234.5, 2, "$ 1.234,50"},
		{"negative", -1234, 2, "$ -1.234,00"},
		{"typical bill", 120060, 2, "$ 120.060,00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, COP(tc.value, tc.decimals))
		})
	}
}

func TestSpanishDate(t *testing.T) {
	tests := []struct {
		date     time.Time
		expected string
	}{
		{time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC), "12 de enero de 2026"},
		{time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), "31 de diciembre de 2025"},
		{time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), "1 de agosto de 2026"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, SpanishDate(tc.date))
	}
}

func TestPeriod(t *testing.T) {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Del 1 de enero de 2026 al 31 de enero de 2026", Period(start, end))
}
