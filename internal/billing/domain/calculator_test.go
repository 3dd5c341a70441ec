package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestCalculate(t *testing.T) {
	tests := []struct {
		name        string
		input       CalculationInput
		consumption float64
		cost        int64
		total       int64
	}{
		{
			name: "reading with previous",
			input: CalculationInput{
				CurrentReading:  ptr(120),
				PreviousReading: ptr(100),
				UnitRate:        1000,
				Credit:          50,
				ExtraCharges:    10,
			},
			consumption: 20,
			cost:        120000,
			total:       120060,
		},
		{
			name: "reading without previous",
			input: CalculationInput{
				CurrentReading: ptr(70),
				UnitRate:       1000,
				Credit:         10,
				ExtraCharges:   2,
			},
			consumption: 70,
			cost:        70000,
			total:       70012,
		},
		{
			name: "no reading on file",
			input: CalculationInput{
				UnitRate:     1000,
				Credit:       25,
				ExtraCharges: 5,
			},
			consumption: 0,
			cost:        0,
			total:       30,
		},
		{
			name: "fractional reading rounds half away from zero",
			input: CalculationInput{
				CurrentReading: ptr(0.0005),
				UnitRate:       1000,
			},
			consumption: 0.0005,
			cost:        1,
			total:       1,
		},
		{
			name: "negative adjustment rounds away from zero",
			input: CalculationInput{
				CurrentReading: ptr(1),
				UnitRate:       1000,
				Credit:         -1000.5,
			},
			consumption: 1,
			cost:        1000,
			total:       -1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			calc := Calculate(tc.input)
			assert.Equal(t, tc.consumption, calc.Consumption)
			assert.Equal(t, tc.cost, calc.ConsumptionCost)
			assert.Equal(t, tc.total, calc.Total)
		})
	}
}
