package domain

import "math"

type CalculationInput struct {
	CurrentReading  *float64
	PreviousReading *float64
	UnitRate        float64
	Credit          float64
	ExtraCharges    float64
}

type Calculation struct {
	// Consumption is the display delta between readings; billing charges
	// the absolute current reading, not this delta.
	Consumption     float64
	ConsumptionCost int64
	Total           int64
}

// Calculate prices a billing period. The consumption cost is the current
// reading times the unit rate; a customer with no reading on file is
// charged zero. Rounding is half away from zero.
func Calculate(in CalculationInput) Calculation {
	var calc Calculation

	if in.CurrentReading != nil {
		if in.PreviousReading != nil {
			calc.Consumption = *in.CurrentReading - *in.PreviousReading
		} else {
			calc.Consumption = *in.CurrentReading
		}
		calc.ConsumptionCost = int64(math.Round(*in.CurrentReading * in.UnitRate))
	}

	calc.Total = int64(math.Round(float64(calc.ConsumptionCost) + in.Credit + in.ExtraCharges))
	return calc
}
