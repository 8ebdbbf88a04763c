package catalog

import (
	"fmt"
	"math"
)

// VATRefundRate is the effective tourist tax-refund fraction applied
// to the converted price. It is a modeling constant, not a remittance
// rate derived from any formula.
const VATRefundRate = 0.085

// Breakdown is the cross-currency cost of one VND price: the
// converted INR amount, the VAT refund and the net cost after the
// refund. Each field is rounded independently, so every field is
// within one unit of its exact rational value.
type Breakdown struct {
	INRPrice   int
	VATRefund  int
	FinalPrice int
}

// ComputeBreakdown converts a positive whole-VND price at the given
// VND-per-INR rate. A non-positive rate is a caller configuration
// error; there is no fallback rate here.
func ComputeBreakdown(vndPrice int, rate float64) (Breakdown, error) {
	if vndPrice <= 0 {
		return Breakdown{}, fmt.Errorf("vnd price must be positive, got %d", vndPrice)
	}
	if rate <= 0 {
		return Breakdown{}, fmt.Errorf("exchange rate must be positive, got %v", rate)
	}

	inr := int(math.Round(float64(vndPrice) / rate))
	refund := int(math.Round(float64(inr) * VATRefundRate))

	return Breakdown{
		INRPrice:   inr,
		VATRefund:  refund,
		FinalPrice: inr - refund,
	}, nil
}
