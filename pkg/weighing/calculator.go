package weighing

import (
	"math"
	"strconv"
	"strings"
)

// Input holds the numeric operator inputs for a weighing.
type Input struct {
	GrossWeightKg    float64 `json:"gross_weight_kg"`
	TareWeightKg     float64 `json:"tare_weight_kg"`
	DeductionPercent float64 `json:"deduction_percent"`
	DeductionKg      float64 `json:"deduction_kg"`
	PricePerKg       float64 `json:"price_per_kg"`
}

// Totals holds the values derived from an Input.
type Totals struct {
	NetWeightKg       float64 `json:"net_weight_kg"`
	DeductionAmountKg float64 `json:"deduction_amount_kg"`
	BilledWeightKg    float64 `json:"billed_weight_kg"`
	TotalPrice        float64 `json:"total_price"`
}

// Compute derives net weight, percentage deduction, billed weight and total
// price. Every derived value is clamped at zero. Compute never fails.
func Compute(in Input) Totals {
	gross := finite(in.GrossWeightKg)
	tare := finite(in.TareWeightKg)
	pct := finite(in.DeductionPercent)
	dedKg := finite(in.DeductionKg)
	price := finite(in.PricePerKg)

	net := math.Max(0, gross-tare)
	pctAmount := net * pct / 100
	billed := math.Max(0, net-dedKg-pctAmount)
	total := math.Max(0, billed*price)

	return Totals{
		NetWeightKg:       net,
		DeductionAmountKg: pctAmount,
		BilledWeightKg:    billed,
		TotalPrice:        total,
	}
}

// RawInput is the operator's text as typed. Empty fields are meaningful for
// validation, so the raw form is kept next to the parsed one.
type RawInput struct {
	GrossWeightKg    string `json:"gross_weight_kg"`
	TareWeightKg     string `json:"tare_weight_kg"`
	DeductionPercent string `json:"deduction_percent"`
	DeductionKg      string `json:"deduction_kg"`
	PricePerKg       string `json:"price_per_kg"`
}

// Parse converts every field with ParseAmount.
func (r RawInput) Parse() Input {
	return Input{
		GrossWeightKg:    ParseAmount(r.GrossWeightKg),
		TareWeightKg:     ParseAmount(r.TareWeightKg),
		DeductionPercent: ParseAmount(r.DeductionPercent),
		DeductionKg:      ParseAmount(r.DeductionKg),
		PricePerKg:       ParseAmount(r.PricePerKg),
	}
}

// Missing returns the names of the required fields left blank.
func (r RawInput) Missing() []string {
	var missing []string
	if strings.TrimSpace(r.GrossWeightKg) == "" {
		missing = append(missing, "gross_weight_kg")
	}
	if strings.TrimSpace(r.TareWeightKg) == "" {
		missing = append(missing, "tare_weight_kg")
	}
	if strings.TrimSpace(r.PricePerKg) == "" {
		missing = append(missing, "price_per_kg")
	}
	return missing
}

// ParseAmount reads the leading decimal number of operator text, so
// "1500 kg" is 1500 and "1,5" is 1. Text without a leading number is 0.
func ParseAmount(raw string) float64 {
	s := leadingNumber(strings.TrimLeft(raw, " \t\r\n"))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finite(v)
}

// leadingNumber returns the longest prefix of s of the form
// [+-]digits[.digits][e[+-]digits], or "" when s does not start with one.
func leadingNumber(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	intEnd := skipDigits(s, i)
	end := intEnd
	digits := intEnd > i
	if end < len(s) && s[end] == '.' {
		fracEnd := skipDigits(s, end+1)
		if fracEnd > end+1 || digits {
			digits = digits || fracEnd > end+1
			end = fracEnd
		}
	}
	if !digits {
		return ""
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		j := end + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if expEnd := skipDigits(s, j); expEnd > j {
			end = expEnd
		}
	}
	return s[:end]
}

func skipDigits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
