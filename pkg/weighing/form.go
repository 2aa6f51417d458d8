package weighing

// Form is the live entry state of a weighing. Each setter re-parses the
// inputs and recomputes the totals before it returns, so Totals is never
// stale relative to Raw.
type Form struct {
	raw    RawInput
	totals Totals
}

// NewForm returns a form seeded with raw and its computed totals.
func NewForm(raw RawInput) *Form {
	f := &Form{raw: raw}
	f.recompute()
	return f
}

func (f *Form) SetGross(v string) {
	f.raw.GrossWeightKg = v
	f.recompute()
}

func (f *Form) SetTare(v string) {
	f.raw.TareWeightKg = v
	f.recompute()
}

func (f *Form) SetDeductionPercent(v string) {
	f.raw.DeductionPercent = v
	f.recompute()
}

func (f *Form) SetDeductionKg(v string) {
	f.raw.DeductionKg = v
	f.recompute()
}

func (f *Form) SetPricePerKg(v string) {
	f.raw.PricePerKg = v
	f.recompute()
}

// Raw returns the text inputs as last set.
func (f *Form) Raw() RawInput {
	return f.raw
}

// Input returns the parsed inputs.
func (f *Form) Input() Input {
	return f.raw.Parse()
}

// Totals returns the derived values for the current inputs.
func (f *Form) Totals() Totals {
	return f.totals
}

func (f *Form) recompute() {
	f.totals = Compute(f.raw.Parse())
}
