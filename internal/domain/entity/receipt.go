package entity

import "github.com/google/uuid"

// ReceiptLineKind identifies how a renderer should lay out a line.
type ReceiptLineKind string

const (
	LineKeyValue    ReceiptLineKind = "key_value"
	LineConditional ReceiptLineKind = "conditional"
	LineSeparator   ReceiptLineKind = "separator"
	LineText        ReceiptLineKind = "text"
)

// SeparatorStyle is the weight of a separator rule.
type SeparatorStyle string

const (
	SeparatorThin  SeparatorStyle = "thin"
	SeparatorThick SeparatorStyle = "thick"
)

// ReceiptSection groups lines so renderers can style a block as a whole.
type ReceiptSection string

const (
	SectionHeader   ReceiptSection = "header"
	SectionBody     ReceiptSection = "body"
	SectionIdentity ReceiptSection = "identity"
	SectionNotes    ReceiptSection = "notes"
	SectionFooter   ReceiptSection = "footer"
)

// ReceiptLine is one line of a receipt. All values are already formatted.
type ReceiptLine struct {
	Kind      ReceiptLineKind `json:"kind"`
	Section   ReceiptSection  `json:"section"`
	Label     string          `json:"label,omitempty"`
	Value     string          `json:"value,omitempty"`
	Text      string          `json:"text,omitempty"`
	Separator SeparatorStyle  `json:"separator,omitempty"`
	Emphasis  bool            `json:"emphasis,omitempty"`
	Visible   bool            `json:"visible"`
}

// IsPair reports whether the line carries a label and value.
func (l ReceiptLine) IsPair() bool {
	return l.Kind == LineKeyValue || l.Kind == LineConditional
}

// ReceiptDocument is the single layout every receipt output is rendered from.
// It is built once per transaction and never mutated by renderers.
type ReceiptDocument struct {
	TransactionID uuid.UUID     `json:"transaction_id"`
	Filename      string        `json:"filename"`
	PaperWidthMM  int           `json:"paper_width_mm"`
	Lines         []ReceiptLine `json:"lines"`
}

// VisibleLines returns the lines in order with hidden conditional lines dropped.
func (d *ReceiptDocument) VisibleLines() []ReceiptLine {
	out := make([]ReceiptLine, 0, len(d.Lines))
	for _, l := range d.Lines {
		if l.Visible {
			out = append(out, l)
		}
	}
	return out
}

// LabelValue is an ordered label and value pair.
type LabelValue struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Pairs returns the visible label/value pairs in document order.
func (d *ReceiptDocument) Pairs() []LabelValue {
	var out []LabelValue
	for _, l := range d.VisibleLines() {
		if l.IsPair() {
			out = append(out, LabelValue{Label: l.Label, Value: l.Value})
		}
	}
	return out
}

// Find returns the first visible pair with the given label.
func (d *ReceiptDocument) Find(label string) (ReceiptLine, bool) {
	for _, l := range d.VisibleLines() {
		if l.IsPair() && l.Label == label {
			return l, true
		}
	}
	return ReceiptLine{}, false
}
