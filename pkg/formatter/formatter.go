// Package formatter renders amounts, weights and dates the same way for every
// receipt and report output.
package formatter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Options carries the locale settings used by the number formatters.
type Options struct {
	Symbol             string
	ThousandsSeparator string
	DecimalSeparator   string
	DecimalPlaces      int
}

// decimalMark falls back to "," when grouping with "." and to "." otherwise.
func (o Options) decimalMark() string {
	if o.DecimalSeparator != "" {
		return o.DecimalSeparator
	}
	if o.ThousandsSeparator == "." {
		return ","
	}
	return "."
}

func (o Options) places() int32 {
	if o.DecimalPlaces < 0 {
		return 0
	}
	return int32(o.DecimalPlaces)
}

// Currency formats amount as "<symbol> <grouped number>", rounded half away
// from zero to the configured decimal places.
//
//	Currency(485000, Options{Symbol: "Rp", ThousandsSeparator: "."}) == "Rp 485.000"
func Currency(amount float64, o Options) string {
	places := o.places()
	d := decimal.NewFromFloat(amount).Round(places)
	n := joinParts(d, d.Abs().StringFixed(places), o)
	if o.Symbol == "" {
		return n
	}
	return o.Symbol + " " + n
}

// ParseCurrency reverses Currency for the same options.
func ParseCurrency(s string, o Options) (float64, error) {
	v := strings.TrimSpace(s)
	if o.Symbol != "" {
		v = strings.TrimSpace(strings.TrimPrefix(v, o.Symbol))
	}
	if o.ThousandsSeparator != "" {
		v = strings.ReplaceAll(v, o.ThousandsSeparator, "")
	}
	if mark := o.decimalMark(); mark != "." {
		v = strings.ReplaceAll(v, mark, ".")
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("formatter: invalid currency %q: %w", s, err)
	}
	return f, nil
}

// Number formats v with grouping and up to maxFraction fraction digits,
// dropping trailing zeros.
func Number(v float64, maxFraction int, o Options) string {
	if maxFraction < 0 {
		maxFraction = 0
	}
	d := decimal.NewFromFloat(v).Round(int32(maxFraction))
	return joinParts(d, d.Abs().String(), o)
}

// Weight formats kilograms with at most two fraction digits, e.g. "1.234,5 Kg".
func Weight(kg float64, o Options) string {
	return Number(kg, 2, o) + " Kg"
}

// Percent formats a deduction percentage, e.g. "3%" or "2,5%".
func Percent(p float64, o Options) string {
	return Number(p, 2, o) + "%"
}

func joinParts(d decimal.Decimal, digits string, o Options) string {
	intPart, fracPart, _ := strings.Cut(digits, ".")
	out := group(intPart, o.ThousandsSeparator)
	if fracPart != "" {
		out += o.decimalMark() + fracPart
	}
	if d.Sign() < 0 {
		out = "-" + out
	}
	return out
}

func group(intPart, sep string) string {
	if sep == "" || len(intPart) <= 3 {
		return intPart
	}
	var b strings.Builder
	head := len(intPart) % 3
	if head > 0 {
		b.WriteString(intPart[:head])
	}
	for i := head; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String()
}

// Date substitutes the DD, MM and YYYY tokens of pattern with the calendar
// date of date. Other characters are kept as they are.
func Date(date time.Time, pattern string) string {
	out := strings.ReplaceAll(pattern, "YYYY", fmt.Sprintf("%04d", date.Year()))
	out = strings.ReplaceAll(out, "MM", fmt.Sprintf("%02d", int(date.Month())))
	out = strings.ReplaceAll(out, "DD", fmt.Sprintf("%02d", date.Day()))
	return out
}

// DateTime is Date followed, when showTime is set, by " HH:MM" taken from
// createdAt in loc.
func DateTime(date, createdAt time.Time, pattern string, showTime bool, loc *time.Location) string {
	out := Date(date, pattern)
	if !showTime {
		return out
	}
	t := createdAt
	if loc != nil {
		t = t.In(loc)
	}
	return out + " " + t.Format("15:04")
}

var shortMonths = [...]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}

// ShortDate formats a date as "02 Jan 2024" with Indonesian month names.
func ShortDate(date time.Time) string {
	return fmt.Sprintf("%02d %s %04d", date.Day(), shortMonths[date.Month()-1], date.Year())
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_]`)

// ReceiptFilename returns "Receipt_<customer>_<YYYY-MM-DD>.pdf" with every
// character of the customer name outside [A-Za-z0-9_] replaced by "_".
func ReceiptFilename(customerName string, date time.Time) string {
	return "Receipt_" + unsafeFilenameChars.ReplaceAllString(customerName, "_") + "_" + date.Format("2006-01-02") + ".pdf"
}

// PDFFilename sanitizes a caller supplied name and forces the .pdf extension.
func PDFFilename(name string) string {
	base := strings.TrimSuffix(strings.TrimSpace(name), ".pdf")
	if base == "" {
		return ""
	}
	return unsafeFilenameChars.ReplaceAllString(base, "_") + ".pdf"
}
