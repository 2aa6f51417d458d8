package printer

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// ESC/POS command constants
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
)

// Character size. Only height is scaled so key/value columns keep their width.
const (
	FontNormal = 0x00
	FontTall   = 0x01
)

// Document builds an ESC/POS byte stream for thermal printers.
type Document struct {
	buf   bytes.Buffer
	width int // print width in characters (default 32 for 58mm, 48 for 80mm)
}

// NewDocument creates a new ESC/POS document with the given character width.
// Common widths: 32 for 58mm paper, 48 for 80mm paper. See ColumnsForPaper.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 32
	}
	d := &Document{width: charWidth}
	d.Init()
	return d
}

// ColumnsForPaper returns the character width of a paper roll in millimetres.
func ColumnsForPaper(widthMM int) int {
	if widthMM >= 80 {
		return 48
	}
	return 32
}

// Width returns the line width in characters.
func (d *Document) Width() int {
	return d.width
}

// Init sends the ESC @ (initialize printer) command.
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// FeedLines sends n line feeds.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// SetAlign sets text alignment: AlignLeft or AlignCenter.
func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

// SetBold enables or disables bold text.
func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

// SetFontSize sets the character size, FontNormal or FontTall.
func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Text writes a line of text followed by a line feed.
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(LF)
	return d
}

// Separator prints a full-width separator line (e.g. "--------------------------------").
func (d *Document) Separator(char rune) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// KeyValue prints a left-aligned key and right-aligned value on the same line.
// Example: "Netto                     500 Kg"
// When both do not fit, the value is right-aligned on its own line.
func (d *Document) KeyValue(key, value string) *Document {
	d.buf.WriteString(KeyValueLine(key, value, d.width))
	d.buf.WriteByte(LF)
	return d
}

// KeyValueLine lays out key and value across width columns. The result may
// contain a line feed when they do not fit on one line.
func KeyValueLine(key, value string, width int) string {
	keyLen := utf8.RuneCountInString(key)
	valueLen := utf8.RuneCountInString(value)
	spaces := width - keyLen - valueLen
	if spaces >= 1 {
		return key + strings.Repeat(" ", spaces) + value
	}
	pad := width - valueLen
	if pad < 0 {
		pad = 0
	}
	return key + "\n" + strings.Repeat(" ", pad) + value
}

// CenterLine pads s so it is centered within width columns.
func CenterLine(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", (width-n)/2) + s
}

// PartialCut sends the partial cut command.
func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}
