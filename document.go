package zpl

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

const (
	documentStart = "^XA\n\n"
	documentEnd   = "\n\n^XZ"
	labelBreak    = "\n\n^XZ\n^XA\n\n"

	defaultFont = "0"
)

// Position is a dot offset on the label.
type Position struct {
	X, Y int
}

// CharSize is the character cell used by ^A, in dots.
type CharSize struct {
	Height, Width int
}

// Document accumulates ZPL commands for one or more labels. Drawing calls
// append encoded lines to the buffer; Bytes wraps them in ^XA/^XZ.
//
// A Document is not safe for concurrent use.
type Document struct {
	pos            Position
	charSize       CharSize
	font           string
	convertToASCII bool
	transcode      bool
	encoding       FontEncoding
	lines          [][]byte
}

// DocumentOption is a function that configures a document.
type DocumentOption func(*Document)

// WithASCIIConversion sets whether Text payloads are transliterated to ASCII
// unless a call says otherwise.
func WithASCIIConversion(convert bool) DocumentOption {
	return func(d *Document) {
		d.convertToASCII = convert
	}
}

// WithTranscoding enables encoding Text payloads into the code page selected
// by the last ChangeFontEncoding call.
func WithTranscoding() DocumentOption {
	return func(d *Document) {
		d.transcode = true
	}
}

// NewDocument creates an empty document with the cursor at 0,0, a 50x40 dot
// character size and font 0.
func NewDocument(opts ...DocumentOption) *Document {
	d := &Document{
		charSize: CharSize{Height: 50, Width: 40},
		font:     defaultFont,
		encoding: EncodingUTF8,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Position returns the default field origin.
func (d *Document) Position() Position {
	return d.pos
}

// SetPosition moves the default field origin.
func (d *Document) SetPosition(x, y int) {
	d.pos = Position{X: x, Y: y}
}

// CharSize returns the default character size.
func (d *Document) CharSize() CharSize {
	return d.charSize
}

// SetCharSize sets the default character size.
func (d *Document) SetCharSize(height, width int) {
	d.charSize = CharSize{Height: height, Width: width}
}

// Font returns the default font identifier.
func (d *Document) Font() string {
	return d.font
}

// SetFont sets the default font identifier. Built-in and downloaded fonts are
// both named by a single character.
func (d *Document) SetFont(font string) error {
	if err := validateFont(font); err != nil {
		return err
	}
	d.font = font
	return nil
}

// ConvertToASCII reports whether Text payloads are transliterated by default.
func (d *Document) ConvertToASCII() bool {
	return d.convertToASCII
}

// SetConvertToASCII sets whether Text payloads are transliterated by default.
func (d *Document) SetConvertToASCII(convert bool) {
	d.convertToASCII = convert
}

// SetTranscode sets whether Text payloads are encoded into the active ^CI
// code page instead of UTF-8.
func (d *Document) SetTranscode(transcode bool) {
	d.transcode = transcode
}

// Len returns the number of pending lines.
func (d *Document) Len() int {
	return len(d.lines)
}

// Reset discards all pending lines. Drawing defaults are kept.
func (d *Document) Reset() {
	d.lines = nil
}

// Bytes returns the pending commands wrapped in a ^XA/^XZ pair. The buffer is
// left untouched.
func (d *Document) Bytes() []byte {
	body := bytes.Join(d.lines, []byte("\n"))

	out := make([]byte, 0, len(documentStart)+len(body)+len(documentEnd))
	out = append(out, documentStart...)
	out = append(out, body...)
	out = append(out, documentEnd...)
	return out
}

// TakeMessage returns Bytes and clears the buffer.
func (d *Document) TakeMessage() []byte {
	msg := d.Bytes()
	d.Reset()
	return msg
}

// String returns the document as text.
func (d *Document) String() string {
	return string(d.Bytes())
}

func (d *Document) line(format string, args ...any) {
	d.lines = append(d.lines, []byte(fmt.Sprintf(format, args...)))
}

func (d *Document) rawLine(prefix string, payload []byte) {
	l := make([]byte, 0, len(prefix)+len(payload))
	l = append(l, prefix...)
	l = append(l, payload...)
	d.lines = append(d.lines, l)
}

// NextLabel ends the current label and starts another one in the same
// transmission.
func (d *Document) NextLabel() {
	d.lines = append(d.lines, []byte(labelBreak))
}

// SetPrintWidth sets the media width in dots.
func (d *Document) SetPrintWidth(width int) {
	d.line("^PW%d", width)
}

// SetLabelLength sets the label length in dots.
func (d *Document) SetLabelLength(length int) {
	d.line("^LL%d", length)
}

// SetInverted prints the label upside down when inverted is true.
func (d *Document) SetInverted(inverted bool) {
	if inverted {
		d.line("^POI")
		return
	}
	d.line("^PON")
}

// SetMirrored mirrors the label image when mirrored is true.
func (d *Document) SetMirrored(mirrored bool) {
	if mirrored {
		d.line("^PMY")
		return
	}
	d.line("^PMN")
}

// SetLabelHome moves the label home position.
func (d *Document) SetLabelHome(x, y int) {
	d.line("^LH%d,%d", x, y)
}

// ChangeFontEncoding selects the character set used to interpret field data.
func (d *Document) ChangeFontEncoding(enc FontEncoding) error {
	if !enc.Valid() {
		return fmt.Errorf("%w: encoding %d is not a ^CI character set", ErrValidation, enc)
	}
	d.encoding = enc
	d.line("^CI%d", enc)
	return nil
}

// LoadFont assigns the single character identifier to a font file stored on
// the printer, e.g. "TT0003M_.FNT". When the identifier matches a built-in
// font the downloaded one replaces it until the printer is powered off.
func (d *Document) LoadFont(identifier, filename string) error {
	if err := validateFont(identifier); err != nil {
		return err
	}
	d.line("^CWT,%s:%s", identifier, filename)
	return nil
}

// LoadSwiss721Font assigns identifier to the Swiss 721 font shipped with
// most printers.
func (d *Document) LoadSwiss721Font(identifier string) error {
	return d.LoadFont(identifier, "TT0003M_.FNT")
}

func validateFont(font string) error {
	if utf8.RuneCountInString(font) != 1 {
		return fmt.Errorf("%w: font %q must be a single character", ErrValidation, font)
	}
	return nil
}
