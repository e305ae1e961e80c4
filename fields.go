package zpl

import (
	"fmt"

	"golang.org/x/text/encoding"
)

// Orientation is the rotation of a text field.
type Orientation string

// Field rotations, clockwise.
const (
	Orientation0   Orientation = "N"
	Orientation90  Orientation = "R"
	Orientation180 Orientation = "I"
	Orientation270 Orientation = "B"
)

// Justification aligns the lines of a text block.
type Justification string

// Text block justifications.
const (
	JustifyLeft      Justification = "L"
	JustifyCentre    Justification = "C"
	JustifyRight     Justification = "R"
	JustifyJustified Justification = "J"
)

// LineColor is the colour of a graphic box.
type LineColor string

// Box colours.
const (
	Black LineColor = "B"
	White LineColor = "W"
)

// fieldConfig holds the per call overrides. Nil pointers fall back to the
// document defaults.
type fieldConfig struct {
	pos         *Position
	charSize    *CharSize
	font        *string
	orientation Orientation
	ascii       *bool
	scaleX      int
	scaleY      int
}

// FieldOption overrides a document default for a single field.
type FieldOption func(*fieldConfig)

// At places the field at x,y instead of the document position.
func At(x, y int) FieldOption {
	return func(c *fieldConfig) {
		c.pos = &Position{X: x, Y: y}
	}
}

// WithCharSize overrides the character size.
func WithCharSize(height, width int) FieldOption {
	return func(c *fieldConfig) {
		c.charSize = &CharSize{Height: height, Width: width}
	}
}

// WithFont overrides the font identifier.
func WithFont(font string) FieldOption {
	return func(c *fieldConfig) {
		c.font = &font
	}
}

// WithOrientation rotates the field.
func WithOrientation(o Orientation) FieldOption {
	return func(c *fieldConfig) {
		c.orientation = o
	}
}

// WithASCII overrides the document's ASCII conversion setting.
func WithASCII(convert bool) FieldOption {
	return func(c *fieldConfig) {
		c.ascii = &convert
	}
}

// WithScale sets the magnification of a rendered bitmap.
func WithScale(x, y int) FieldOption {
	return func(c *fieldConfig) {
		c.scaleX = x
		c.scaleY = y
	}
}

func (d *Document) resolve(opts []FieldOption) (fieldConfig, error) {
	c := fieldConfig{orientation: Orientation0, scaleX: 1, scaleY: 1}
	for _, opt := range opts {
		opt(&c)
	}

	if c.pos == nil {
		c.pos = &d.pos
	}
	if c.charSize == nil {
		c.charSize = &d.charSize
	}
	if c.font == nil {
		c.font = &d.font
	} else if err := validateFont(*c.font); err != nil {
		return c, err
	}
	if c.ascii == nil {
		c.ascii = &d.convertToASCII
	}

	switch c.orientation {
	case "":
		c.orientation = Orientation0
	case Orientation0, Orientation90, Orientation180, Orientation270:
	default:
		return c, fmt.Errorf("%w: orientation %q, valid values are N, R, I, B", ErrValidation, c.orientation)
	}

	return c, nil
}

func (d *Document) payload(data FieldData, c fieldConfig) ([]byte, error) {
	if data == nil {
		return nil, nil
	}

	var enc encoding.Encoding
	if d.transcode {
		enc = d.encoding.Encoding()
	}

	b, err := data.fieldBytes(*c.ascii, enc)
	if err != nil {
		return nil, fmt.Errorf("encoding field data: %w", err)
	}
	return b, nil
}

// FieldOrigin writes ^FO for the document position or the At override.
func (d *Document) FieldOrigin(opts ...FieldOption) {
	c := fieldConfig{}
	for _, opt := range opts {
		opt(&c)
	}
	pos := d.pos
	if c.pos != nil {
		pos = *c.pos
	}
	d.origin(pos)
}

func (d *Document) origin(pos Position) {
	d.line("^FO%d,%d", pos.X, pos.Y)
}

// FieldSeparator writes ^FS, closing the current field.
func (d *Document) FieldSeparator() {
	d.line("^FS")
}

func (d *Document) fontLine(c fieldConfig) {
	d.line("^A%s%s,%d,%d", *c.font, c.orientation, c.charSize.Height, c.charSize.Width)
}

// WriteText writes a single line text field. Nothing is written when an
// option is invalid.
func (d *Document) WriteText(data FieldData, opts ...FieldOption) error {
	c, err := d.resolve(opts)
	if err != nil {
		return err
	}
	payload, err := d.payload(data, c)
	if err != nil {
		return err
	}

	d.origin(*c.pos)
	d.fontLine(c)
	d.rawLine("^FD", payload)
	d.FieldSeparator()
	return nil
}

// TextBlock describes the ^FB box a text field wraps in.
type TextBlock struct {
	Width         int
	MaxLines      int // 1 when zero
	LineSpacing   int
	Justification Justification // JustifyLeft when empty
	HangingIndent int
}

// WriteTextBlock writes a text field that wraps within block.
func (d *Document) WriteTextBlock(data FieldData, block TextBlock, opts ...FieldOption) error {
	c, err := d.resolve(opts)
	if err != nil {
		return err
	}

	switch block.Justification {
	case "":
		block.Justification = JustifyLeft
	case JustifyLeft, JustifyCentre, JustifyRight, JustifyJustified:
	default:
		return fmt.Errorf("%w: justification %q, valid values are L, C, R, J", ErrValidation, block.Justification)
	}
	if block.MaxLines == 0 {
		block.MaxLines = 1
	}

	payload, err := d.payload(data, c)
	if err != nil {
		return err
	}

	d.origin(*c.pos)
	d.fontLine(c)
	d.line("^FB%d,%d,%d,%s,%d", block.Width, block.MaxLines, block.LineSpacing, block.Justification, block.HangingIndent)
	d.rawLine("^FD", payload)
	d.FieldSeparator()
	return nil
}

// Box describes a ^GB graphic box.
type Box struct {
	Width     int
	Height    int
	Thickness int       // 1 when zero
	Color     LineColor // Black when empty
	Rounding  int
}

// DrawBox draws a rectangle. A zero width or height draws a line.
func (d *Document) DrawBox(box Box, opts ...FieldOption) error {
	if box.Thickness == 0 {
		box.Thickness = 1
	}
	switch box.Color {
	case "":
		box.Color = Black
	case Black, White:
	default:
		return fmt.Errorf("%w: colour %q, valid values are B, W", ErrValidation, box.Color)
	}

	c, err := d.resolve(opts)
	if err != nil {
		return err
	}

	d.origin(*c.pos)
	d.line("^GB%d,%d,%d,%s,%d", box.Width, box.Height, box.Thickness, box.Color, box.Rounding)
	d.FieldSeparator()
	return nil
}

// DrawHorizontalLine draws a line of the given length to the right of the
// origin. An empty color draws black.
func (d *Document) DrawHorizontalLine(length, thickness int, color LineColor, opts ...FieldOption) error {
	return d.DrawBox(Box{Width: length, Thickness: thickness, Color: color}, opts...)
}

// DrawVerticalLine draws a line of the given length below the origin. An
// empty color draws black.
func (d *Document) DrawVerticalLine(length, thickness int, color LineColor, opts ...FieldOption) error {
	return d.DrawBox(Box{Height: length, Thickness: thickness, Color: color}, opts...)
}

// UploadBitmap stores b on the printer. Upload once, then render it as many
// times as needed.
func (d *Document) UploadBitmap(b *Bitmap) error {
	if b == nil {
		return fmt.Errorf("%w: nil bitmap", ErrValidation)
	}
	d.lines = append(d.lines, []byte(b.UploadCommand()))
	return nil
}

// RenderBitmap draws a previously uploaded bitmap.
func (d *Document) RenderBitmap(b *Bitmap, opts ...FieldOption) error {
	if b == nil {
		return fmt.Errorf("%w: nil bitmap", ErrValidation)
	}
	c, err := d.resolve(opts)
	if err != nil {
		return err
	}

	d.origin(*c.pos)
	d.lines = append(d.lines, []byte(b.RenderCommand(c.scaleX, c.scaleY)))
	d.FieldSeparator()
	return nil
}
