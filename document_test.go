package zpl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDocument(t *testing.T) {
	tests := []struct {
		name      string
		opts      []DocumentOption
		wantASCII bool
		wantTrans bool
	}{
		{
			name: "default configuration",
		},
		{
			name:      "with ascii conversion",
			opts:      []DocumentOption{WithASCIIConversion(true)},
			wantASCII: true,
		},
		{
			name:      "with transcoding",
			opts:      []DocumentOption{WithTranscoding()},
			wantTrans: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDocument(tt.opts...)

			assert.Equal(t, Position{}, d.Position())
			assert.Equal(t, CharSize{Height: 50, Width: 40}, d.CharSize())
			assert.Equal(t, "0", d.Font())
			assert.Equal(t, tt.wantASCII, d.ConvertToASCII())
			assert.Equal(t, tt.wantTrans, d.transcode)
			assert.Zero(t, d.Len())
		})
	}
}

func TestDocument_BytesEmpty(t *testing.T) {
	d := NewDocument()
	assert.Equal(t, "^XA\n\n\n\n^XZ", string(d.Bytes()))
}

func TestDocument_TakeMessage(t *testing.T) {
	d := NewDocument()

	assert.Equal(t, "^XA\n\n\n\n^XZ", string(d.TakeMessage()))
	assert.Equal(t, "^XA\n\n\n\n^XZ", string(d.TakeMessage()))

	require.NoError(t, d.WriteText(Text("Hello")))
	assert.Equal(t, "^XA\n\n^FO0,0\n^A0N,50,40\n^FDHello\n^FS\n\n^XZ", string(d.TakeMessage()))
	assert.Equal(t, "^XA\n\n\n\n^XZ", string(d.TakeMessage()))
}

func TestDocument_BytesDoesNotClear(t *testing.T) {
	d := NewDocument()
	d.SetPrintWidth(815)

	first := d.Bytes()
	second := d.Bytes()

	assert.Equal(t, first, second)
	assert.Equal(t, 1, d.Len())
}

func TestDocument_Reset(t *testing.T) {
	d := NewDocument()
	d.SetPosition(10, 20)
	d.SetLabelLength(316)

	d.Reset()

	assert.Zero(t, d.Len())
	assert.Equal(t, Position{X: 10, Y: 20}, d.Position())
}

func TestDocument_LayoutSetters(t *testing.T) {
	tests := []struct {
		name string
		call func(d *Document)
		want string
	}{
		{name: "print width", call: func(d *Document) { d.SetPrintWidth(815) }, want: "^PW815"},
		{name: "label length", call: func(d *Document) { d.SetLabelLength(316) }, want: "^LL316"},
		{name: "inverted", call: func(d *Document) { d.SetInverted(true) }, want: "^POI"},
		{name: "not inverted", call: func(d *Document) { d.SetInverted(false) }, want: "^PON"},
		{name: "mirrored", call: func(d *Document) { d.SetMirrored(true) }, want: "^PMY"},
		{name: "not mirrored", call: func(d *Document) { d.SetMirrored(false) }, want: "^PMN"},
		{name: "label home", call: func(d *Document) { d.SetLabelHome(12, 34) }, want: "^LH12,34"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDocument()
			tt.call(d)

			require.Equal(t, 1, d.Len())
			assert.Equal(t, tt.want, string(d.lines[0]))
		})
	}
}

func TestDocument_NextLabel(t *testing.T) {
	d := NewDocument()
	require.NoError(t, d.WriteText(Text("first")))
	d.NextLabel()
	require.NoError(t, d.WriteText(Text("second")))

	out := string(d.Bytes())

	assert.Equal(t, 1, strings.Count(out, "\n\n^XZ\n^XA\n\n"))
	assert.True(t, strings.HasPrefix(out, "^XA\n\n"))
	assert.True(t, strings.HasSuffix(out, "\n\n^XZ"))
	assert.Equal(t, 2, strings.Count(out, "^XA"))
	assert.Equal(t, 2, strings.Count(out, "^XZ"))
	assert.Less(t, strings.Index(out, "first"), strings.Index(out, "\n\n^XZ\n^XA\n\n"))
	assert.Greater(t, strings.Index(out, "second"), strings.Index(out, "\n\n^XZ\n^XA\n\n"))
}

func TestDocument_SetFont(t *testing.T) {
	tests := []struct {
		name    string
		font    string
		wantErr bool
	}{
		{name: "digit", font: "0"},
		{name: "letter", font: "A"},
		{name: "downloaded font identifier", font: "Z"},
		{name: "empty", font: "", wantErr: true},
		{name: "two characters", font: "AB", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDocument()
			err := d.SetFont(tt.font)

			if tt.wantErr {
				require.ErrorIs(t, err, ErrValidation)
				assert.Equal(t, "0", d.Font())
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.font, d.Font())
			}
		})
	}
}

func TestDocument_ChangeFontEncoding(t *testing.T) {
	tests := []struct {
		name    string
		enc     FontEncoding
		want    string
		wantErr bool
	}{
		{name: "usa", enc: EncodingUSA1, want: "^CI0"},
		{name: "ucs2", enc: EncodingUCS2BigEndian, want: "^CI17"},
		{name: "single byte asian", enc: EncodingSingleByteAsian, want: "^CI24"},
		{name: "utf8", enc: EncodingUTF8, want: "^CI28"},
		{name: "code page 1255", enc: EncodingCodePage1255, want: "^CI36"},
		{name: "gap after 17", enc: 18, wantErr: true},
		{name: "gap at 25", enc: 25, wantErr: true},
		{name: "gap at 32", enc: 32, wantErr: true},
		{name: "negative", enc: -1, wantErr: true},
		{name: "too large", enc: 37, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDocument()
			err := d.ChangeFontEncoding(tt.enc)

			if tt.wantErr {
				require.ErrorIs(t, err, ErrValidation)
				assert.Zero(t, d.Len())
			} else {
				require.NoError(t, err)
				require.Equal(t, 1, d.Len())
				assert.Equal(t, tt.want, string(d.lines[0]))
			}
		})
	}
}

func TestDocument_LoadFont(t *testing.T) {
	d := NewDocument()

	require.NoError(t, d.LoadFont("T", "FONT.FNT"))
	require.NoError(t, d.LoadSwiss721Font("S"))
	require.ErrorIs(t, d.LoadFont("TT", "FONT.FNT"), ErrValidation)

	require.Equal(t, 2, d.Len())
	assert.Equal(t, "^CWT,T:FONT.FNT", string(d.lines[0]))
	assert.Equal(t, "^CWT,S:TT0003M_.FNT", string(d.lines[1]))
}
