package zpl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestToASCII(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "plain ascii", want: "plain ascii"},
		{in: "Crème brûlée", want: "Creme brulee"},
		{in: "Ångström", want: "Angstrom"},
		{in: "Łódź", want: "Lodz"},
		{in: "Straße", want: "Strasse"},
		{in: "Æsir Øl Œuvre", want: "AEsir Ol OEuvre"},
		{in: "ﬁle", want: "file"},
		{in: "“quoted” – dash", want: "\"quoted\" - dash"},
		{in: "5 €", want: "5 EUR"},
		{in: "日本", want: "??"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ToASCII(tt.in))
		})
	}
}

func TestFieldData(t *testing.T) {
	tests := []struct {
		name  string
		data  FieldData
		ascii bool
		enc   *charmap.Charmap
		want  []byte
	}{
		{name: "text", data: Text("café"), want: []byte("café")},
		{name: "text to ascii", data: Text("café"), ascii: true, want: []byte("cafe")},
		{name: "text to code page 850", data: Text("café"), enc: charmap.CodePage850, want: []byte{'c', 'a', 'f', 0x82}},
		{name: "raw bytes", data: RawBytes{0x00, 0xFF}, ascii: true, want: []byte{0x00, 0xFF}},
		{name: "raw bytes ignore encoding", data: RawBytes("é"), enc: charmap.Windows1252, want: []byte("é")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				got []byte
				err error
			)
			if tt.enc != nil {
				got, err = tt.data.fieldBytes(tt.ascii, tt.enc)
			} else {
				got, err = tt.data.fieldBytes(tt.ascii, nil)
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFontEncoding_Encoding(t *testing.T) {
	assert.Equal(t, charmap.Windows1252, EncodingCodePage1252.Encoding())
	assert.Equal(t, charmap.CodePage850, EncodingCodePage850.Encoding())
	assert.Nil(t, EncodingUTF8.Encoding())
	assert.Nil(t, EncodingUSA1.Encoding())
}
