package zpl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FieldData is the payload of a ^FD field. It is either Text or RawBytes.
type FieldData interface {
	fieldBytes(ascii bool, enc encoding.Encoding) ([]byte, error)
}

// Text is a field payload that may be transliterated to ASCII or transcoded
// into the active printer code page before it is written.
type Text string

// RawBytes is a field payload written to the document verbatim.
type RawBytes []byte

func (t Text) fieldBytes(ascii bool, enc encoding.Encoding) ([]byte, error) {
	s := string(t)
	if ascii {
		s = ToASCII(s)
	}
	if enc == nil {
		return []byte(s), nil
	}
	return encoding.ReplaceUnsupported(enc.NewEncoder()).Bytes([]byte(s))
}

func (b RawBytes) fieldBytes(bool, encoding.Encoding) ([]byte, error) {
	return []byte(b), nil
}

// Letters that do not decompose into a base letter plus combining marks.
var asciiFolds = map[rune]string{
	'ß': "ss", 'ẞ': "SS",
	'æ': "ae", 'Æ': "AE",
	'œ': "oe", 'Œ': "OE",
	'ø': "o", 'Ø': "O",
	'đ': "d", 'Đ': "D",
	'ð': "d", 'Ð': "D",
	'þ': "th", 'Þ': "TH",
	'ł': "l", 'Ł': "L",
	'ı': "i",
	'‘': "'", '’': "'", '‚': ",",
	'“': "\"", '”': "\"", '„': "\"",
	'–': "-", '—': "-",
	'…': "...",
	'€': "EUR",
	'°': "deg",
}

// ToASCII returns the closest plain ASCII representation of s. Accents are
// stripped, common ligatures are spelled out and anything left outside ASCII
// becomes '?'.
func ToASCII(s string) string {
	if isASCII(s) {
		return s
	}

	var b strings.Builder
	for _, r := range s {
		if fold, ok := asciiFolds[r]; ok {
			b.WriteString(fold)
			continue
		}
		b.WriteRune(r)
	}

	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, b.String())
	if err != nil {
		stripped = b.String()
	}

	b.Reset()
	for _, r := range stripped {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
