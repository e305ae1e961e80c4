package zpl

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// FontEncoding is a ^CI character set number.
type FontEncoding int

// Character sets accepted by ^CI.
const (
	EncodingUSA1                           FontEncoding = 0
	EncodingUSA2                           FontEncoding = 1
	EncodingUK                             FontEncoding = 2
	EncodingHolland                        FontEncoding = 3
	EncodingDenmarkNorway                  FontEncoding = 4
	EncodingSwedenFinland                  FontEncoding = 5
	EncodingGermany                        FontEncoding = 6
	EncodingFrance1                        FontEncoding = 7
	EncodingFrance2                        FontEncoding = 8
	EncodingItaly                          FontEncoding = 9
	EncodingSpain                          FontEncoding = 10
	EncodingMiscSingleByte                 FontEncoding = 11
	EncodingJapanASCII                     FontEncoding = 12
	EncodingCodePage850                    FontEncoding = 13
	EncodingDoubleByteAsian                FontEncoding = 14
	EncodingShiftJIS                       FontEncoding = 15
	EncodingEUCJPEUCCN                     FontEncoding = 16
	EncodingUCS2BigEndian                  FontEncoding = 17 // deprecated by Zebra
	EncodingSingleByteAsian                FontEncoding = 24
	EncodingMultibyteAsianWithTransparency FontEncoding = 26
	EncodingCodePage1252                   FontEncoding = 27
	EncodingUTF8                           FontEncoding = 28
	EncodingUTF16BigEndian                 FontEncoding = 29
	EncodingUTF16LittleEndian              FontEncoding = 30
	EncodingCodePage1250                   FontEncoding = 31
	EncodingCodePage1251                   FontEncoding = 33
	EncodingCodePage1253                   FontEncoding = 34
	EncodingCodePage1254                   FontEncoding = 35
	EncodingCodePage1255                   FontEncoding = 36
)

// Valid reports whether e is a character set the printer understands.
func (e FontEncoding) Valid() bool {
	switch {
	case e >= EncodingUSA1 && e <= EncodingUCS2BigEndian:
		return true
	case e == EncodingSingleByteAsian:
		return true
	case e >= EncodingMultibyteAsianWithTransparency && e <= EncodingCodePage1250:
		return true
	case e >= EncodingCodePage1251 && e <= EncodingCodePage1255:
		return true
	}
	return false
}

// codePages maps the single-byte Windows/DOS character sets to their
// encoders. Sets missing here are sent as UTF-8.
var codePages = map[FontEncoding]encoding.Encoding{
	EncodingCodePage850:  charmap.CodePage850,
	EncodingCodePage1250: charmap.Windows1250,
	EncodingCodePage1251: charmap.Windows1251,
	EncodingCodePage1252: charmap.Windows1252,
	EncodingCodePage1253: charmap.Windows1253,
	EncodingCodePage1254: charmap.Windows1254,
	EncodingCodePage1255: charmap.Windows1255,
}

// Encoding returns the text encoder for e, or nil when field data should be
// written as UTF-8.
func (e FontEncoding) Encoding() encoding.Encoding {
	return codePages[e]
}
