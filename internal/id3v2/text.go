package id3v2

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Text encodings of ID3v2 frames.
const (
	encLatin1  byte = 0
	encUTF16   byte = 1 // with BOM
	encUTF16BE byte = 2 // ID3v2.4 only
	encUTF8    byte = 3 // ID3v2.4 only
)

func codecFor(enc byte) encoding.Encoding {
	switch enc {
	case encLatin1:
		return charmap.ISO8859_1
	case encUTF16:
		// A missing BOM falls back to big-endian.
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	case encUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	default:
		return encoding.Nop
	}
}

// decodeText decodes one value. Trailing terminators are dropped.
func decodeText(data []byte, enc byte) string {
	if len(data) == 0 {
		return ""
	}

	var s string
	if enc == encUTF8 {
		s = string(data)
		if !utf8.ValidString(s) {
			s = strings.ToValidUTF8(s, "�")
		}
	} else {
		out, err := codecFor(enc).NewDecoder().Bytes(data)
		if err != nil {
			// Odd-length UTF-16: drop the dangling byte and retry.
			if len(data)%2 == 1 && enc != encLatin1 {
				return decodeText(data[:len(data)-1], enc)
			}
			return ""
		}
		s = string(out)
	}
	return strings.TrimRight(s, "\x00")
}

// encodeText encodes s without a terminator. UTF-16 output carries a BOM.
func encodeText(s string, enc byte) ([]byte, error) {
	if enc == encUTF8 {
		return []byte(s), nil
	}
	if enc == encUTF16 {
		// Little-endian with BOM matches what most taggers write.
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes([]byte(s))
	}
	return codecFor(enc).NewEncoder().Bytes([]byte(s))
}

// chooseEncoding picks the encoding for newly written text: UTF-8 for
// ID3v2.4, Latin-1 for ID3v2.3 when every value fits, otherwise UTF-16.
func chooseEncoding(major byte, values ...string) byte {
	if major >= 4 {
		return encUTF8
	}
	enc := charmap.ISO8859_1.NewEncoder()
	for _, v := range values {
		if _, err := enc.String(v); err != nil {
			return encUTF16
		}
	}
	return encLatin1
}

// terminator returns the NUL sequence for the encoding.
func terminator(enc byte) []byte {
	if enc == encUTF16 || enc == encUTF16BE {
		return []byte{0, 0}
	}
	return []byte{0}
}

// findNullTerminator finds the null terminator based on encoding.
// UTF-16 terminators are only matched on even offsets.
func findNullTerminator(data []byte, enc byte) int {
	if len(terminator(enc)) == 1 {
		return bytes.IndexByte(data, 0)
	}
	for i := 0; i+1 < len(data); i += 2 {
		if data[i] == 0 && data[i+1] == 0 {
			return i
		}
	}
	return -1
}

// splitTerminated splits data on terminators. A trailing terminator does
// not produce an extra empty value.
func splitTerminated(data []byte, enc byte) [][]byte {
	var parts [][]byte
	width := len(terminator(enc))
	for len(data) > 0 {
		i := findNullTerminator(data, enc)
		if i < 0 {
			parts = append(parts, data)
			break
		}
		parts = append(parts, data[:i])
		data = data[i+width:]
	}
	return parts
}

// decodeValues decodes a text payload into its NUL-separated values.
func decodeValues(data []byte, enc byte) []string {
	var values []string
	for _, part := range splitTerminated(data, enc) {
		values = append(values, decodeText(part, enc))
	}
	// Drop empty values trailing the last real one.
	for len(values) > 0 && values[len(values)-1] == "" {
		values = values[:len(values)-1]
	}
	return values
}
