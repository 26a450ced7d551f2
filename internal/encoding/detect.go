// Package encoding normalizes uploaded statement files to UTF-8.
// Bank exports arrive in whatever charset the bank's backoffice produces,
// most commonly UTF-8 (with or without BOM), UTF-16, or Windows-1252.
package encoding

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DecodeText converts raw statement bytes to a UTF-8 string.
//
// Detection order:
//  1. BOM (UTF-8 BOM is stripped; UTF-16 LE/BE is decoded)
//  2. Content that is already valid UTF-8 is returned as-is
//  3. Heuristic detection via chardet
//  4. Fallback to Windows-1252
func DecodeText(data []byte) (string, error) {
	if bytes.HasPrefix(data, bomUTF8) {
		return string(data[len(bomUTF8):]), nil
	}

	if bytes.HasPrefix(data, bomUTF16LE) {
		return decodeWith(data, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder())
	}

	if bytes.HasPrefix(data, bomUTF16BE) {
		return decodeWith(data, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder())
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	detector := chardet.NewTextDetector()

	result, err := detector.DetectBest(data)
	if err == nil {
		switch result.Charset {
		case "UTF-8":
			return string(data), nil
		case "ISO-8859-1", "windows-1252":
			return decodeWith(data, charmap.Windows1252.NewDecoder())
		case "ISO-8859-15":
			return decodeWith(data, charmap.ISO8859_15.NewDecoder())
		}
	}

	return decodeWith(data, charmap.Windows1252.NewDecoder())
}

func decodeWith(data []byte, dec transform.Transformer) (string, error) {
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), dec))
	if err != nil {
		return "", fmt.Errorf("decoding: %w", err)
	}

	return string(out), nil
}
