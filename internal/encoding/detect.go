// Package encoding normalises inbound provider payloads to UTF-8 before they
// are decoded and stored.
package encoding

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// ToUTF8 returns body re-encoded as UTF-8.
//
// Detection order:
//  1. BOM (UTF-8 BOM is stripped, UTF-16 LE/BE is decoded)
//  2. Already valid UTF-8: returned unchanged
//  3. chardet heuristics for the single-byte Latin charsets
//  4. Windows-1252 as a last resort, which never fails
func ToUTF8(body []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(body, bomUTF8):
		return body[len(bomUTF8):], nil
	case bytes.HasPrefix(body, bomUTF16LE):
		return decode(body, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM))
	case bytes.HasPrefix(body, bomUTF16BE):
		return decode(body, unicode.UTF16(unicode.BigEndian, unicode.UseBOM))
	}

	if utf8.Valid(body) {
		return body, nil
	}

	if result, err := chardet.NewTextDetector().DetectBest(body); err == nil {
		switch result.Charset {
		case "ISO-8859-9":
			return decode(body, charmap.ISO8859_9)
		case "ISO-8859-15":
			return decode(body, charmap.ISO8859_15)
		}
	}

	return decode(body, charmap.Windows1252)
}

func decode(body []byte, enc xencoding.Encoding) ([]byte, error) {
	out, _, err := transform.Bytes(enc.NewDecoder(), body)
	if err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}

	return out, nil
}
