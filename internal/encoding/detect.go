// Package encoding normalizes uploaded roll files to UTF-8. Registry and
// agency exports arrive in whatever encoding the source system produces, so
// nothing downstream should have to care.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffSize = 4096

// NewUTF8Reader wraps r in a reader that yields UTF-8 regardless of the
// input's encoding. A UTF-8 BOM is stripped, UTF-16 is decoded via its BOM,
// valid UTF-8 passes through untouched, and anything else goes through
// chardet with a Windows-1252 fallback for the usual spreadsheet exports.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("sniffing input: %w", err)
	}

	switch {
	case bytes.HasPrefix(head, []byte{0xEF, 0xBB, 0xBF}):
		_, _ = br.Discard(3)
		return br, nil
	case bytes.HasPrefix(head, []byte{0xFF, 0xFE}):
		return decode(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)), nil
	case bytes.HasPrefix(head, []byte{0xFE, 0xFF}):
		return decode(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM)), nil
	}

	if utf8.Valid(head) {
		return br, nil
	}

	if result, err := chardet.NewTextDetector().DetectBest(head); err == nil {
		if enc := encodingFor(result.Charset); enc != nil {
			return decode(br, enc), nil
		}
	}

	return decode(br, charmap.Windows1252), nil
}

func decode(r io.Reader, enc encoding.Encoding) io.Reader {
	return transform.NewReader(r, enc.NewDecoder())
}

// encodingFor maps the chardet charsets we trust to their decoders. A nil
// return means "fall back", covering UTF-8 claims on input that already
// failed utf8.Valid.
func encodingFor(charset string) encoding.Encoding {
	switch charset {
	case "ISO-8859-1", "windows-1252":
		return charmap.Windows1252
	case "ISO-8859-15":
		return charmap.ISO8859_15
	default:
		return nil
	}
}
