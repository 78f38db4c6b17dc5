package charset

import (
	"bytes"
	"io"
)

// HeadSize is the number of leading bytes the sniffer looks at.
const HeadSize = 4

var (
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}

	// "<" in the four UCS-4 octet orders
	ucs4Patterns = [][]byte{
		{0x00, 0x00, 0x00, 0x3C},
		{0x3C, 0x00, 0x00, 0x00},
		{0x00, 0x00, 0x3C, 0x00},
		{0x00, 0x3C, 0x00, 0x00},
	}
	// "<?" without a byte-order mark
	xmlUTF16BE = []byte{0x00, 0x3C, 0x00, 0x3F}
	xmlUTF16LE = []byte{0x3C, 0x00, 0x3F, 0x00}
	// "<?xm" in EBCDIC
	xmlCP037 = []byte{0x4C, 0x6F, 0xA7, 0x94}
)

// DetectBytes guesses the encoding from at most the first HeadSize bytes of
// head. Rules are checked in priority order and a short head falls back to
// UTF-8 as soon as the next rule would need more bytes than are available.
func DetectBytes(head []byte) Encoding {
	if len(head) > HeadSize {
		head = head[:HeadSize]
	}

	if len(head) < 2 {
		return UTF8
	}
	if bytes.HasPrefix(head, bomUTF16BE) || bytes.HasPrefix(head, bomUTF16LE) {
		return UTF16
	}

	if len(head) < 3 {
		return UTF8
	}
	if bytes.HasPrefix(head, bomUTF8) {
		return UTF8SIG
	}

	if len(head) < 4 {
		return UTF8
	}
	for _, p := range ucs4Patterns {
		if bytes.Equal(head, p) {
			return UCS4
		}
	}
	switch {
	case bytes.Equal(head, xmlUTF16BE):
		return UTF16BE
	case bytes.Equal(head, xmlUTF16LE):
		return UTF16LE
	case bytes.Equal(head, xmlCP037):
		return CP037
	}

	return UTF8
}

// Detect reads at most HeadSize bytes from r and sniffs them. A stream that
// ends early is fine; any other read failure returns Unknown and the error.
func Detect(r io.Reader) (Encoding, error) {
	head := make([]byte, HeadSize)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Unknown, &SniffError{Cause: err}
	}
	return DetectBytes(head[:n]), nil
}
