// Package charset guesses the text encoding of files that do not declare one
// and decodes them strictly.
package charset

// Encoding is the outcome of sniffing the leading bytes of a file.
type Encoding string

const (
	UTF8    Encoding = "UTF-8"
	UTF8SIG Encoding = "UTF-8-SIG"
	// UTF16 carries a byte-order mark; the decoder picks the endianness from it.
	UTF16   Encoding = "UTF-16"
	UTF16BE Encoding = "UTF-16BE"
	UTF16LE Encoding = "UTF-16LE"
	UCS4    Encoding = "ISO-10646-UCS-4"
	CP037   Encoding = "CP037"
	// Unknown means sniffing could not be attempted.
	Unknown Encoding = "UNKNOWN"
)

func (e Encoding) String() string {
	return string(e)
}
