package charset

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// Decode converts data to a string under enc. Decoding is strict: any byte
// sequence that does not survive a decode/encode round trip is an error, so
// garbled text is never returned.
func Decode(data []byte, enc Encoding) (string, error) {
	switch enc {
	case UTF8:
		return decodeUTF8(data, UTF8)
	case UTF8SIG:
		return decodeUTF8(bytes.TrimPrefix(data, bomUTF8), UTF8SIG)
	case UTF16:
		switch {
		case bytes.HasPrefix(data, bomUTF16BE):
			return DecodeWith(unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), data[2:], UTF16.String())
		case bytes.HasPrefix(data, bomUTF16LE):
			return DecodeWith(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), data[2:], UTF16.String())
		}
		// No mark: big endian, as the Unicode standard says
		return DecodeWith(unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), data, UTF16.String())
	case UTF16BE:
		return DecodeWith(unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), data, UTF16BE.String())
	case UTF16LE:
		return DecodeWith(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), data, UTF16LE.String())
	case UCS4:
		return decodeUCS4(data)
	case CP037:
		return DecodeWith(charmap.CodePage037, data, CP037.String())
	case Unknown:
		return "", ErrUnknownEncoding
	}
	return "", &UnsupportedError{Name: enc.String()}
}

// DecodeWith strictly decodes data with an arbitrary x/text encoding. name is
// only used in error messages.
func DecodeWith(enc encoding.Encoding, data []byte, name string) (string, error) {
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", &InvalidDataError{Name: name, Cause: err}
	}
	back, err := enc.NewEncoder().Bytes(out)
	if err != nil {
		return "", &InvalidDataError{Name: name, Cause: err}
	}
	if !bytes.Equal(back, data) {
		return "", &InvalidDataError{Name: name}
	}
	return string(out), nil
}

func decodeUTF8(data []byte, name Encoding) (string, error) {
	if !utf8.Valid(data) {
		return "", &InvalidDataError{Name: name.String()}
	}
	return string(data), nil
}

// decodeUCS4 handles the big and little endian octet orders. The 2143 and
// 3412 orders are recognised by the sniffer but have no decoder.
func decodeUCS4(data []byte) (string, error) {
	if len(data) < HeadSize {
		return DecodeWith(utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM), data, UCS4.String())
	}
	switch {
	case bytes.Equal(data[:HeadSize], ucs4Patterns[0]):
		return DecodeWith(utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM), data, UCS4.String())
	case bytes.Equal(data[:HeadSize], ucs4Patterns[1]):
		return DecodeWith(utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM), data, UCS4.String())
	}
	return "", &UnsupportedError{Name: UCS4.String() + " (unusual octet order)"}
}
