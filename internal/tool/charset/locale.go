package charset

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// localeVars are consulted in the order the C library uses for LC_CTYPE.
var localeVars = []string{"LC_ALL", "LC_CTYPE", "LANG"}

// LocaleEncoding returns the host default text encoding and its label.
// lookup is usually os.Getenv. The charset is the part of the first non-empty
// locale variable after the dot, without any @modifier. C, POSIX, unset and
// unresolvable charsets all give UTF-8.
func LocaleEncoding(lookup func(string) string) (encoding.Encoding, string) {
	for _, key := range localeVars {
		value := lookup(key)
		if value == "" {
			continue
		}
		name := localeCharset(value)
		if name == "" {
			break
		}
		enc, err := htmlindex.Get(name)
		if err != nil {
			break
		}
		return enc, name
	}
	return unicode.UTF8, UTF8.String()
}

func localeCharset(locale string) string {
	if i := strings.IndexByte(locale, '@'); i >= 0 {
		locale = locale[:i]
	}
	i := strings.IndexByte(locale, '.')
	if i < 0 {
		return ""
	}
	return locale[i+1:]
}

// Lookup resolves a charset label such as "windows-1252" or "latin1".
func Lookup(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &UnsupportedError{Name: name}
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, &UnsupportedError{Name: name}
	}
	return enc, nil
}
