// Package pathutil formats file paths for narrow list columns.
package pathutil

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// PrettyPrint shortens path to roughly maxLen characters. The root and the
// file name are always kept. Leading folder names are kept in full while they
// fit; the remaining folders are cut to their first letter.
//
//	/data/projects/2024/mouse/readme.txt -> /data/projects/2/m/readme.txt
func PrettyPrint(path string, maxLen int) string {
	return prettyPrint(path, maxLen, string(filepath.Separator))
}

func prettyPrint(path string, maxLen int, sep string) string {
	root, parts := splitParts(path, sep)
	if len(parts) <= 1 {
		return path
	}

	name := parts[len(parts)-1]
	folders := parts[:len(parts)-1]

	remaining := maxLen - utf8.RuneCountInString(root) - utf8.RuneCountInString(name) - 1
	full := 0
	for full < len(folders) && utf8.RuneCountInString(folders[full]) < remaining {
		remaining -= utf8.RuneCountInString(folders[full]) + 1
		full++
	}

	out := make([]string, 0, len(parts))
	out = append(out, folders[:full]...)
	for _, f := range folders[full:] {
		out = append(out, initial(f))
	}
	out = append(out, name)
	return root + strings.Join(out, sep)
}

// splitParts separates the volume and root separator from the path components.
func splitParts(path, sep string) (string, []string) {
	root := filepath.VolumeName(path)
	rest := path[len(root):]
	if strings.HasPrefix(rest, sep) || strings.HasPrefix(rest, "/") {
		root += rest[:1]
		rest = rest[1:]
	}

	parts := strings.FieldsFunc(rest, func(r rune) bool { return string(r) == sep || r == '/' })
	return root, parts
}

func initial(folder string) string {
	trimmed := strings.TrimLeft(folder, " ")
	if trimmed == "" {
		return folder
	}
	r, _ := utf8.DecodeRuneInString(trimmed)
	return string(r)
}
