package scan

import (
	"context"
	"strings"

	"github.com/Cyclone1070/bioview/internal/tool/helper/content"
)

// textLoader defines the text loading needed for searching.
type textLoader interface {
	LoadText(path string) (string, error)
}

// Match is a file containing every search term.
type Match struct {
	Path string
	// Lines holds the 1-based numbers of lines containing any term.
	Lines []int
}

// SearchResult lists the matches and the files that could not be read.
type SearchResult struct {
	Matches []Match
	Skipped []string
}

// Search returns the files whose decoded text contains all terms, compared
// case-insensitively. Files that fail to load are reported in Skipped.
func Search(ctx context.Context, loader textLoader, files, terms []string) (*SearchResult, error) {
	var needles []string
	for _, t := range terms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			needles = append(needles, t)
		}
	}
	if len(needles) == 0 {
		return nil, ErrTermsRequired
	}

	res := &SearchResult{}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := loader.LoadText(path)
		if err != nil {
			res.Skipped = append(res.Skipped, path)
			continue
		}
		lower := strings.ToLower(text)

		all := true
		for _, n := range needles {
			if !strings.Contains(lower, n) {
				all = false
				break
			}
		}
		if !all {
			continue
		}

		m := Match{Path: path}
		for i, line := range content.SplitLines(lower) {
			for _, n := range needles {
				if strings.Contains(line, n) {
					m.Lines = append(m.Lines, i+1)
					break
				}
			}
		}
		res.Matches = append(res.Matches, m)
	}
	return res, nil
}
