package readme

import (
	"os"
	"sort"
)

// dirLister defines the directory listing operation needed for file lists.
type dirLister interface {
	ListDir(path string) ([]os.FileInfo, error)
}

// DirListing returns a ListingFunc yielding the sorted bare names of every
// entry in a directory, sub-directories included.
func DirListing(fs dirLister) ListingFunc {
	return func(dir string) ([]string, error) {
		infos, err := fs.ListDir(dir)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(infos))
		for _, info := range infos {
			names = append(names, info.Name())
		}
		sort.Strings(names)
		return names, nil
	}
}
