package file

import "os"

// fileReader defines the minimal filesystem operations needed for loading text.
type fileReader interface {
	Stat(path string) (os.FileInfo, error)
	ReadHead(path string, n int) ([]byte, error)
	ReadFile(path string) ([]byte, error)
}
