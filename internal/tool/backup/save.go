package backup

import (
	"os"
)

const defaultPerm os.FileMode = 0o644

// SaveResult describes a completed save.
type SaveResult struct {
	Path    string
	Rotated bool
	Bytes   int
}

// Save writes text to path as UTF-8. When path exists and was last modified
// on an earlier day the backup chain is rotated first; a failed rotation
// aborts the save before anything is written. The write itself is atomic and
// keeps the permissions of the file it replaces.
func (r *Rotator) Save(path, text string) (*SaveResult, error) {
	if path == "" {
		return nil, ErrPathRequired
	}

	res := &SaveResult{Path: path}
	perm := defaultPerm

	info, err := r.fileOps.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return nil, &IsDirectoryError{Path: path}
	case err == nil:
		perm = info.Mode().Perm()
		if !sameDay(info.ModTime(), r.now()) {
			if err := r.Rotate(path); err != nil {
				return nil, err
			}
			res.Rotated = true
		}
	case os.IsNotExist(err):
	default:
		return nil, &StatError{Path: path, Cause: err}
	}

	data := []byte(text)
	if err := r.fileOps.WriteFileAtomic(path, data, perm); err != nil {
		return nil, &WriteError{Path: path, Cause: err}
	}
	res.Bytes = len(data)

	r.logger.Info("saved", "path", path, "bytes", res.Bytes, "rotated", res.Rotated)
	return res, nil
}
