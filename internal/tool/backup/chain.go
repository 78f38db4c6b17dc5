package backup

import (
	"os"
	"time"
)

// Member is one existing backup of a file.
type Member struct {
	Index   int
	Path    string
	Size    int64
	ModTime time.Time
}

// Chain lists the existing backups of path, newest first. Missing slots are
// left out, so the indexes need not be contiguous if files were removed by hand.
func (r *Rotator) Chain(path string) ([]Member, error) {
	if path == "" {
		return nil, ErrPathRequired
	}

	var members []Member
	for i := 1; i <= Retention; i++ {
		p := BackupPath(path, i)
		info, err := r.fileOps.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, &StatError{Path: p, Cause: err}
		}
		members = append(members, Member{Index: i, Path: p, Size: info.Size(), ModTime: info.ModTime()})
	}
	return members, nil
}
