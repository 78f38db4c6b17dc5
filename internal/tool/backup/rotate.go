// Package backup keeps a bounded chain of dated backups next to a file and
// rotates it when the file is saved on a new calendar day.
package backup

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Retention is the number of numbered backups kept beside a file.
const Retention = 4

// fileOps defines the minimal filesystem operations needed for rotating and saving.
type fileOps interface {
	Stat(path string) (os.FileInfo, error)
	Exists(path string) (bool, error)
	Rename(oldpath, newpath string) error
	Remove(path string) error
	WriteFileAtomic(path string, content []byte, perm os.FileMode) error
}

// Rotator rotates and saves backup chains.
type Rotator struct {
	fileOps fileOps
	now     func() time.Time
	logger  *slog.Logger
}

// NewRotator creates a Rotator using the wall clock.
func NewRotator(fileOps fileOps, logger *slog.Logger) *Rotator {
	return &Rotator{
		fileOps: fileOps,
		now:     time.Now,
		logger:  logger,
	}
}

// BackupPath returns the name of backup i of path: path.1 is the newest.
func BackupPath(path string, i int) string {
	return path + "." + strconv.Itoa(i)
}

// NeedsBackup reports whether the modification date of path differs from
// today's date. Both are taken in the clock's time zone, so a change of zone
// or a skewed clock can add or skip a rotation.
func (r *Rotator) NeedsBackup(path string) (bool, error) {
	if path == "" {
		return false, ErrPathRequired
	}
	info, err := r.fileOps.Stat(path)
	if err != nil {
		return false, &StatError{Path: path, Cause: err}
	}
	return !sameDay(info.ModTime(), r.now()), nil
}

func sameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Rotate shifts the backup chain of path up by one and moves path itself to
// path.1. The backup at the retention limit is deleted first. Empty slots are
// skipped. On success path no longer exists.
func (r *Rotator) Rotate(path string) error {
	if path == "" {
		return ErrPathRequired
	}
	ok, err := r.fileOps.Exists(path)
	if err != nil {
		return &StatError{Path: path, Cause: err}
	}
	if !ok {
		return &StatError{Path: path, Cause: ErrNoPrimary}
	}

	r.logger.Info("rotating backups", "path", path)

	// .5 is only ever present when left behind by an older tool version
	for _, evict := range []string{BackupPath(path, Retention), BackupPath(path, Retention+1)} {
		if err := r.removeIfExists(evict); err != nil {
			return err
		}
	}

	for i := Retention - 1; i >= 1; i-- {
		if err := r.renameIfExists(BackupPath(path, i), BackupPath(path, i+1)); err != nil {
			return err
		}
	}

	first := BackupPath(path, 1)
	if err := r.fileOps.Rename(path, first); err != nil {
		return &RotationError{Op: "rename", From: path, To: first, Cause: err}
	}
	return nil
}

func (r *Rotator) removeIfExists(path string) error {
	ok, err := r.fileOps.Exists(path)
	if err != nil {
		return &RotationError{Op: "remove", From: path, Cause: err}
	}
	if !ok {
		return nil
	}
	r.logger.Debug("evicting oldest backup", "path", path)
	if err := r.fileOps.Remove(path); err != nil {
		return &RotationError{Op: "remove", From: path, Cause: err}
	}
	return nil
}

func (r *Rotator) renameIfExists(from, to string) error {
	ok, err := r.fileOps.Exists(from)
	if err != nil {
		return &RotationError{Op: "rename", From: from, To: to, Cause: err}
	}
	if !ok {
		return nil
	}
	r.logger.Debug("shifting backup", "from", from, "to", to)
	if err := r.fileOps.Rename(from, to); err != nil {
		return &RotationError{Op: "rename", From: from, To: to, Cause: err}
	}
	return nil
}
