package fsutil

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// Checksum returns the hex SHA-256 of data.
func Checksum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ChecksumTracker remembers the checksum of the text last loaded from or
// saved to each path, so callers can tell whether an edit buffer differs
// from what is on disk. Safe for concurrent use.
type ChecksumTracker struct {
	mu    sync.RWMutex
	store map[string]string
}

// NewChecksumTracker creates an empty tracker.
func NewChecksumTracker() *ChecksumTracker {
	return &ChecksumTracker{
		store: make(map[string]string),
	}
}

// Record stores the checksum of text as the on-disk state of path.
func (m *ChecksumTracker) Record(path, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[path] = Checksum([]byte(text))
}

// Modified reports whether text differs from the last recorded state of path.
// Untracked paths are always modified.
func (m *ChecksumTracker) Modified(path, text string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum, ok := m.store[path]
	return !ok || sum != Checksum([]byte(text))
}
