package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

const (
	// StateFile is the workspace state file name inside the config dir
	StateFile = "state.json"
	// MaxRecent is the number of most recently used readme files kept
	MaxRecent = 5
)

// StateFileSystem is the filesystem surface needed to persist State.
type StateFileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFileAtomic(path string, content []byte, perm os.FileMode) error
	EnsureDirs(path string) error
}

// stateFile is the on-disk form of State.
type stateFile struct {
	WorkFolder     string   `json:"work_folder"`
	MRU            []string `json:"mru"`
	ActiveTemplate string   `json:"active_template,omitempty"`
}

// State is the mutable workspace state: the folder the user works in, the
// recently opened readme files and the selected template. It is loaded and
// saved explicitly and handed to whoever needs it. All methods are safe for
// concurrent use; each change is written to disk before the lock is released.
type State struct {
	mu   sync.Mutex
	data stateFile

	path string
	fs   StateFileSystem
}

// LoadState reads the state file at path. A missing file yields an empty
// state that will be written to path on the first change.
func LoadState(fs StateFileSystem, path string) (*State, error) {
	s := &State{path: path, fs: fs}

	raw, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, err
	}
	if len(s.data.MRU) > MaxRecent {
		s.data.MRU = s.data.MRU[:MaxRecent]
	}
	return s, nil
}

// Path returns where the state is persisted.
func (s *State) Path() string {
	return s.path
}

// WorkFolder returns the folder last scanned or chosen.
func (s *State) WorkFolder() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.WorkFolder
}

// ActiveTemplate returns the selected template file name, or "".
func (s *State) ActiveTemplate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.ActiveTemplate
}

// MRU returns a copy of the recently used paths, most recent first.
func (s *State) MRU() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.data.MRU)
}

// Save writes the state to disk.
func (s *State) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save requires s.mu to be held.
func (s *State) save() error {
	raw, err := json.MarshalIndent(s.data, "", "    ")
	if err != nil {
		return err
	}
	if err := s.fs.EnsureDirs(filepath.Dir(s.path)); err != nil {
		return err
	}
	return s.fs.WriteFileAtomic(s.path, raw, 0o644)
}

// SetWorkFolder records the work folder and saves.
func (s *State) SetWorkFolder(folder string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.WorkFolder = folder
	return s.save()
}

// SetActiveTemplate records the template file name and saves.
func (s *State) SetActiveTemplate(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.ActiveTemplate = filepath.Base(name)
	return s.save()
}

// AddToMRU moves path to the front of the recently used list, keeping at
// most MaxRecent entries, and saves.
func (s *State) AddToMRU(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mru := slices.DeleteFunc(slices.Clone(s.data.MRU), func(p string) bool { return p == path })
	mru = slices.Insert(mru, 0, path)
	if len(mru) > MaxRecent {
		mru = mru[:MaxRecent]
	}
	s.data.MRU = mru
	return s.save()
}
