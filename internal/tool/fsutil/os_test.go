package fsutil

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockWriteSyncCloser implements writeSyncCloser for testing
type mockWriteSyncCloser struct {
	buffer      *bytes.Buffer
	name        string
	writeErr    error
	syncErr     error
	closeErr    error
	writeCalled bool
	syncCalled  bool
	closeCalled bool
}

func newMockWriteSyncCloser(name string) *mockWriteSyncCloser {
	return &mockWriteSyncCloser{
		buffer: new(bytes.Buffer),
		name:   name,
	}
}

func (m *mockWriteSyncCloser) Write(p []byte) (n int, err error) {
	m.writeCalled = true
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	return m.buffer.Write(p)
}

func (m *mockWriteSyncCloser) Sync() error {
	m.syncCalled = true
	return m.syncErr
}

func (m *mockWriteSyncCloser) Close() error {
	m.closeCalled = true
	return m.closeErr
}

func (m *mockWriteSyncCloser) Name() string {
	return m.name
}

// withMockTemp wires fs to hand out mockFile and records removals of it.
func withMockTemp(fs *OSFileSystem, mockFile *mockWriteSyncCloser) *bool {
	removed := false
	fs.createTemp = func(dir, pattern string) (writeSyncCloser, error) {
		return mockFile, nil
	}
	fs.remove = func(name string) error {
		if name == mockFile.name {
			removed = true
		}
		return nil
	}
	return &removed
}

func TestWriteFileAtomic(t *testing.T) {
	t.Run("crash during createTemp - no side effects", func(t *testing.T) {
		fs := NewOSFileSystem()
		fs.createTemp = func(dir, pattern string) (writeSyncCloser, error) {
			return nil, errors.New("disk full")
		}

		err := fs.WriteFileAtomic("/test/readme.txt", []byte("content"), 0644)

		var tempErr *TempFileError
		require.ErrorAs(t, err, &tempErr)
		assert.Equal(t, "/test", tempErr.Dir)
		assert.True(t, tempErr.IOError())
	})

	failures := []struct {
		name    string
		prepare func(m *mockWriteSyncCloser, fs *OSFileSystem)
		target  any
	}{
		{"crash during Write - temp cleaned up", func(m *mockWriteSyncCloser, _ *OSFileSystem) { m.writeErr = errors.New("write failed") }, new(*TempWriteError)},
		{"crash during Sync - temp cleaned up", func(m *mockWriteSyncCloser, _ *OSFileSystem) { m.syncErr = errors.New("sync failed") }, new(*TempSyncError)},
		{"crash during Close - temp cleaned up", func(m *mockWriteSyncCloser, _ *OSFileSystem) { m.closeErr = errors.New("close failed") }, new(*TempCloseError)},
		{"crash during Rename - temp cleaned up", func(_ *mockWriteSyncCloser, fs *OSFileSystem) {
			fs.rename = func(oldpath, newpath string) error { return errors.New("rename failed") }
		}, new(*RenameError)},
	}

	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			fs := NewOSFileSystem()
			mockFile := newMockWriteSyncCloser("/test/.bioview-1")
			removed := withMockTemp(fs, mockFile)
			tt.prepare(mockFile, fs)

			err := fs.WriteFileAtomic("/test/readme.txt", []byte("content"), 0644)

			require.Error(t, err)
			assert.ErrorAs(t, err, tt.target)
			assert.True(t, *removed, "temp file should have been cleaned up")
			assert.True(t, mockFile.closeCalled, "temp file should have been closed")
		})
	}

	t.Run("crash during Chmod - file already in place", func(t *testing.T) {
		fs := NewOSFileSystem()
		mockFile := newMockWriteSyncCloser("/test/.bioview-2")
		removed := withMockTemp(fs, mockFile)
		renamed := false
		fs.rename = func(oldpath, newpath string) error {
			renamed = true
			return nil
		}
		fs.chmod = func(name string, mode os.FileMode) error {
			return errors.New("chmod failed")
		}

		err := fs.WriteFileAtomic("/test/readme.txt", []byte("content"), 0644)

		var chmodErr *ChmodError
		require.ErrorAs(t, err, &chmodErr)
		assert.True(t, renamed)
		assert.False(t, *removed)
	})

	t.Run("successful atomic write", func(t *testing.T) {
		fs := NewOSFileSystem()
		mockFile := newMockWriteSyncCloser("/test/.bioview-3")
		removed := withMockTemp(fs, mockFile)
		fs.rename = func(oldpath, newpath string) error {
			assert.Equal(t, mockFile.name, oldpath)
			assert.Equal(t, "/test/readme.txt", newpath)
			return nil
		}
		fs.chmod = func(name string, mode os.FileMode) error {
			assert.Equal(t, "/test/readme.txt", name)
			assert.Equal(t, os.FileMode(0644), mode)
			return nil
		}

		err := fs.WriteFileAtomic("/test/readme.txt", []byte("content"), 0644)

		require.NoError(t, err)
		assert.True(t, mockFile.writeCalled)
		assert.True(t, mockFile.syncCalled)
		assert.True(t, mockFile.closeCalled)
		assert.False(t, *removed, "Remove should NOT have been called on success")
		assert.Equal(t, "content", mockFile.buffer.String())
	})

	t.Run("real filesystem leaves no temp files", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "readme.txt")
		fs := NewOSFileSystem()

		require.NoError(t, fs.WriteFileAtomic(path, []byte("one"), 0644))
		require.NoError(t, fs.WriteFileAtomic(path, []byte("two"), 0644))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "two", string(data))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}

func TestReadHead(t *testing.T) {
	dir := t.TempDir()
	fs := NewOSFileSystem()

	long := filepath.Join(dir, "long.txt")
	require.NoError(t, os.WriteFile(long, []byte("abcdefgh"), 0644))
	short := filepath.Join(dir, "short.txt")
	require.NoError(t, os.WriteFile(short, []byte("ab"), 0644))
	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0644))

	head, err := fs.ReadHead(long, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte("abcd"), head)

	head, err = fs.ReadHead(short, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte("ab"), head)

	head, err = fs.ReadHead(empty, 4)
	require.NoError(t, err)
	assert.Empty(t, head)

	_, err = fs.ReadHead(filepath.Join(dir, "missing"), 4)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRenameRemoveExists(t *testing.T) {
	dir := t.TempDir()
	fs := NewOSFileSystem()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	require.NoError(t, os.WriteFile(a, []byte("x"), 0644))

	require.NoError(t, fs.Rename(a, b))

	ok, err := fs.Exists(a)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = fs.Exists(b)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, fs.Remove(b))
	ok, err = fs.Exists(b)
	require.NoError(t, err)
	assert.False(t, ok)

	var renameErr *RenameError
	assert.ErrorAs(t, fs.Rename(a, b), &renameErr)
	var removeErr *RemoveError
	err = fs.Remove(b)
	require.ErrorAs(t, err, &removeErr)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestListDir(t *testing.T) {
	dir := t.TempDir()
	fs := NewOSFileSystem()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), nil, 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	infos, err := fs.ListDir(dir)
	require.NoError(t, err)

	var names []string
	for _, info := range infos {
		names = append(names, info.Name())
	}
	sort.Strings(names)
	assert.Equal(t, []string{"a.txt", "b.txt", "sub"}, names)
}
