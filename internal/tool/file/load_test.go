package file

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/Cyclone1070/bioview/internal/config"
	"github.com/Cyclone1070/bioview/internal/tool/charset"
	"github.com/Cyclone1070/bioview/internal/tool/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader(t *testing.T, fileOps fileReader, logBuf *bytes.Buffer) *Loader {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Files.FallbackEncoding = "windows-1252"
	if logBuf == nil {
		logBuf = &bytes.Buffer{}
	}
	l, err := NewLoader(fileOps, cfg, slog.New(slog.NewTextHandler(logBuf, nil)))
	require.NoError(t, err)
	return l
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestLoad_Success(t *testing.T) {
	dir := t.TempDir()
	loader := newTestLoader(t, fsutil.NewOSFileSystem(), nil)

	tests := []struct {
		name    string
		data    []byte
		want    string
		wantEnc charset.Encoding
	}{
		{"plain utf8", []byte("hello\nworld\n"), "hello\nworld\n", charset.UTF8},
		{"utf8 signature", []byte("\xEF\xBB\xBFsigned"), "signed", charset.UTF8SIG},
		{"utf16 with mark", []byte{0xFF, 0xFE, 'o', 0, 'k', 0}, "ok", charset.UTF16},
		{"crlf normalised", []byte("a\r\nb\rc"), "a\nb\nc", charset.UTF8},
		{"single byte", []byte("x"), "x", charset.UTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name+".txt", tt.data)

			res, err := loader.Load(path)

			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Text)
			assert.Equal(t, tt.wantEnc, res.Encoding)
			assert.False(t, res.Fallback)
		})
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "empty.txt", nil)
	fs := &countingFS{OSFileSystem: fsutil.NewOSFileSystem()}
	loader := newTestLoader(t, fs, nil)

	text, err := loader.LoadText(path)

	require.NoError(t, err)
	assert.Equal(t, "", text)
	assert.Zero(t, fs.headReads, "empty files are never sniffed")
}

func TestLoad_FallbackEncoding(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "latin.txt", []byte("caf\xe9 au lait"))
	var logBuf bytes.Buffer
	loader := newTestLoader(t, fsutil.NewOSFileSystem(), &logBuf)

	res, err := loader.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "café au lait", res.Text)
	assert.True(t, res.Fallback)
	assert.Equal(t, charset.UTF8, res.Encoding)
	assert.Equal(t, "windows-1252", res.DecodedWith)
	assert.Contains(t, logBuf.String(), "fallback")
}

func TestLoad_DecodeErrorWhenFallbackFails(t *testing.T) {
	dir := t.TempDir()
	// sniffed as UTF-16LE but odd length, and 0xFF is not UTF-8
	cfg := config.DefaultConfig()
	cfg.Files.FallbackEncoding = "utf-8"
	loader, err := NewLoader(fsutil.NewOSFileSystem(), cfg, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	require.NoError(t, err)
	path := writeFile(t, dir, "broken.txt", []byte{'<', 0x00, '?', 0x00, 0xFF})

	_, err = loader.Load(path)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, charset.UTF16LE, decodeErr.Encoding)
	assert.Equal(t, "utf-8", decodeErr.Fallback)
	assert.Equal(t, DecodeErrorPlaceholder, Placeholder(err))
}

func TestLoad_SniffFailureIsDecodeError(t *testing.T) {
	fs := &countingFS{
		OSFileSystem: fsutil.NewOSFileSystem(),
		headErr:      errors.New("device gone"),
	}
	dir := t.TempDir()
	path := writeFile(t, dir, "readme.txt", []byte("text"))
	loader := newTestLoader(t, fs, nil)

	_, err := loader.Load(path)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, charset.Unknown, decodeErr.Encoding)
	var sniffErr *charset.SniffError
	assert.ErrorAs(t, err, &sniffErr)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		loader := newTestLoader(t, fsutil.NewOSFileSystem(), nil)
		_, err := loader.Load(filepath.Join(dir, "missing.txt"))

		var statErr *StatError
		require.ErrorAs(t, err, &statErr)
		assert.True(t, errors.Is(err, os.ErrNotExist))
		assert.Equal(t, "Error: "+err.Error(), Placeholder(err))
	})

	t.Run("directory", func(t *testing.T) {
		loader := newTestLoader(t, fsutil.NewOSFileSystem(), nil)
		_, err := loader.Load(dir)

		var dirErr *IsDirectoryError
		assert.ErrorAs(t, err, &dirErr)
	})

	t.Run("too large", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Files.MaxFileSize = 3
		cfg.Files.FallbackEncoding = "utf-8"
		loader, err := NewLoader(fsutil.NewOSFileSystem(), cfg, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
		require.NoError(t, err)
		path := writeFile(t, dir, "big.txt", []byte("four"))

		_, err = loader.Load(path)

		var sizeErr *TooLargeError
		require.ErrorAs(t, err, &sizeErr)
		assert.Equal(t, int64(4), sizeErr.Size)
	})

	t.Run("read failure", func(t *testing.T) {
		fs := &countingFS{OSFileSystem: fsutil.NewOSFileSystem(), readErr: errors.New("io")}
		loader := newTestLoader(t, fs, nil)
		path := writeFile(t, dir, "r.txt", []byte("text"))

		_, err := loader.Load(path)

		var readErr *ReadError
		assert.ErrorAs(t, err, &readErr)
	})

	t.Run("empty path", func(t *testing.T) {
		loader := newTestLoader(t, fsutil.NewOSFileSystem(), nil)
		_, err := loader.Load("")
		assert.ErrorIs(t, err, ErrPathRequired)
	})
}

func TestNewLoader_BadFallback(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Files.FallbackEncoding = "klingon"

	_, err := NewLoader(fsutil.NewOSFileSystem(), cfg, slog.Default())

	var unsupported *charset.UnsupportedError
	assert.ErrorAs(t, err, &unsupported)
}

// countingFS wraps the OS filesystem, counting and optionally failing reads.
type countingFS struct {
	*fsutil.OSFileSystem
	headReads int
	headErr   error
	readErr   error
}

func (c *countingFS) ReadHead(path string, n int) ([]byte, error) {
	c.headReads++
	if c.headErr != nil {
		return nil, c.headErr
	}
	return c.OSFileSystem.ReadHead(path, n)
}

func (c *countingFS) ReadFile(path string) ([]byte, error) {
	if c.readErr != nil {
		return nil, c.readErr
	}
	return c.OSFileSystem.ReadFile(path)
}
