// Package file loads readme files of unknown encoding as text.
package file

import (
	"errors"
	"log/slog"
	"os"

	"github.com/Cyclone1070/bioview/internal/config"
	"github.com/Cyclone1070/bioview/internal/tool/charset"
	"github.com/Cyclone1070/bioview/internal/tool/helper/content"
	"golang.org/x/text/encoding"
)

// LoadResult is a decoded text file.
type LoadResult struct {
	Path string
	Text string
	Size int64
	// Encoding is what the sniffer reported.
	Encoding charset.Encoding
	// DecodedWith names the encoding that actually decoded the text; it
	// differs from Encoding when the fallback was used.
	DecodedWith string
	Fallback    bool
}

// Loader reads text files, sniffing their encoding and falling back to the
// configured or locale encoding when the sniffed one fails.
type Loader struct {
	fileOps      fileReader
	maxFileSize  int64
	fallback     encoding.Encoding
	fallbackName string
	logger       *slog.Logger
}

// NewLoader creates a Loader. The fallback encoding is files.fallback_encoding
// when set, otherwise the host locale encoding.
func NewLoader(fileOps fileReader, cfg *config.Config, logger *slog.Logger) (*Loader, error) {
	l := &Loader{
		fileOps:     fileOps,
		maxFileSize: cfg.Files.MaxFileSize,
		logger:      logger,
	}

	if name := cfg.Files.FallbackEncoding; name != "" {
		enc, err := charset.Lookup(name)
		if err != nil {
			return nil, err
		}
		l.fallback, l.fallbackName = enc, name
	} else {
		l.fallback, l.fallbackName = charset.LocaleEncoding(os.Getenv)
	}

	return l, nil
}

// FallbackName returns the label of the fallback encoding.
func (l *Loader) FallbackName() string {
	return l.fallbackName
}

// LoadText returns the decoded text of path.
func (l *Loader) LoadText(path string) (string, error) {
	res, err := l.Load(path)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// Load reads and decodes path. A zero-length file yields empty text without
// sniffing. Line endings are normalised to "\n".
func (l *Loader) Load(path string) (*LoadResult, error) {
	if path == "" {
		return nil, ErrPathRequired
	}

	info, err := l.fileOps.Stat(path)
	if err != nil {
		return nil, &StatError{Path: path, Cause: err}
	}
	if info.IsDir() {
		return nil, &IsDirectoryError{Path: path}
	}
	if info.Size() > l.maxFileSize {
		return nil, &TooLargeError{Path: path, Size: info.Size(), Limit: l.maxFileSize}
	}

	res := &LoadResult{Path: path, Size: info.Size(), Encoding: charset.UTF8, DecodedWith: charset.UTF8.String()}
	if info.Size() == 0 {
		return res, nil
	}

	head, err := l.fileOps.ReadHead(path, charset.HeadSize)
	if err != nil {
		return nil, &DecodeError{Path: path, Encoding: charset.Unknown, Cause: &charset.SniffError{Cause: err}}
	}
	res.Encoding = charset.DetectBytes(head)

	data, err := l.fileOps.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Cause: err}
	}
	res.Size = int64(len(data))
	if len(data) == 0 {
		return res, nil
	}

	text, err := charset.Decode(data, res.Encoding)
	if err != nil {
		l.logger.Warn("decoding failed, retrying with fallback encoding",
			"path", path, "encoding", res.Encoding, "fallback", l.fallbackName, "error", err)

		fallbackText, fallbackErr := charset.DecodeWith(l.fallback, data, l.fallbackName)
		if fallbackErr != nil {
			return nil, &DecodeError{
				Path:     path,
				Encoding: res.Encoding,
				Fallback: l.fallbackName,
				Cause:    errors.Join(err, fallbackErr),
			}
		}
		text = fallbackText
		res.Fallback = true
		res.DecodedWith = l.fallbackName
	} else {
		res.DecodedWith = res.Encoding.String()
	}

	res.Text = content.NormalizeNewlines(text)
	return res, nil
}
