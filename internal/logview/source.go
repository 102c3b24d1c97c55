package logview

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Source supplies raw log text for rendering. Size limiting is the source's
// job; the renderer takes whatever it is given.
type Source interface {
	FetchLogText(ctx context.Context, maxBytes int64) (string, error)
}

// FileSource reads the tail of the desktop log file directly.
type FileSource struct {
	path string
}

// NewFileSource creates a source reading from the given log file.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// FetchLogText returns up to maxBytes from the end of the log file, trimmed
// forward to the next line boundary so the result never starts mid-line.
// A missing file yields empty text, not an error. maxBytes <= 0 means the
// whole file.
func (f *FileSource) FetchLogText(ctx context.Context, maxBytes int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	file, err := os.Open(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("stat log file: %w", err)
	}

	truncated := false
	if maxBytes > 0 && info.Size() > maxBytes {
		if _, err := file.Seek(info.Size()-maxBytes, io.SeekStart); err != nil {
			return "", fmt.Errorf("seek log file: %w", err)
		}
		truncated = true
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("read log file: %w", err)
	}

	text := string(data)
	if truncated {
		if idx := strings.IndexByte(text, '\n'); idx >= 0 {
			text = text[idx+1:]
		}
	}
	return text, nil
}
