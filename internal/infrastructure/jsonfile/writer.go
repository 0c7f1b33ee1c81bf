package jsonfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// indent is the indentation of written documents
const indent = "    "

// filePerm is the mode of written documents. Temp files start as 0600.
const filePerm = 0o644

// Writer stores JSON documents in a directory. Documents are fully encoded
// before the target file is touched, and replaced via rename, so a failed
// write never leaves a partial file behind.
type Writer struct {
	fs  afero.Fs
	dir string
}

// NewWriter creates a writer rooted at dir on the given filesystem
func NewWriter(fs afero.Fs, dir string) *Writer {
	if dir == "" {
		dir = "."
	}
	return &Writer{fs: fs, dir: dir}
}

// NewOSWriter creates a writer on the local filesystem
func NewOSWriter(dir string) *Writer {
	return NewWriter(afero.NewOsFs(), dir)
}

// Encode renders v as UTF-8 JSON with four-space indentation.
// Non-ASCII and HTML characters are kept literally.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Write encodes v into the file name under the writer's directory and
// returns the written path
func (w *Writer) Write(name string, v any) (string, error) {
	data, err := Encode(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", name, err)
	}

	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(w.dir, name)
	tmp, err := afero.TempFile(w.fs, w.dir, name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		w.fs.Remove(tmpName)
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		w.fs.Remove(tmpName)
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}

	if err := w.fs.Chmod(tmpName, filePerm); err != nil {
		w.fs.Remove(tmpName)
		return "", fmt.Errorf("failed to set mode of %s: %w", name, err)
	}

	if err := w.fs.Rename(tmpName, path); err != nil {
		w.fs.Remove(tmpName)
		return "", fmt.Errorf("failed to move %s into place: %w", name, err)
	}
	return path, nil
}
