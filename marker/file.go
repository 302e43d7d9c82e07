package marker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// File stores the flag as the presence of a file
type File struct {
	path string
}

// NewFile creates a file marker at path
func NewFile(path string) *File {
	return &File{path: path}
}

// Seen reports whether the marker file exists
func (f *File) Seen(context.Context) (bool, error) {
	_, err := os.Stat(f.path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("checking marker %s: %w", f.path, err)
}

// MarkSeen creates the marker file, stamping the write time
func (f *File) MarkSeen(context.Context) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("creating marker directory: %w", err)
	}
	stamp := time.Now().UTC().Format(time.RFC3339) + "\n"
	if err := os.WriteFile(f.path, []byte(stamp), 0o644); err != nil {
		return fmt.Errorf("writing marker %s: %w", f.path, err)
	}
	return nil
}
