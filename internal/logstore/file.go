package logstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileStore keeps the blob in a single file under a base directory,
// one file per environment key. O_APPEND writes delegate append
// atomicity to the OS.
type FileStore struct {
	fs   afero.Fs
	path string
}

// NewFileStore creates a file-backed store for the given key. The
// directory is created on first use.
func NewFileStore(fs afero.Fs, dir, key string) *FileStore {
	return &FileStore{
		fs:   fs,
		path: filepath.Join(dir, key+".md"),
	}
}

func (s *FileStore) Append(_ context.Context, text string) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	f, err := s.fs.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(text); err != nil {
		return fmt.Errorf("append log file: %w", err)
	}
	return nil
}

func (s *FileStore) ReadAll(_ context.Context) (string, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read log file: %w", err)
	}
	return string(data), nil
}

func (s *FileStore) Overwrite(_ context.Context, text string) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("overwrite log file: %w", err)
	}
	return nil
}

func (s *FileStore) Metadata(_ context.Context) (Metadata, error) {
	meta := Metadata{Source: "file:" + s.path}

	info, err := s.fs.Stat(s.path)
	if os.IsNotExist(err) {
		return meta, nil
	}
	if err != nil {
		return meta, fmt.Errorf("stat log file: %w", err)
	}

	meta.SizeBytes = info.Size()
	return meta, nil
}
