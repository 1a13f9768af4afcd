package pipeline

import (
	"fmt"
	"log/slog"
	"os"
)

// tempScope tracks every temporary file created while serving one request.
// Paths are registered at creation time and removed exactly once by Close,
// which runs on every exit path. Removal errors are logged and swallowed so
// cleanup can never mask the primary outcome.
type tempScope struct {
	dir   string
	paths []string
}

func newTempScope(dir string) *tempScope {
	if dir == "" {
		dir = os.TempDir()
	}
	return &tempScope{dir: dir}
}

// Create makes a uniquely named file with the given suffix, registers it for
// cleanup, and returns its path with the file already closed.
func (s *tempScope) Create(pattern string) (string, error) {
	f, err := os.CreateTemp(s.dir, pattern)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	s.paths = append(s.paths, path)
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return path, nil
}

// CreateWith writes data into a fresh registered temp file.
func (s *tempScope) CreateWith(pattern string, data []byte) (string, error) {
	path, err := s.Create(pattern)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}
	return path, nil
}

// Close removes every registered path, best effort.
func (s *tempScope) Close() {
	for _, path := range s.paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to remove temp file", "path", path, "error", err)
		}
	}
	s.paths = nil
}
