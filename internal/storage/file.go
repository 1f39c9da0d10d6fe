package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/travel-mate/internal/model"
	"github.com/Veraticus/travel-mate/internal/service"
)

var _ service.Storage = (*FileStore)(nil)

// FileStore implements service.Storage on top of a single JSON file.
type FileStore struct {
	now  func() time.Time
	path string
}

// NewFileStore creates a store backed by the snapshot file at path. The file
// does not need to exist yet.
func NewFileStore(path string) (*FileStore, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}
	return &FileStore{path: path, now: time.Now}, nil
}

// Path returns the snapshot file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the workspace. A missing file yields an empty workspace.
func (s *FileStore) Load(ctx context.Context) (*model.AppState, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	state, err := readSnapshot(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("No workspace file yet, starting empty", "path", s.path)
		return &model.AppState{Trips: []model.Trip{}, Expenses: []model.Expense{}}, nil
	}
	if err != nil {
		return nil, err
	}

	slog.Debug("Loaded workspace",
		"path", s.path,
		"trips", len(state.Trips),
		"expenses", len(state.Expenses))
	return state, nil
}

// Save writes the workspace atomically: a temp file in the same directory is
// renamed over the snapshot.
func (s *FileStore) Save(ctx context.Context, state *model.AppState) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := writeSnapshot(s.path, state); err != nil {
		return err
	}

	slog.Debug("Saved workspace",
		"path", s.path,
		"trips", len(state.Trips),
		"expenses", len(state.Expenses))
	return nil
}

// Import replaces the workspace with the snapshot at path. The snapshot is
// fully decoded before anything is written, so a rejected file leaves the
// workspace untouched.
func (s *FileStore) Import(ctx context.Context, path string) (*model.AppState, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}

	state, err := readSnapshot(path)
	if err != nil {
		return nil, err
	}
	if err := s.Save(ctx, state); err != nil {
		return nil, err
	}

	slog.Info("Imported workspace",
		"from", path,
		"trips", len(state.Trips),
		"expenses", len(state.Expenses))
	return state, nil
}

// Export writes the workspace to travel-mate-<unix millis>.json in dir.
func (s *FileStore) Export(ctx context.Context, dir string) (string, error) {
	state, err := s.Load(ctx)
	if err != nil {
		return "", err
	}

	if dir == "" {
		dir = "."
	}
	target := filepath.Join(dir, ExportFileName(s.now()))
	if err := writeSnapshot(target, state); err != nil {
		return "", err
	}

	slog.Info("Exported workspace", "to", target)
	return target, nil
}

// ExportFileName returns the export file name for a moment in time.
func ExportFileName(t time.Time) string {
	return fmt.Sprintf("travel-mate-%d.json", t.UnixMilli())
}

func readSnapshot(path string) (*model.AppState, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from config or the user
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("failed to close snapshot", "path", path, "error", closeErr)
		}
	}()

	state, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return state, nil
}

func writeSnapshot(path string, state *model.AppState) error {
	var buf bytes.Buffer
	if err := Encode(&buf, state); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create workspace directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".travel-mate-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}
