package learning

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore is a Store persisted as JSON. It keeps a MemoryStore hot and
// writes the full history on Save; persistence cadence is the caller's
// choice (typically on shutdown).
type FileStore struct {
	*MemoryStore
	path string
}

// fileStoreState is the on-disk shape.
type fileStoreState struct {
	Cap       int                 `json:"cap"`
	Histories map[string]*history `json:"histories"`
}

// NewFileStore opens or creates a file-backed store. A missing file yields
// an empty store; a corrupt file is an error.
func NewFileStore(path string, cap int) (*FileStore, error) {
	fs := &FileStore{
		MemoryStore: NewMemoryStore(cap),
		path:        path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, fmt.Errorf("failed to read learning store: %w", err)
	}

	var state fileStoreState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse learning store: %w", err)
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	if state.Histories != nil {
		fs.histories = state.Histories
	}
	// Re-trim in case the file was written with a larger cap
	for _, h := range fs.histories {
		h.Successes = trim(h.Successes, fs.cap)
		h.Failures = trim(h.Failures, fs.cap)
		h.Calibration = trim(h.Calibration, fs.cap)
		if len(h.Corrections) > fs.cap {
			h.Corrections = h.Corrections[len(h.Corrections)-fs.cap:]
		}
	}
	return fs, nil
}

// Save persists the current history to disk.
func (fs *FileStore) Save() error {
	fs.mu.Lock()
	state := fileStoreState{
		Cap:       fs.cap,
		Histories: fs.histories,
	}
	data, err := json.MarshalIndent(state, "", "  ")
	fs.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to serialize learning store: %w", err)
	}

	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(fs.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write learning store: %w", err)
	}
	return nil
}

// Path returns the backing file path.
func (fs *FileStore) Path() string {
	return fs.path
}

func trim(seq []Sample, cap int) []Sample {
	if len(seq) > cap {
		return seq[len(seq)-cap:]
	}
	return seq
}
