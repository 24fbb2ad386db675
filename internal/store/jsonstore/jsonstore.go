package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/todoview/internal/model"
)

// JSON snapshot of the remote item list. Single file, human-readable,
// the same shape the endpoint serves, so a saved response can be read back.

// DefaultFileName is used by `fetch` when no output path is given.
const DefaultFileName = "todos.json"

// Load reads a snapshot from path.
func Load(path string) ([]model.Item, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	var items []model.Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// Save writes items to path, creating parent directories as needed.
func Save(path string, items []model.Item) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// Source loads items from a snapshot file.
type Source struct {
	Path string
}

// LoadItems implements the loader contract used by the views.
func (s Source) LoadItems(ctx context.Context) ([]model.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Load(s.Path)
}

// String names the source in logs and headers.
func (s Source) String() string { return "file:" + s.Path }
