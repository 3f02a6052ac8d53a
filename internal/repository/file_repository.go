package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileRepository implements the Repository interface with one JSON file per
// document in a directory
type FileRepository struct {
	dir string
}

// NewFileRepository creates a repository rooted at dir
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

// Dir returns the directory holding the documents
func (r *FileRepository) Dir() string {
	return r.dir
}

func (r *FileRepository) path(document string) (string, error) {
	if document == "" || strings.ContainsAny(document, `/\`) || strings.HasPrefix(document, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidDocument, document)
	}
	return filepath.Join(r.dir, document+".json"), nil
}

func (r *FileRepository) Load(ctx context.Context, document string) (map[string]string, error) {
	path, err := r.path(document)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", document, err)
	}

	entries := map[string]string{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", document, err)
	}
	return entries, nil
}

// Save writes to a temporary file and renames it over the document, so a
// reader never sees a half-written file
func (r *FileRepository) Save(ctx context.Context, document string, entries map[string]string) error {
	path, err := r.path(document)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if entries == nil {
		entries = map[string]string{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding %s: %w", document, err)
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("error creating store directory: %w", err)
	}

	tmp, err := os.CreateTemp(r.dir, document+".*.tmp")
	if err != nil {
		return fmt.Errorf("error writing %s: %w", document, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing %s: %w", document, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error writing %s: %w", document, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("error writing %s: %w", document, err)
	}
	return nil
}
