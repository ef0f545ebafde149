package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"invoice-annotator/pkg/models"
)

// FileRepository writes each document's annotations to <dir>/<id>.json.
type FileRepository struct {
	dir string
}

func NewFileRepository(dir string) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create annotations directory: %w", err)
	}
	return &FileRepository{dir: dir}, nil
}

func (r *FileRepository) path(documentID string) (string, error) {
	id, err := CleanDocumentID(documentID)
	if err != nil {
		return "", err
	}
	return filepath.Join(r.dir, id+".json"), nil
}

func (r *FileRepository) Save(ctx context.Context, documentID string, annotations []models.ExportedAnnotation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := r.path(documentID)
	if err != nil {
		return err
	}
	if annotations == nil {
		annotations = []models.ExportedAnnotation{}
	}
	data, err := json.Marshal(annotations)
	if err != nil {
		return fmt.Errorf("encode annotations: %w", err)
	}
	if err := os.WriteFile(p, data, 0644); err != nil {
		return fmt.Errorf("write annotations: %w", err)
	}
	return nil
}

func (r *FileRepository) Load(ctx context.Context, documentID string) ([]models.ExportedAnnotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := r.path(documentID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", documentID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read annotations: %w", err)
	}
	var anns []models.ExportedAnnotation
	if err := json.Unmarshal(data, &anns); err != nil {
		return nil, fmt.Errorf("decode annotations: %w", err)
	}
	return anns, nil
}
