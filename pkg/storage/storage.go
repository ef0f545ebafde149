package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"invoice-annotator/pkg/models"
)

var (
	ErrInvalidDocument = errors.New("invalid document identifier")
	ErrNotFound        = errors.New("annotations not found")
)

// Repository persists exported annotation files.
type Repository interface {
	Save(ctx context.Context, documentID string, annotations []models.ExportedAnnotation) error
	Load(ctx context.Context, documentID string) ([]models.ExportedAnnotation, error)
}

// CleanDocumentID reduces an identifier to a bare file name so it cannot
// escape the storage directory.
func CleanDocumentID(documentID string) (string, error) {
	id := filepath.Base(strings.TrimSpace(documentID))
	if id == "" || id == "." || id == ".." || id == string(filepath.Separator) {
		return "", fmt.Errorf("%q: %w", documentID, ErrInvalidDocument)
	}
	return id, nil
}

// Multi saves to every repository in order and loads from the first one that
// has the document. The first repository is the primary: its failure fails
// the save, later ones are only logged.
type Multi []Repository

func (m Multi) Save(ctx context.Context, documentID string, annotations []models.ExportedAnnotation) error {
	for i, r := range m {
		if err := r.Save(ctx, documentID, annotations); err != nil {
			if i == 0 {
				return err
			}
			log.Printf("secondary annotation store failed for %s: %v", documentID, err)
		}
	}
	return nil
}

func (m Multi) Load(ctx context.Context, documentID string) ([]models.ExportedAnnotation, error) {
	for _, r := range m {
		anns, err := r.Load(ctx, documentID)
		if err == nil {
			return anns, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("load %s: %w", documentID, ErrNotFound)
}
