package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"invoice-annotator/pkg/models"
)

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrNoFile               = errors.New("no invoice file attached")
)

// AllowedMediaTypes are the invoice formats the editor can display.
var AllowedMediaTypes = []string{"application/pdf", "image/jpeg", "image/png"}

// InvoiceRecorder is notified of every stored upload.
type InvoiceRecorder interface {
	SaveInvoice(ctx context.Context, invoice *models.Invoice) error
}

// Result describes a stored invoice file.
type Result struct {
	FileName     string
	MediaType    string
	NativeWidth  int
	NativeHeight int
}

// IsImage reports whether the stored file is a raster image.
func (r Result) IsImage() bool { return strings.HasPrefix(r.MediaType, "image/") }

// Service stores uploaded invoice files
type Service struct {
	dir      string
	recorder InvoiceRecorder
}

// NewService creates a new upload service writing into dir. recorder may be nil.
func NewService(dir string, recorder InvoiceRecorder) (*Service, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &Service{dir: dir, recorder: recorder}, nil
}

// Path returns where a stored file lives.
func (s *Service) Path(fileName string) string {
	return filepath.Join(s.dir, filepath.Base(fileName))
}

// MediaType strips parameters from a Content-Type header and checks it
// against the allow-list.
func MediaType(header string) (string, error) {
	mt, _, err := mime.ParseMediaType(header)
	if err != nil {
		mt = strings.TrimSpace(header)
	}
	for _, allowed := range AllowedMediaTypes {
		if mt == allowed {
			return mt, nil
		}
	}
	return mt, fmt.Errorf("mimetype %q: %w", mt, ErrUnsupportedMediaType)
}

// SanitizeFileName replaces spaces with underscores and drops any directory.
func SanitizeFileName(name string) string {
	return strings.ReplaceAll(filepath.Base(name), " ", "_")
}

// Save validates and stores one uploaded file. For images it also reports
// the native pixel dimensions.
func (s *Service) Save(ctx context.Context, name, contentType string, r io.Reader) (*Result, error) {
	mt, err := MediaType(contentType)
	if err != nil {
		return nil, err
	}
	fileName := SanitizeFileName(name)
	if fileName == "" || fileName == "." || fileName == string(filepath.Separator) {
		return nil, ErrNoFile
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	res := &Result{FileName: fileName, MediaType: mt}
	if res.IsImage() {
		img, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}
		res.NativeWidth = img.Bounds().Dx()
		res.NativeHeight = img.Bounds().Dy()
	}

	if err := os.WriteFile(s.Path(fileName), data, 0644); err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	if s.recorder != nil {
		inv := &models.Invoice{
			FileName:     res.FileName,
			MimeType:     res.MediaType,
			NativeWidth:  res.NativeWidth,
			NativeHeight: res.NativeHeight,
		}
		if err := s.recorder.SaveInvoice(ctx, inv); err != nil {
			log.Printf("failed to record invoice %s: %v", fileName, err)
		}
	}
	return res, nil
}
