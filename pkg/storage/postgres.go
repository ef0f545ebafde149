package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"invoice-annotator/pkg/models"
)

// PostgresRepository keeps exported annotations and uploaded invoices in
// postgres through gorm.
type PostgresRepository struct {
	db *gorm.DB
}

// OpenPostgres connects to dsn and migrates the schema.
func OpenPostgres(dsn string) (*PostgresRepository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return NewPostgresRepository(db)
}

// NewPostgresRepository wraps an open gorm connection.
func NewPostgresRepository(db *gorm.DB) (*PostgresRepository, error) {
	if err := db.AutoMigrate(&models.Invoice{}, &models.AnnotationDocument{}, &models.AnnotationRecord{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &PostgresRepository{db: db}, nil
}

// Save stores a new version of the document; Load returns the latest one.
func (r *PostgresRepository) Save(ctx context.Context, documentID string, annotations []models.ExportedAnnotation) error {
	id, err := CleanDocumentID(documentID)
	if err != nil {
		return err
	}
	doc := models.AnnotationDocument{
		DocumentIdentifier: id,
		Records:            toRecords(annotations),
	}
	if err := r.db.WithContext(ctx).Create(&doc).Error; err != nil {
		return fmt.Errorf("insert annotation document: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Load(ctx context.Context, documentID string) ([]models.ExportedAnnotation, error) {
	id, err := CleanDocumentID(documentID)
	if err != nil {
		return nil, err
	}
	var doc models.AnnotationDocument
	err = r.db.WithContext(ctx).
		Preload("Records", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("document_identifier = ?", id).
		Order("created_at DESC").
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load %s: %w", documentID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query annotation document: %w", err)
	}
	return fromRecords(doc.Records), nil
}

// SaveInvoice records an uploaded invoice.
func (r *PostgresRepository) SaveInvoice(ctx context.Context, invoice *models.Invoice) error {
	if err := r.db.WithContext(ctx).Create(invoice).Error; err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// Invoices lists uploaded invoices, newest first.
func (r *PostgresRepository) Invoices(ctx context.Context) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}

func toRecords(annotations []models.ExportedAnnotation) []models.AnnotationRecord {
	records := make([]models.AnnotationRecord, 0, len(annotations))
	for i, a := range annotations {
		records = append(records, models.AnnotationRecord{
			Position:     i,
			Title:        a.Title,
			Type:         a.Type,
			CurrencyType: a.Misc.CurrencyType,
			X1:           a.BoundingBox[0],
			Y1:           a.BoundingBox[1],
			X2:           a.BoundingBox[2],
			Y2:           a.BoundingBox[3],
			Page:         a.Page,
		})
	}
	return records
}

func fromRecords(records []models.AnnotationRecord) []models.ExportedAnnotation {
	anns := make([]models.ExportedAnnotation, 0, len(records))
	for _, rec := range records {
		anns = append(anns, models.ExportedAnnotation{
			Title:       rec.Title,
			Type:        rec.Type,
			BoundingBox: models.BoundingBox{rec.X1, rec.Y1, rec.X2, rec.Y2},
			Misc:        models.Misc{CurrencyType: rec.CurrencyType},
			Page:        rec.Page,
		})
	}
	return anns
}
