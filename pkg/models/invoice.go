package models

import (
	"gorm.io/gorm"
)

// Invoice records an uploaded invoice file
type Invoice struct {
	gorm.Model
	FileName     string `gorm:"index"`
	MimeType     string
	NativeWidth  int
	NativeHeight int
}

// AnnotationDocument is one exported annotation file
type AnnotationDocument struct {
	gorm.Model
	DocumentIdentifier string `gorm:"index"`
	Records            []AnnotationRecord
}

// AnnotationRecord is a single exported annotation row, kept in export order
type AnnotationRecord struct {
	gorm.Model
	AnnotationDocumentID uint `gorm:"index"`
	Position             int
	Title                string
	Type                 string
	CurrencyType         string
	X1                   float64
	Y1                   float64
	X2                   float64
	Y2                   float64
	Page                 int
}

// TextLine represents a line of text with its position from OCR
type TextLine struct {
	Text   string
	X      int
	Y      int
	Width  int
	Height int
}

// ExportRequest is the body accepted by the persistence endpoint.
type ExportRequest struct {
	DocumentIdentifier string               `json:"documentIdentifier" binding:"required"`
	Annotations        []ExportedAnnotation `json:"annotations"`
}

// APIError is the error payload returned by every endpoint.
type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// UploadResponse is returned after an invoice file has been stored.
type UploadResponse struct {
	UploadedFileName string `json:"uploadedFileName"`
	UploadedFileType string `json:"uploadedFileType"`
	Status           int    `json:"status"`
	SessionID        string `json:"sessionId"`
	NativeWidth      int    `json:"nativeWidth,omitempty"`
	NativeHeight     int    `json:"nativeHeight,omitempty"`
}
