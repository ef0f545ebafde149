package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"invoice-annotator/pkg/annotation"
	"invoice-annotator/pkg/models"
	"invoice-annotator/pkg/services/ocr"
	"invoice-annotator/pkg/services/upload"
	"invoice-annotator/pkg/storage"
)

// InvoiceLister lists previously uploaded invoices.
type InvoiceLister interface {
	Invoices(ctx context.Context) ([]models.Invoice, error)
}

// Handler serves the upload, editing session and export endpoints.
type Handler struct {
	sessions *annotation.Registry
	uploads  *upload.Service
	repo     storage.Repository
	ocr      *ocr.Service
	invoices InvoiceLister
}

// New creates a Handler. ocrService may be nil to disable title suggestions.
func New(sessions *annotation.Registry, uploads *upload.Service, repo storage.Repository, ocrService *ocr.Service) *Handler {
	return &Handler{
		sessions: sessions,
		uploads:  uploads,
		repo:     repo,
		ocr:      ocrService,
	}
}

// WithInvoices enables GET /api/invoices.
func (h *Handler) WithInvoices(l InvoiceLister) *Handler {
	h.invoices = l
	return h
}

// Register mounts every route under r.
func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api")
	api.POST("/upload", h.uploadInvoice)
	api.POST("/annotations", h.saveAnnotations)
	api.GET("/annotations/:document", h.getAnnotations)
	if h.invoices != nil {
		api.GET("/invoices", h.getInvoices)
	}

	s := api.Group("/sessions/:session")
	s.GET("", h.getSession)
	s.DELETE("", h.closeSession)
	s.POST("/viewer", h.reportViewer)
	s.POST("/pointer", h.pointer)
	s.POST("/pages/next", h.nextPage)
	s.POST("/pages/previous", h.previousPage)
	s.PATCH("/annotations/:annotation", h.updateAnnotation)
	s.DELETE("/annotations/:annotation", h.deleteAnnotation)
	s.POST("/annotations/:annotation/suggest", h.suggestTitle)
	s.PUT("/selection", h.selectAnnotation)
	s.POST("/submit", h.submit)
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, models.APIError{Message: message, Status: status})
}

func attachment(c *gin.Context, documentID string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.json", documentID))
}

// session resolves the :session parameter or writes a 404.
func (h *Handler) session(c *gin.Context) (*annotation.Session, bool) {
	s, err := h.sessions.Get(c.Param("session"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Session not found")
		return nil, false
	}
	return s, true
}

func (h *Handler) saveAnnotations(c *gin.Context) {
	var req models.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	if req.Annotations == nil {
		req.Annotations = []models.ExportedAnnotation{}
	}
	if err := h.repo.Save(c.Request.Context(), req.DocumentIdentifier, req.Annotations); err != nil {
		if errors.Is(err, storage.ErrInvalidDocument) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("failed to save annotations for %s: %v", req.DocumentIdentifier, err)
		respondError(c, http.StatusInternalServerError, "Something failed")
		return
	}
	attachment(c, req.DocumentIdentifier)
	c.JSON(http.StatusOK, req.Annotations)
}

func (h *Handler) getAnnotations(c *gin.Context) {
	id := c.Param("document")
	anns, err := h.repo.Load(c.Request.Context(), id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respondError(c, http.StatusNotFound, "Annotations not found")
		return
	case errors.Is(err, storage.ErrInvalidDocument):
		respondError(c, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		log.Printf("failed to load annotations for %s: %v", id, err)
		respondError(c, http.StatusInternalServerError, "Something failed")
		return
	}
	c.JSON(http.StatusOK, anns)
}

func (h *Handler) getInvoices(c *gin.Context) {
	invoices, err := h.invoices.Invoices(c.Request.Context())
	if err != nil {
		log.Printf("failed to list invoices: %v", err)
		respondError(c, http.StatusInternalServerError, "Something failed")
		return
	}
	c.JSON(http.StatusOK, invoices)
}
