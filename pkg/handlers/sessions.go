package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"invoice-annotator/pkg/annotation"
)

type viewerRequest struct {
	NativeWidth    float64 `json:"nativeWidth" binding:"gte=0"`
	NativeHeight   float64 `json:"nativeHeight" binding:"gte=0"`
	ViewportHeight float64 `json:"viewportHeight" binding:"gte=0"`
	PageCount      int     `json:"pageCount" binding:"gte=0"`
}

type pointerRequest struct {
	Event string `json:"event" binding:"required,oneof=down move up leave click"`
	annotation.PointerEvent
}

type updateRequest struct {
	Field string `json:"field" binding:"required,oneof=title fieldType currencyType"`
	Value string `json:"value"`
}

type selectionRequest struct {
	Identifier *string `json:"identifier"`
}

type pointerResponse struct {
	Created string           `json:"created,omitempty"`
	State   annotation.State `json:"state"`
}

func (h *Handler) getSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		respondError(c, http.StatusBadRequest, "Invalid page")
		return
	}
	c.JSON(http.StatusOK, s.Snapshot(page))
}

func (h *Handler) closeSession(c *gin.Context) {
	if err := h.sessions.Close(c.Param("session")); err != nil {
		respondError(c, http.StatusNotFound, "Session not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) reportViewer(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req viewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	s.SetViewer(annotation.Viewer{
		NativeWidth:    req.NativeWidth,
		NativeHeight:   req.NativeHeight,
		ViewportHeight: req.ViewportHeight,
	}, req.PageCount)
	c.JSON(http.StatusOK, s.Snapshot(0))
}

func (h *Handler) pointer(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req pointerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	created, err := s.HandlePointer(annotation.EventKind(req.Event), req.PointerEvent)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, pointerResponse{Created: created, State: s.Snapshot(0)})
}

func (h *Handler) nextPage(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.NextPage()
	c.JSON(http.StatusOK, s.Snapshot(0))
}

func (h *Handler) previousPage(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.PreviousPage()
	c.JSON(http.StatusOK, s.Snapshot(0))
}

// updateAnnotation edits one field. Unknown annotation ids are a silent no-op.
func (h *Handler) updateAnnotation(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	err := s.UpdateField(c.Param("annotation"), annotation.Field(req.Field), req.Value)
	if err != nil && !errors.Is(err, annotation.ErrMissingAnnotation) {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, s.Snapshot(0))
}

func (h *Handler) deleteAnnotation(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.Delete(c.Param("annotation")); err != nil && !errors.Is(err, annotation.ErrMissingAnnotation) {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, s.Snapshot(0))
}

func (h *Handler) selectAnnotation(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	id := ""
	if req.Identifier != nil {
		id = *req.Identifier
	}
	s.Select(id)
	c.JSON(http.StatusOK, s.Snapshot(0))
}

// submit exports the session's annotations and returns them as a download.
// The request context is passed on so a client that goes away aborts it.
func (h *Handler) submit(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	exported, err := s.Submit(c.Request.Context(), h.repo)
	switch {
	case errors.Is(err, annotation.ErrSubmitInProgress):
		respondError(c, http.StatusConflict, "Export already in progress")
		return
	case errors.Is(err, annotation.ErrNotReady):
		respondError(c, http.StatusUnprocessableEntity, "Required fields are missing")
		return
	case err != nil:
		log.Printf("export of session %s failed: %v", s.ID, err)
		respondError(c, http.StatusInternalServerError, "Something failed")
		return
	}
	attachment(c, s.Document.FileName)
	c.JSON(http.StatusOK, exported)
}

func (h *Handler) suggestTitle(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if h.ocr == nil {
		respondError(c, http.StatusNotImplemented, "OCR is not configured")
		return
	}
	if s.Document.MimeType == "application/pdf" {
		respondError(c, http.StatusUnsupportedMediaType, "Title suggestions need an image invoice")
		return
	}
	id := c.Param("annotation")
	a, ratio, found := s.Annotation(id)
	if !found {
		respondError(c, http.StatusNotFound, "Annotation not found")
		return
	}

	title, err := h.ocr.SuggestTitle(c.Request.Context(), h.uploads.Path(s.Document.FileName), a.BoundingBox, ratio)
	if err != nil {
		log.Printf("title suggestion for %s failed: %v", id, err)
		respondError(c, http.StatusBadGateway, "Text recognition failed")
		return
	}
	if a.Title == "" && title != "" {
		if err := s.UpdateField(id, annotation.FieldTitle, title); err != nil && !errors.Is(err, annotation.ErrMissingAnnotation) {
			log.Printf("failed to apply suggested title for %s: %v", id, err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"title": title, "state": s.Snapshot(0)})
}
