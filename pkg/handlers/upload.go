package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"invoice-annotator/pkg/annotation"
	"invoice-annotator/pkg/models"
	"invoice-annotator/pkg/services/upload"
)

// uploadInvoice stores the multipart "file" field and opens a fresh editing
// session for it.
func (h *Handler) uploadInvoice(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "No invoice file attached")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if mt, err := upload.MediaType(contentType); err != nil {
		respondError(c, http.StatusUnsupportedMediaType, fmt.Sprintf("File with mimetype %q is not supported.", mt))
		return
	}

	f, err := header.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Failed to read file")
		return
	}
	defer f.Close()

	res, err := h.uploads.Save(c.Request.Context(), header.Filename, contentType, f)
	if err != nil {
		if errors.Is(err, upload.ErrNoFile) {
			respondError(c, http.StatusBadRequest, "No invoice file attached")
			return
		}
		log.Printf("upload of %s failed: %v", header.Filename, err)
		respondError(c, http.StatusInternalServerError, "Something failed")
		return
	}

	session := h.sessions.Open(annotation.Document{FileName: res.FileName, MimeType: res.MediaType})
	if res.IsImage() {
		session.SetViewer(annotation.Viewer{
			NativeWidth:  float64(res.NativeWidth),
			NativeHeight: float64(res.NativeHeight),
		}, 1)
	}

	c.JSON(http.StatusOK, models.UploadResponse{
		UploadedFileName: res.FileName,
		UploadedFileType: res.MediaType,
		Status:           http.StatusOK,
		SessionID:        session.ID,
		NativeWidth:      res.NativeWidth,
		NativeHeight:     res.NativeHeight,
	})
}
