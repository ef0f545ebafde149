package annotation

import (
	"invoice-annotator/pkg/models"
)

// ResizeRatio is the factor from viewport pixels to native image pixels.
// Missing or zero dimensions give 1.
func ResizeRatio(nativeHeight, viewportHeight float64) float64 {
	if nativeHeight <= 0 || viewportHeight <= 0 {
		return 1
	}
	return nativeHeight / viewportHeight
}

// Export converts entries into the exported file shape with every box scaled
// by ratio. The entries themselves are left untouched.
func Export(entries []Entry, ratio float64) []models.ExportedAnnotation {
	out := make([]models.ExportedAnnotation, 0, len(entries))
	for _, e := range entries {
		a := e.Annotation
		a.BoundingBox = a.BoundingBox.Scale(ratio)
		out = append(out, a.Export())
	}
	return out
}
