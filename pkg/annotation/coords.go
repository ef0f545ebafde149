package annotation

import (
	"errors"

	"github.com/golang/geo/r2"

	"invoice-annotator/pkg/models"
)

// ErrZeroArea marks a gesture that ended where it started on either axis.
// It is discarded silently and never reported to the user.
var ErrZeroArea = errors.New("zero-area rectangle")

// ElementRect is the bounding client rectangle of the element a gesture
// happens over.
type ElementRect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PointerEvent is what a viewer forwards for every down/move/up/leave/click.
type PointerEvent struct {
	ClientX float64     `json:"clientX"`
	ClientY float64     `json:"clientY"`
	PageX   float64     `json:"pageX"`
	PageY   float64     `json:"pageY"`
	Target  ElementRect `json:"rect"`
}

// Position holds both coordinate pairs of a resolved pointer event. Only
// Relative is used for rectangle math.
type Position struct {
	Relative r2.Point
	Absolute r2.Point
}

// Resolve converts a pointer event into element-relative and
// document-absolute coordinates.
func Resolve(ev PointerEvent) Position {
	return Position{
		Relative: r2.Point{X: ev.ClientX - ev.Target.Left, Y: ev.ClientY - ev.Target.Top},
		Absolute: r2.Point{X: ev.PageX, Y: ev.PageY},
	}
}

// Normalize turns two opposite corners, dragged in any direction, into a
// canonical top-left/bottom-right box. Clicks without movement on either axis
// return ErrZeroArea.
func Normalize(start, end r2.Point) (models.BoundingBox, error) {
	if start.X == end.X || start.Y == end.Y {
		return models.BoundingBox{}, ErrZeroArea
	}
	r := r2.RectFromPoints(start, end)
	return models.BoundingBox{r.X.Lo, r.Y.Lo, r.X.Hi, r.Y.Hi}, nil
}

func toRect(b models.BoundingBox) r2.Rect {
	return r2.RectFromPoints(r2.Point{X: b[0], Y: b[1]}, r2.Point{X: b[2], Y: b[3]})
}
