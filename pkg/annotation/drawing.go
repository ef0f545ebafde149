package annotation

import (
	"github.com/golang/geo/r2"

	"invoice-annotator/pkg/models"
)

// Drawing tracks the provisional rectangle of an in-progress gesture.
// The zero value is idle.
type Drawing struct {
	active bool
	page   int
	start  r2.Point
	end    r2.Point
}

// Down starts a gesture on page. It is ignored while a gesture is already
// in progress.
func (d *Drawing) Down(p r2.Point, page int) {
	if d.active {
		return
	}
	d.active = true
	d.page = page
	d.start = p
	d.end = p
}

// Move updates the second corner. No-op while idle.
func (d *Drawing) Move(p r2.Point) {
	if !d.active {
		return
	}
	d.end = p
}

// Release ends the gesture on pointer-up or pointer-leave. ok is true when the
// gesture produced a non-zero rectangle; page is the page captured at Down.
// The provisional rectangle is reset either way.
func (d *Drawing) Release(p r2.Point) (box models.BoundingBox, page int, ok bool) {
	if !d.active {
		return models.BoundingBox{}, 0, false
	}
	d.end = p
	box, err := Normalize(d.start, d.end)
	page = d.page
	*d = Drawing{}
	if err != nil {
		return models.BoundingBox{}, 0, false
	}
	return box, page, true
}

func (d *Drawing) Active() bool { return d.active }

// Provisional returns the raw corners of the in-progress rectangle, or all
// zeros while idle.
func (d *Drawing) Provisional() models.BoundingBox {
	if !d.active {
		return models.BoundingBox{}
	}
	return models.BoundingBox{d.start.X, d.start.Y, d.end.X, d.end.Y}
}
