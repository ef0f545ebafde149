package annotation

import (
	"github.com/golang/geo/r2"
)

// Selection holds at most one selected annotation identifier.
type Selection struct {
	id string
}

// Select sets the selection. Selecting the current id again keeps it
// selected; an empty id clears.
func (s *Selection) Select(id string) { s.id = id }

func (s *Selection) Clear() { s.id = "" }

// Current returns the selected identifier, if any.
func (s *Selection) Current() (string, bool) { return s.id, s.id != "" }

func (s *Selection) IsSelected(id string) bool { return id != "" && s.id == id }

// HitTest returns the first entry, in insertion order, whose box contains p
// (edges inclusive) and which lies on page.
func HitTest(entries []Entry, p r2.Point, page int) (string, bool) {
	for _, e := range entries {
		if e.Annotation.Page != page {
			continue
		}
		if toRect(e.Annotation.BoundingBox).ContainsPoint(p) {
			return e.ID, true
		}
	}
	return "", false
}
