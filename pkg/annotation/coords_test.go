package annotation

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-annotator/pkg/models"
)

func TestResolve(t *testing.T) {
	pos := Resolve(PointerEvent{
		ClientX: 120, ClientY: 80,
		PageX: 120, PageY: 580,
		Target: ElementRect{Left: 20, Top: 30, Width: 400, Height: 600},
	})
	assert.Equal(t, r2.Point{X: 100, Y: 50}, pos.Relative)
	assert.Equal(t, r2.Point{X: 120, Y: 580}, pos.Absolute)
}

func TestNormalizeAllDirections(t *testing.T) {
	want := models.BoundingBox{10, 20, 40, 60}
	tests := []struct {
		name       string
		start, end r2.Point
	}{
		{"down-right", r2.Point{X: 10, Y: 20}, r2.Point{X: 40, Y: 60}},
		{"down-left", r2.Point{X: 40, Y: 20}, r2.Point{X: 10, Y: 60}},
		{"up-right", r2.Point{X: 10, Y: 60}, r2.Point{X: 40, Y: 20}},
		{"up-left", r2.Point{X: 40, Y: 60}, r2.Point{X: 10, Y: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box, err := Normalize(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, want, box)
			assert.LessOrEqual(t, box[0], box[2])
			assert.LessOrEqual(t, box[1], box[3])
		})
	}
}

func TestNormalizeRejectsZeroArea(t *testing.T) {
	for _, end := range []r2.Point{{X: 5, Y: 5}, {X: 5, Y: 30}, {X: 30, Y: 5}} {
		_, err := Normalize(r2.Point{X: 5, Y: 5}, end)
		assert.ErrorIs(t, err, ErrZeroArea)
	}
}
