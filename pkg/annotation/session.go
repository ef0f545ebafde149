package annotation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"invoice-annotator/pkg/models"
)

var (
	ErrSubmitInProgress   = errors.New("submit already in progress")
	ErrNotReady           = errors.New("required fields missing")
	ErrPersistenceFailure = errors.New("persistence failure")
	ErrUnknownEvent       = errors.New("unknown pointer event")
)

// Persister stores an exported annotation file for a document.
type Persister interface {
	Save(ctx context.Context, documentID string, annotations []models.ExportedAnnotation) error
}

// EventKind is one of the pointer events a viewer forwards.
type EventKind string

const (
	EventDown  EventKind = "down"
	EventMove  EventKind = "move"
	EventUp    EventKind = "up"
	EventLeave EventKind = "leave"
	EventClick EventKind = "click"
)

// Document describes the uploaded invoice a session edits.
type Document struct {
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
}

// Viewer holds the dimensions reported by the viewer on load.
type Viewer struct {
	NativeWidth    float64 `json:"nativeWidth"`
	NativeHeight   float64 `json:"nativeHeight"`
	ViewportHeight float64 `json:"viewportHeight"`
}

// Session is the editing state for one uploaded invoice. All methods are
// safe to call from multiple goroutines; they are serialized internally.
type Session struct {
	ID       string
	Document Document

	mu         sync.Mutex
	store      *Store
	selection  Selection
	drawing    Drawing
	pages      Pagination
	viewer     Viewer
	validator  *Validator
	submitting bool
}

func NewSession(doc Document) *Session {
	store := NewStore()
	return &Session{
		ID:        uuid.NewString(),
		Document:  doc,
		store:     store,
		pages:     newPagination(),
		validator: NewValidator(store),
	}
}

// SetViewer records the viewer's dimensions and page count.
func (s *Session) SetViewer(v Viewer, pageCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewer = v
	s.pages.SetTotal(pageCount)
}

// HandlePointer feeds one pointer event through the drawing state machine or,
// for clicks, the selection hit test. It returns the identifier of an
// annotation created by the event, if any.
func (s *Session) HandlePointer(kind EventKind, ev PointerEvent) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := Resolve(ev).Relative
	switch kind {
	case EventDown:
		s.drawing.Down(p, s.pages.Current)
	case EventMove:
		s.drawing.Move(p)
	case EventUp, EventLeave:
		box, page, ok := s.drawing.Release(p)
		if !ok {
			return "", nil
		}
		return s.store.Create(box, page), nil
	case EventClick:
		if id, ok := HitTest(s.store.All(), p, s.pages.Current); ok {
			s.selection.Select(id)
		} else {
			s.selection.Clear()
		}
	default:
		return "", fmt.Errorf("%q: %w", kind, ErrUnknownEvent)
	}
	return "", nil
}

func (s *Session) NextPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages.Next()
}

func (s *Session) PreviousPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages.Previous()
}

func (s *Session) UpdateField(id string, field Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.UpdateField(id, field, value)
}

// Delete removes an annotation and clears the selection if it pointed there.
func (s *Session) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(id); err != nil {
		return err
	}
	if s.selection.IsSelected(id) {
		s.selection.Clear()
	}
	return nil
}

// Select selects id from the field list. An empty id clears the selection;
// unknown ids are ignored.
func (s *Session) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" {
		s.selection.Clear()
		return
	}
	if _, ok := s.store.Get(id); ok {
		s.selection.Select(id)
	}
}

// Annotation returns one annotation with the ratio needed to map its box to
// native pixels.
func (s *Session) Annotation(id string) (models.Annotation, float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.store.Get(id)
	return a, ResizeRatio(s.viewer.NativeHeight, s.viewer.ViewportHeight), ok
}

// Subscribe forwards store changes to fn. fn runs with the session locked
// and must not call back into the session.
func (s *Session) Subscribe(fn func(Change)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	unsubscribe := s.store.Subscribe(fn)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		unsubscribe()
	}
}

// Submit exports the annotations, rescaled to native resolution, through p.
// Only one submit may be in flight. On failure the store is left as it was.
func (s *Session) Submit(ctx context.Context, p Persister) ([]models.ExportedAnnotation, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	if !s.validator.Ready() {
		s.mu.Unlock()
		return nil, ErrNotReady
	}
	exported := Export(s.store.All(), ResizeRatio(s.viewer.NativeHeight, s.viewer.ViewportHeight))
	s.submitting = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
	}()

	if err := p.Save(ctx, s.Document.FileName, exported); err != nil {
		return nil, fmt.Errorf("save %s: %w: %w", s.Document.FileName, ErrPersistenceFailure, err)
	}
	return exported, nil
}

// State is a read-only snapshot of a session as seen from one page.
type State struct {
	ID            string             `json:"id"`
	Document      Document           `json:"document"`
	Pagination    Pagination         `json:"pagination"`
	Annotations   []AnnotationView   `json:"annotations"`
	Selected      *string            `json:"selected"`
	Provisional   models.BoundingBox `json:"provisional"`
	Drawing       bool               `json:"drawing"`
	SubmitEnabled bool               `json:"submitEnabled"`
	Submitting    bool               `json:"submitting"`
	Missing       []models.FieldKind  `json:"missing"`
}

// AnnotationView is one row of the field list.
type AnnotationView struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Type         models.FieldKind   `json:"type"`
	CurrencyType models.Currency    `json:"currencyType,omitempty"`
	BoundingBox  models.BoundingBox `json:"boundingBox"`
	Page         int                `json:"page"`
	Visible      bool               `json:"visible"`
	Selected     bool               `json:"selected"`
}

// Snapshot returns the session state for page. A page of 0 means the page
// the viewer currently shows.
func (s *Session) Snapshot(page int) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if page == 0 {
		page = s.pages.Current
	}
	entries := s.store.ListForPage(page)
	views := make([]AnnotationView, 0, len(entries))
	for _, e := range entries {
		c, _ := e.Annotation.Field.Currency()
		views = append(views, AnnotationView{
			ID:           e.ID,
			Title:        e.Annotation.Title,
			Type:         e.Annotation.Field.Kind(),
			CurrencyType: c,
			BoundingBox:  e.Annotation.BoundingBox,
			Page:         e.Annotation.Page,
			Visible:      e.Visible,
			Selected:     s.selection.IsSelected(e.ID),
		})
	}

	st := State{
		ID:            s.ID,
		Document:      s.Document,
		Pagination:    s.pages,
		Annotations:   views,
		Provisional:   s.drawing.Provisional(),
		Drawing:       s.drawing.Active(),
		SubmitEnabled: s.validator.Ready() && !s.submitting,
		Submitting:    s.submitting,
		Missing:       MissingFields(s.store.All()),
	}
	if id, ok := s.selection.Current(); ok {
		st.Selected = &id
	}
	return st
}
