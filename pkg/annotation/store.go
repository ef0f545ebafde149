package annotation

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"invoice-annotator/pkg/models"
)

// ErrMissingAnnotation is returned for updates and deletes of an identifier
// the store does not hold.
var ErrMissingAnnotation = errors.New("annotation not found")

// Field names an editable attribute of an annotation.
type Field string

const (
	FieldTitle        Field = "title"
	FieldType         Field = "fieldType"
	FieldCurrencyType Field = "currencyType"
)

// ChangeKind says what happened to the store.
type ChangeKind int

const (
	Created ChangeKind = iota
	Updated
	Deleted
)

// Change is passed to every subscriber after a mutation.
type Change struct {
	Kind    ChangeKind
	ID      string
	Version uint64
}

// Entry pairs an identifier with its annotation.
type Entry struct {
	ID         string
	Annotation models.Annotation
}

// PageEntry is an entry plus whether it is shown on the requested page.
type PageEntry struct {
	Entry
	Visible bool
}

// Store is an insertion-ordered collection of annotations keyed by a unique
// identifier. It is not safe for concurrent use; Session serializes access.
type Store struct {
	order     []string
	items     map[string]models.Annotation
	version   uint64
	observers map[int]func(Change)
	nextObs   int
	newID     func() string
}

func NewStore() *Store {
	return &Store{
		items:     make(map[string]models.Annotation),
		observers: make(map[int]func(Change)),
		newID:     uuid.NewString,
	}
}

// Create inserts an untitled, untyped annotation and returns its identifier.
func (s *Store) Create(box models.BoundingBox, page int) string {
	id := s.newID()
	for s.has(id) {
		id = s.newID()
	}
	s.items[id] = models.Annotation{BoundingBox: box, Page: page}
	s.order = append(s.order, id)
	s.notify(Created, id)
	return id
}

// UpdateField sets one attribute. Setting the field type to anything but
// currency drops the currency. Setting a currency on a non-currency field has
// no effect.
func (s *Store) UpdateField(id string, field Field, value string) error {
	a, ok := s.items[id]
	if !ok {
		return fmt.Errorf("update %s: %w", id, ErrMissingAnnotation)
	}

	switch field {
	case FieldTitle:
		a.Title = value
	case FieldType:
		kind, err := models.ParseFieldKind(value)
		if err != nil {
			return err
		}
		if kind != a.Field.Kind() {
			a.Field = models.TypeOf(kind)
		}
	case FieldCurrencyType:
		c, err := models.ParseCurrency(value)
		if err != nil {
			return err
		}
		if a.Field.Kind() != models.FieldCurrency {
			return nil
		}
		a.Field = models.CurrencyField(c)
	default:
		return fmt.Errorf("field %q: %w", field, models.ErrInvalidValue)
	}

	s.items[id] = a
	s.notify(Updated, id)
	return nil
}

// Delete removes the annotation. Clearing a selection that pointed at it is
// up to the caller.
func (s *Store) Delete(id string) error {
	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("delete %s: %w", id, ErrMissingAnnotation)
	}
	delete(s.items, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
	s.notify(Deleted, id)
	return nil
}

func (s *Store) Get(id string) (models.Annotation, bool) {
	a, ok := s.items[id]
	return a, ok
}

func (s *Store) has(id string) bool {
	_, ok := s.items[id]
	return ok
}

func (s *Store) Len() int { return len(s.order) }

// Version increases with every mutation.
func (s *Store) Version() uint64 { return s.version }

// All returns every entry in insertion order.
func (s *Store) All() []Entry {
	entries := make([]Entry, 0, len(s.order))
	for _, id := range s.order {
		entries = append(entries, Entry{ID: id, Annotation: s.items[id]})
	}
	return entries
}

// ListForPage returns every entry in insertion order, flagged visible when it
// belongs to page. Nothing is filtered out.
func (s *Store) ListForPage(page int) []PageEntry {
	entries := make([]PageEntry, 0, len(s.order))
	for _, e := range s.All() {
		entries = append(entries, PageEntry{Entry: e, Visible: e.Annotation.Page == page})
	}
	return entries
}

// Subscribe registers fn to be called synchronously after each mutation.
// The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Change)) func() {
	key := s.nextObs
	s.nextObs++
	s.observers[key] = fn
	return func() { delete(s.observers, key) }
}

func (s *Store) notify(kind ChangeKind, id string) {
	s.version++
	ch := Change{Kind: kind, ID: id, Version: s.version}
	for _, fn := range s.observers {
		fn(ch)
	}
}
