package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-annotator/pkg/models"
)

func TestStoreCreateDistinctIDs(t *testing.T) {
	s := NewStore()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := s.Create(models.BoundingBox{0, 0, 1, 1}, 1)
		require.False(t, seen[id], "identifier reused: %s", id)
		seen[id] = true
	}
	assert.Equal(t, 100, s.Len())
}

func TestStoreCreateRetriesCollidingID(t *testing.T) {
	s := NewStore()
	ids := []string{"a", "a", "b"}
	s.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	assert.Equal(t, "a", s.Create(models.BoundingBox{0, 0, 1, 1}, 1))
	assert.Equal(t, "b", s.Create(models.BoundingBox{0, 0, 1, 1}, 1))
}

func TestStoreCreateDefaults(t *testing.T) {
	s := NewStore()
	id := s.Create(models.BoundingBox{1, 2, 3, 4}, 2)

	a, ok := s.Get(id)
	require.True(t, ok)
	assert.Empty(t, a.Title)
	assert.Equal(t, models.FieldUnset, a.Field.Kind())
	_, hasCurrency := a.Field.Currency()
	assert.False(t, hasCurrency)
	assert.Equal(t, models.BoundingBox{1, 2, 3, 4}, a.BoundingBox)
	assert.Equal(t, 2, a.Page)
}

func TestStoreUpdateFieldCurrency(t *testing.T) {
	s := NewStore()
	id := s.Create(models.BoundingBox{0, 0, 10, 10}, 1)

	require.NoError(t, s.UpdateField(id, FieldType, "currency"))
	require.NoError(t, s.UpdateField(id, FieldCurrencyType, "dkk"))
	a, _ := s.Get(id)
	assert.Equal(t, models.FieldCurrency, a.Field.Kind())
	c, ok := a.Field.Currency()
	assert.True(t, ok)
	assert.Equal(t, models.CurrencyDKK, c)

	// re-selecting currency keeps the chosen value
	require.NoError(t, s.UpdateField(id, FieldType, "currency"))
	a, _ = s.Get(id)
	_, ok = a.Field.Currency()
	assert.True(t, ok)

	require.NoError(t, s.UpdateField(id, FieldType, "free_text"))
	a, _ = s.Get(id)
	assert.Equal(t, models.FieldFreeText, a.Field.Kind())
	_, ok = a.Field.Currency()
	assert.False(t, ok)
}

func TestStoreUpdateCurrencyOnOtherKindIgnored(t *testing.T) {
	s := NewStore()
	id := s.Create(models.BoundingBox{0, 0, 10, 10}, 1)
	require.NoError(t, s.UpdateField(id, FieldType, "total_amount"))
	v := s.Version()

	require.NoError(t, s.UpdateField(id, FieldCurrencyType, "eur"))
	a, _ := s.Get(id)
	_, ok := a.Field.Currency()
	assert.False(t, ok)
	assert.Equal(t, v, s.Version())
}

func TestStoreUpdateFieldErrors(t *testing.T) {
	s := NewStore()
	id := s.Create(models.BoundingBox{0, 0, 10, 10}, 1)

	assert.ErrorIs(t, s.UpdateField("nope", FieldTitle, "x"), ErrMissingAnnotation)
	assert.ErrorIs(t, s.UpdateField(id, FieldType, "iban"), models.ErrInvalidValue)
	assert.ErrorIs(t, s.UpdateField(id, Field("colour"), "red"), models.ErrInvalidValue)

	require.NoError(t, s.UpdateField(id, FieldType, "currency"))
	assert.ErrorIs(t, s.UpdateField(id, FieldCurrencyType, "usd"), models.ErrInvalidValue)

	require.NoError(t, s.UpdateField(id, FieldTitle, "Seller"))
	a, _ := s.Get(id)
	assert.Equal(t, "Seller", a.Title)
}

func TestStoreDeleteKeepsOrder(t *testing.T) {
	s := NewStore()
	a := s.Create(models.BoundingBox{0, 0, 1, 1}, 1)
	b := s.Create(models.BoundingBox{0, 0, 1, 1}, 1)
	c := s.Create(models.BoundingBox{0, 0, 1, 1}, 1)

	before := s.All()
	require.NoError(t, s.Delete(b))
	assert.ErrorIs(t, s.Delete(b), ErrMissingAnnotation)

	var ids []string
	for _, e := range s.All() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{a, c}, ids)
	assert.Len(t, before, 3, "earlier snapshots are not affected")
}

func TestStoreListForPage(t *testing.T) {
	s := NewStore()
	p2 := s.Create(models.BoundingBox{0, 0, 1, 1}, 2)
	p1 := s.Create(models.BoundingBox{0, 0, 1, 1}, 1)
	p3 := s.Create(models.BoundingBox{0, 0, 1, 1}, 3)

	for page, visible := range map[int]string{1: p1, 2: p2, 3: p3} {
		entries := s.ListForPage(page)
		require.Len(t, entries, 3)
		assert.Equal(t, []string{p2, p1, p3}, []string{entries[0].ID, entries[1].ID, entries[2].ID})
		for _, e := range entries {
			assert.Equal(t, e.ID == visible, e.Visible, "page %d entry %s", page, e.ID)
		}
	}
}

func TestStoreSubscribe(t *testing.T) {
	s := NewStore()
	var changes []Change
	unsubscribe := s.Subscribe(func(c Change) { changes = append(changes, c) })

	id := s.Create(models.BoundingBox{0, 0, 1, 1}, 1)
	require.NoError(t, s.UpdateField(id, FieldTitle, "x"))
	require.NoError(t, s.Delete(id))

	require.Len(t, changes, 3)
	assert.Equal(t, Change{Kind: Created, ID: id, Version: 1}, changes[0])
	assert.Equal(t, Change{Kind: Updated, ID: id, Version: 2}, changes[1])
	assert.Equal(t, Change{Kind: Deleted, ID: id, Version: 3}, changes[2])

	unsubscribe()
	s.Create(models.BoundingBox{0, 0, 1, 1}, 1)
	assert.Len(t, changes, 3)
	assert.Equal(t, uint64(4), s.Version())
}
