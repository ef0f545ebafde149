package annotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoice-annotator/pkg/models"
)

func TestSubmitReadyRequiresAllFour(t *testing.T) {
	st := NewStore()
	v := NewValidator(st)
	assert.False(t, v.Ready(), "empty store")
	assert.Equal(t, RequiredFields, MissingFields(st.All()))

	kinds := []string{"currency", "free_text", "total_amount", "", "date_purchase", "supplier_name"}
	for i, k := range kinds {
		id := st.Create(models.BoundingBox{0, 0, 1, 1}, 1)
		require.NoError(t, st.UpdateField(id, FieldType, k))
		if i < len(kinds)-1 {
			assert.False(t, v.Ready(), "after %s", k)
		}
	}
	assert.True(t, v.Ready())
	assert.Empty(t, MissingFields(st.All()))
}

func TestValidatorRecomputesOnChange(t *testing.T) {
	st := NewStore()
	var ids []string
	for _, k := range RequiredFields {
		id := st.Create(models.BoundingBox{0, 0, 1, 1}, 1)
		require.NoError(t, st.UpdateField(id, FieldType, string(k)))
		ids = append(ids, id)
	}
	v := NewValidator(st)
	assert.True(t, v.Ready())

	require.NoError(t, st.Delete(ids[0]))
	assert.False(t, v.Ready())
	assert.Equal(t, []models.FieldKind{models.FieldSupplierName}, MissingFields(st.All()))
}
