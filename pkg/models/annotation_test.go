package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldKind(t *testing.T) {
	for _, s := range []string{"", "supplier_name", "date_purchase", "total_amount", "currency", "free_text"} {
		k, err := ParseFieldKind(s)
		require.NoError(t, err)
		assert.Equal(t, FieldKind(s), k)
	}

	_, err := ParseFieldKind("iban")
	assert.True(t, errors.Is(err, ErrInvalidValue))
}

func TestParseCurrency(t *testing.T) {
	c, err := ParseCurrency("nok")
	require.NoError(t, err)
	assert.Equal(t, CurrencyNOK, c)

	c, err = ParseCurrency("")
	require.NoError(t, err)
	assert.Equal(t, CurrencyNone, c)

	_, err = ParseCurrency("usd")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestFieldTypeCurrencyOnlyOnCurrencyKind(t *testing.T) {
	_, ok := TypeOf(FieldFreeText).Currency()
	assert.False(t, ok)

	_, ok = TypeOf(FieldCurrency).Currency()
	assert.False(t, ok, "currency kind without a chosen currency")

	c, ok := CurrencyField(CurrencySEK).Currency()
	assert.True(t, ok)
	assert.Equal(t, CurrencySEK, c)
}

func TestAnnotationExportShape(t *testing.T) {
	a := Annotation{
		Title:       "Total",
		Field:       CurrencyField(CurrencyEUR),
		BoundingBox: BoundingBox{1, 2, 3, 4},
		Page:        2,
	}
	data, err := json.Marshal(a.Export())
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Total","type":"currency","boundingBox":[1,2,3,4],"misc":{"currencyType":"eur"},"page":2}`, string(data))

	a.Field = TypeOf(FieldSupplierName)
	data, err = json.Marshal(a.Export())
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Total","type":"supplier_name","boundingBox":[1,2,3,4],"misc":{},"page":2}`, string(data))
}

func TestBoundingBoxScale(t *testing.T) {
	b := BoundingBox{0, 0, 50, 50}
	assert.Equal(t, BoundingBox{0, 0, 100, 100}, b.Scale(2))
	assert.Equal(t, b, b.Scale(1))
	assert.Equal(t, 50.0, b.Width())
	assert.Equal(t, 50.0, b.Height())
}
