package models

import (
	"errors"
	"fmt"
)

// ErrInvalidValue is returned when a field type or currency string is not one
// of the known values.
var ErrInvalidValue = errors.New("invalid value")

// FieldKind is the label a user assigns to a drawn region.
type FieldKind string

const (
	FieldUnset        FieldKind = ""
	FieldSupplierName FieldKind = "supplier_name"
	FieldDatePurchase FieldKind = "date_purchase"
	FieldTotalAmount  FieldKind = "total_amount"
	FieldCurrency     FieldKind = "currency"
	FieldFreeText     FieldKind = "free_text"
)

// ParseFieldKind accepts the exported type names plus the empty string,
// which means "no type chosen yet".
func ParseFieldKind(s string) (FieldKind, error) {
	switch k := FieldKind(s); k {
	case FieldUnset, FieldSupplierName, FieldDatePurchase, FieldTotalAmount, FieldCurrency, FieldFreeText:
		return k, nil
	}
	return FieldUnset, fmt.Errorf("field type %q: %w", s, ErrInvalidValue)
}

// Currency is the payload of a currency field.
type Currency string

const (
	CurrencyNone Currency = ""
	CurrencyEUR  Currency = "eur"
	CurrencyNOK  Currency = "nok"
	CurrencySEK  Currency = "sek"
	CurrencyDKK  Currency = "dkk"
)

// Currencies lists the selectable currencies in display order.
var Currencies = []Currency{CurrencyEUR, CurrencyNOK, CurrencySEK, CurrencyDKK}

// ParseCurrency accepts one of Currencies or the empty string.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(s)
	if c == CurrencyNone {
		return c, nil
	}
	for _, known := range Currencies {
		if c == known {
			return c, nil
		}
	}
	return CurrencyNone, fmt.Errorf("currency %q: %w", s, ErrInvalidValue)
}

// FieldType is a closed variant over FieldKind. Only the currency kind carries
// a payload, so a currency on a non-currency field cannot be represented.
type FieldType struct {
	kind     FieldKind
	currency Currency
}

// TypeOf returns the variant for kind. A currency variant built this way has
// no currency chosen yet.
func TypeOf(kind FieldKind) FieldType {
	return FieldType{kind: kind}
}

// CurrencyField returns the currency variant carrying c.
func CurrencyField(c Currency) FieldType {
	return FieldType{kind: FieldCurrency, currency: c}
}

func (f FieldType) Kind() FieldKind { return f.kind }

// Currency returns the payload of a currency field. ok is false for every
// other kind and for a currency field with nothing chosen.
func (f FieldType) Currency() (c Currency, ok bool) {
	if f.kind != FieldCurrency || f.currency == CurrencyNone {
		return CurrencyNone, false
	}
	return f.currency, true
}

// BoundingBox holds x1, y1, x2, y2 with x1 <= x2 and y1 <= y2.
type BoundingBox [4]float64

func (b BoundingBox) Width() float64  { return b[2] - b[0] }
func (b BoundingBox) Height() float64 { return b[3] - b[1] }

// Scale multiplies every coordinate by ratio.
func (b BoundingBox) Scale(ratio float64) BoundingBox {
	return BoundingBox{b[0] * ratio, b[1] * ratio, b[2] * ratio, b[3] * ratio}
}

// Annotation is one labeled region of an invoice page.
type Annotation struct {
	Title       string
	Field       FieldType
	BoundingBox BoundingBox
	Page        int
}

// Export converts the annotation into its JSON file shape.
func (a Annotation) Export() ExportedAnnotation {
	e := ExportedAnnotation{
		Title:       a.Title,
		Type:        string(a.Field.Kind()),
		BoundingBox: a.BoundingBox,
		Page:        a.Page,
	}
	if c, ok := a.Field.Currency(); ok {
		e.Misc.CurrencyType = string(c)
	}
	return e
}

// ExportedAnnotation is one entry of the exported annotation file.
type ExportedAnnotation struct {
	Title       string      `json:"title"`
	Type        string      `json:"type"`
	BoundingBox BoundingBox `json:"boundingBox"`
	Misc        Misc        `json:"misc"`
	Page        int         `json:"page"`
}

type Misc struct {
	CurrencyType string `json:"currencyType,omitempty"`
}
