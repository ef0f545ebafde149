package annotation

import (
	"invoice-annotator/pkg/models"
)

// RequiredFields must each be present on at least one annotation before the
// annotations can be exported.
var RequiredFields = []models.FieldKind{
	models.FieldSupplierName,
	models.FieldDatePurchase,
	models.FieldTotalAmount,
	models.FieldCurrency,
}

// MissingFields returns the required kinds no entry carries, in
// RequiredFields order.
func MissingFields(entries []Entry) []models.FieldKind {
	present := make(map[models.FieldKind]bool, len(RequiredFields))
	for _, e := range entries {
		present[e.Annotation.Field.Kind()] = true
	}
	var missing []models.FieldKind
	for _, k := range RequiredFields {
		if !present[k] {
			missing = append(missing, k)
		}
	}
	return missing
}

// SubmitReady reports whether every required field kind is covered.
func SubmitReady(entries []Entry) bool {
	return len(MissingFields(entries)) == 0
}

// Validator memoizes SubmitReady for one store, keyed on its version.
type Validator struct {
	store   *Store
	version uint64
	primed  bool
	ready   bool
}

func NewValidator(store *Store) *Validator {
	return &Validator{store: store}
}

func (v *Validator) Ready() bool {
	if !v.primed || v.version != v.store.Version() {
		v.ready = SubmitReady(v.store.All())
		v.version = v.store.Version()
		v.primed = true
	}
	return v.ready
}
