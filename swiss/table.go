package swiss

import (
	"errors"

	"github.com/probeops/swisskit/pkg/types"
)

// Field and type spellings of the SwissTable internals. These are the only
// layout names the accessor depends on.
const (
	settingsField = "settings_"
	capacityField = "capacity_"
	sizeField     = "size_"
	controlField  = "control_"
	slotsField    = "slots_"

	sizeTupleField     = "compressed_tuple_"
	tupleValueField    = "value"
	storageWrapperName = "container_internal::internal_compressed_tuple::Storage"
	commonFieldsName   = "container_internal::CommonFields"
	slotTypeSuffix     = "::slot_type"
)

// Table reads one hash-map/hash-set instance through the oracle.
type Table struct {
	val types.Value
	res *Resolver
}

// NewTable wraps a container value. The value's declared type must be one of
// the four SwissTable containers; NewTable does not verify this, dispatch
// does.
func NewTable(val types.Value, res *Resolver) *Table {
	return &Table{val: val, res: res}
}

// Value returns the wrapped container value.
func (t *Table) Value() types.Value { return t.val }

// Settings locates the table's common-fields block. The block sits behind a
// zero-index, non-polymorphic compressed-tuple wrapper whose storage type
// must be cast explicitly: the hash/equality/allocator functors may not be
// zero-sized, which makes the wrapper's value member ambiguous without the
// cast.
//
// The storage type is tried under two spellings: first with the version
// namespace inserted into both the wrapper and its CommonFields argument,
// then with only the wrapper versioned. Oracles differ in whether an inline
// namespace inside a template argument is resolvable, so a type-not-found on
// the first spelling falls through to the second; any other failure
// propagates.
func (t *Table) Settings() (types.Value, error) {
	root := t.res.Config().RootNamespace
	spelled := root + storageWrapperName + "<" + root + commonFieldsName + ", 0, false>"

	primary, err := t.res.Qualify(spelled)
	if err != nil {
		return nil, err
	}
	fallback, err := t.res.QualifyOuter(spelled)
	if err != nil {
		return nil, err
	}

	storage, err := t.res.LookupType(primary)
	if err != nil {
		if !errors.Is(err, types.ErrTypeNotFound) {
			return nil, err
		}
		if storage, err = t.res.LookupType(fallback); err != nil {
			return nil, err
		}
	}

	settings, err := t.val.Field(settingsField)
	if err != nil {
		return nil, err
	}
	cast, err := settings.Cast(storage)
	if err != nil {
		return nil, err
	}
	return cast.Field(tupleValueField)
}

// Size returns the number of live elements. Depending on the compiled-in
// size policy the count lives either inside a nested compressed tuple or in
// a plain field next to the capacity; both are legitimate layouts, so the
// nested form is tried first and any failure falls back to the plain field.
func (t *Table) Size(settings types.Value) (uint64, error) {
	if tuple, err := settings.Field(sizeTupleField); err == nil {
		if v, err := tuple.Field(tupleValueField); err == nil {
			return v.Uint()
		}
	}
	v, err := settings.Field(sizeField)
	if err != nil {
		return 0, err
	}
	return v.Uint()
}

// Capacity returns the slot count of the backing arrays. It is always
// 2^n - 1, or 0 for a never-grown table.
func (t *Table) Capacity(settings types.Value) (uint64, error) {
	v, err := settings.Field(capacityField)
	if err != nil {
		return 0, err
	}
	return v.Uint()
}

// Len is the summary-path helper: settings plus live count in one call.
func (t *Table) Len() (uint64, error) {
	settings, err := t.Settings()
	if err != nil {
		return 0, err
	}
	return t.Size(settings)
}

// slotType resolves the container's slot_type from its stripped runtime
// name. The runtime name already carries the inline version namespace, so no
// insertion happens here; only the two-scope lookup applies.
func (t *Table) slotType() (types.Type, error) {
	name := t.val.Type().StripAliases().Name() + slotTypeSuffix
	st, err := t.res.LookupType(name)
	if err != nil {
		return nil, err
	}
	return st.StripAliases(), nil
}
