package avro

// GenericDatum is a schema-shaped dynamic value: the Go-side representation
// of one instance of data conforming to a Schema, used by the generic
// reader/writer and by the binary/JSON codecs instead of requiring
// generated Go structs per record type.
//
// Invariants:
//   - a GenericDatum's schema never changes after construction;
//   - its value's shape always matches schema.Type() (a Record datum's
//     value is always a *RecordValue, etc.);
//   - accessing the value as the wrong Go type returns a *TypeError rather
//     than panicking;
//   - a Union datum's nested value is itself a full GenericDatum scoped to
//     whichever branch is currently selected;
//   - GenericDatum is not safe for concurrent mutation.
type GenericDatum struct {
	schema *Schema
	value  interface{}
}

// NewDatum allocates a zero-valued GenericDatum for schema: containers
// (record, array, map, union, enum, fixed) are allocated empty/zeroed
// rather than left nil, so callers can immediately start populating them.
func NewDatum(schema *Schema) *GenericDatum {
	d := &GenericDatum{schema: schema}
	switch schema.Type() {
	case Null:
		d.value = nil
	case Boolean:
		d.value = false
	case Int:
		d.value = int32(0)
	case Long:
		d.value = int64(0)
	case Float:
		d.value = float32(0)
	case Double:
		d.value = float64(0)
	case Bytes:
		d.value = []byte{}
	case String:
		d.value = ""
	case Record, Error:
		values := make([]*GenericDatum, len(schema.Fields()))
		for i, f := range schema.Fields() {
			values[i] = NewDatum(f.Type())
		}
		d.value = &RecordValue{schema: schema, values: values}
	case Array:
		d.value = &ArrayValue{schema: schema}
	case Map:
		d.value = &MapValue{schema: schema, entries: make(map[string]*GenericDatum)}
	case Union:
		d.value = &UnionValue{schema: schema, index: -1}
	case Enum:
		d.value = &EnumValue{schema: schema}
	case Fixed:
		d.value = &FixedValue{schema: schema, bytes: make([]byte, schema.Size())}
	}
	return d
}

func (d *GenericDatum) Schema() *Schema { return d.schema }
func (d *GenericDatum) Type() Type      { return d.schema.Type() }

func (d *GenericDatum) typeError(want Type) error {
	return newTypeError("cannot access %s datum as %s", d.schema.Type(), want)
}

// GetValue retrieves the datum's value as T. It is the dynamically-typed
// accessor for the primitive scalar kinds (bool, int32, int64, float32,
// float64, []byte, string); for containers use Record/Array/Map/Union/
// Enum/Fixed instead.
func GetValue[T any](d *GenericDatum) (T, error) {
	var zero T
	v, ok := d.value.(T)
	if !ok {
		return zero, newTypeError("datum of type %s does not hold a %T", d.schema.Type(), zero)
	}
	return v, nil
}

// SetValue stores v as the datum's scalar value. v's Go type must be the
// one that schema.Type() maps to (bool for Boolean, int32 for Int, int64
// for Long, float32 for Float, float64 for Double, []byte for Bytes,
// string for String); null accepts nil of any type.
func SetValue[T any](d *GenericDatum, v T) error {
	switch d.schema.Type() {
	case Null, Boolean, Int, Long, Float, Double, Bytes, String:
		// NewDatum seeds every non-null scalar with a zero value of its Go
		// type, so the current value's type is the one v must have.
		if _, ok := d.value.(T); !ok && d.schema.Type() != Null {
			return newTypeError("cannot set %T value on %s datum", v, d.schema.Type())
		}
		d.value = v
		return nil
	default:
		return newTypeError("cannot set scalar value on %s datum", d.schema.Type())
	}
}

func (d *GenericDatum) Record() (*RecordValue, error) {
	v, ok := d.value.(*RecordValue)
	if !ok {
		return nil, d.typeError(Record)
	}
	return v, nil
}

func (d *GenericDatum) Array() (*ArrayValue, error) {
	v, ok := d.value.(*ArrayValue)
	if !ok {
		return nil, d.typeError(Array)
	}
	return v, nil
}

func (d *GenericDatum) Map() (*MapValue, error) {
	v, ok := d.value.(*MapValue)
	if !ok {
		return nil, d.typeError(Map)
	}
	return v, nil
}

func (d *GenericDatum) Union() (*UnionValue, error) {
	v, ok := d.value.(*UnionValue)
	if !ok {
		return nil, d.typeError(Union)
	}
	return v, nil
}

func (d *GenericDatum) Enum() (*EnumValue, error) {
	v, ok := d.value.(*EnumValue)
	if !ok {
		return nil, d.typeError(Enum)
	}
	return v, nil
}

func (d *GenericDatum) Fixed() (*FixedValue, error) {
	v, ok := d.value.(*FixedValue)
	if !ok {
		return nil, d.typeError(Fixed)
	}
	return v, nil
}

// RecordValue is the container a Record/Error datum's value holds: one
// GenericDatum per field, addressable either by position or by name.
type RecordValue struct {
	schema *Schema
	values []*GenericDatum
}

func (r *RecordValue) Len() int { return len(r.values) }

// Get returns the datum of field name.
func (r *RecordValue) Get(name string) (*GenericDatum, error) {
	f, ok := r.schema.FieldByName(name)
	if !ok {
		return nil, newRuntimeError("%w: %q", ErrFieldNotFound, name)
	}
	return r.values[f.Position()], nil
}

// GetByIndex returns the datum at field position i.
func (r *RecordValue) GetByIndex(i int) (*GenericDatum, error) {
	if i < 0 || i >= len(r.values) {
		return nil, newRuntimeError("field index %d out of range", i)
	}
	return r.values[i], nil
}

// Set replaces the datum stored for field name.
func (r *RecordValue) Set(name string, value *GenericDatum) error {
	f, ok := r.schema.FieldByName(name)
	if !ok {
		return newRuntimeError("%w: %q", ErrFieldNotFound, name)
	}
	r.values[f.Position()] = value
	return nil
}

// ArrayValue is the growable, order-preserving container an Array datum's
// value holds.
type ArrayValue struct {
	schema *Schema
	items  []*GenericDatum
}

func (a *ArrayValue) Len() int { return len(a.items) }

// Append adds value as the new last element; value must conform to the
// array's element schema (checked by the caller/codec, not here).
func (a *ArrayValue) Append(value *GenericDatum) { a.items = append(a.items, value) }

func (a *ArrayValue) Get(i int) (*GenericDatum, error) {
	if i < 0 || i >= len(a.items) {
		return nil, newRuntimeError("array index %d out of range", i)
	}
	return a.items[i], nil
}

func (a *ArrayValue) Set(i int, value *GenericDatum) error {
	if i < 0 || i >= len(a.items) {
		return newRuntimeError("array index %d out of range", i)
	}
	a.items[i] = value
	return nil
}

// Items returns the backing slice directly; callers iterating read-only
// should prefer this over repeated Get calls.
func (a *ArrayValue) Items() []*GenericDatum { return a.items }

// MapValue is the string-keyed container a Map datum's value holds.
type MapValue struct {
	schema  *Schema
	entries map[string]*GenericDatum
}

func (m *MapValue) Len() int { return len(m.entries) }

func (m *MapValue) Get(key string) (*GenericDatum, bool) {
	v, ok := m.entries[key]
	return v, ok
}

func (m *MapValue) Set(key string, value *GenericDatum) { m.entries[key] = value }

func (m *MapValue) Delete(key string) { delete(m.entries, key) }

// Keys returns the map's keys in unspecified order (Avro's map type carries
// no ordering guarantee).
func (m *MapValue) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	return keys
}

// UnionValue is the tagged-branch container a Union datum's value holds:
// a selected branch index plus a nested GenericDatum scoped to that
// branch's schema.
type UnionValue struct {
	schema *Schema
	index  int
	value  *GenericDatum
}

func (u *UnionValue) Index() int            { return u.index }
func (u *UnionValue) Value() *GenericDatum  { return u.value }

// SetIndex selects branch i. If i differs from the currently selected
// branch (or nothing has been selected yet), a fresh GenericDatum for that
// branch's schema is allocated, discarding whatever was previously held;
// setting the already-selected index is a no-op that keeps the existing
// nested value.
func (u *UnionValue) SetIndex(i int) error {
	branches := u.schema.Branches()
	if i < 0 || i >= len(branches) {
		return newRuntimeError("union branch index %d out of range", i)
	}
	if i == u.index && u.value != nil {
		return nil
	}
	u.index = i
	u.value = NewDatum(branches[i])
	return nil
}

// EnumValue is the ordinal-based container an Enum datum's value holds.
type EnumValue struct {
	schema  *Schema
	ordinal int
}

func (e *EnumValue) Ordinal() int { return e.ordinal }

func (e *EnumValue) Symbol() (string, error) {
	symbols := e.schema.Symbols()
	if e.ordinal < 0 || e.ordinal >= len(symbols) {
		return "", newRuntimeError("%w: %d", ErrEnumOrdinalRange, e.ordinal)
	}
	return symbols[e.ordinal], nil
}

func (e *EnumValue) SetOrdinal(i int) error {
	if i < 0 || i >= len(e.schema.Symbols()) {
		return newRuntimeError("%w: %d", ErrEnumOrdinalRange, i)
	}
	e.ordinal = i
	return nil
}

func (e *EnumValue) SetSymbol(symbol string) error {
	i := e.schema.SymbolIndex(symbol)
	if i < 0 {
		return newRuntimeError("%w: %q", ErrEnumSymbolUnknown, symbol)
	}
	e.ordinal = i
	return nil
}

// FixedValue is the exact-size byte array a Fixed datum's value holds.
type FixedValue struct {
	schema *Schema
	bytes  []byte
}

func (f *FixedValue) Bytes() []byte { return f.bytes }

// SetBytes replaces the fixed value's contents; b must be exactly
// schema.Size() bytes long.
func (f *FixedValue) SetBytes(b []byte) error {
	if len(b) != f.schema.Size() {
		return newTypeError("fixed %s requires exactly %d bytes, got %d", f.schema.FullName(), f.schema.Size(), len(b))
	}
	f.bytes = b
	return nil
}
