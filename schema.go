package avro

import "fmt"

// FieldOrder is the sort-order hint a record field carries for schema
// resolution (order comparison of two records under the same schema).
type FieldOrder int

const (
	Ascending FieldOrder = iota
	Descending
	Ignore
)

func (o FieldOrder) String() string {
	switch o {
	case Descending:
		return "descending"
	case Ignore:
		return "ignore"
	default:
		return "ascending"
	}
}

// Field is one member of a record or error schema: its name, its position
// among its siblings, the schema of its value, and the bookkeeping the
// parser and default-value validator need (doc string, JSON-encoded
// default, sort order, aliases, passthrough attributes).
type Field struct {
	name       string
	position   int
	schema     *Schema
	doc        *string
	hasDefault bool
	def        interface{}
	order      FieldOrder
	aliases    []string
	attrs      *OrderedMap
}

// NewField constructs a field. position is the field's zero-based index
// within its enclosing record, fixed at construction time since Avro field
// order is significant for the binary codec.
func NewField(name string, position int, schema *Schema) *Field {
	return &Field{name: name, position: position, schema: schema, order: Ascending, attrs: NewOrderedMap()}
}

func (f *Field) Name() string      { return f.name }
func (f *Field) Position() int     { return f.position }
func (f *Field) Type() *Schema     { return f.schema }
func (f *Field) Doc() *string      { return f.doc }
func (f *Field) Order() FieldOrder { return f.order }
func (f *Field) Aliases() []string { return f.aliases }
func (f *Field) Attributes() *OrderedMap {
	return f.attrs
}

// HasDefault distinguishes "no default was given" from "the default is the
// JSON literal null", which §4.2 requires: a schema can legitimately default
// a nullable field to null, but an absent default is a different condition
// (e.g. it makes the field mandatory when reading data written without it).
func (f *Field) HasDefault() bool { return f.hasDefault }

// Default returns the field's default value as a decoded JSON value
// (string, float64, bool, nil, []interface{}, map[string]interface{}), and
// whether a default was present at all.
func (f *Field) Default() (interface{}, bool) { return f.def, f.hasDefault }

func (f *Field) SetDoc(doc string) *Field           { f.doc = &doc; return f }
func (f *Field) SetOrder(order FieldOrder) *Field   { f.order = order; return f }
func (f *Field) SetAliases(aliases []string) *Field { f.aliases = aliases; return f }
func (f *Field) SetDefault(value interface{}) *Field {
	f.def = value
	f.hasDefault = true
	return f
}

// Schema is the algebraic sum type at the heart of the model: one struct,
// tagged by Type, carrying only the fields relevant to that tag. Unused
// fields for a given tag are left at their zero value. This shape (rather
// than one Go type per Avro kind) keeps the parser, the generic reader and
// writer, and the codecs all switching on a single tag instead of juggling
// an interface hierarchy.
type Schema struct {
	typ         Type
	logicalType *string
	attrs       *OrderedMap

	// Record / Error
	name       Name
	doc        *string
	fields     []*Field
	fieldIndex map[string]int
	aliases    []Name

	// Enum
	symbols     []string
	symbolIndex map[string]int
	enumDefault *string

	// Array
	element *Schema

	// Map
	values *Schema

	// Union
	branches []*Schema

	// Fixed
	size int
}

// NewPrimitiveSchema returns the Schema for one of the eight primitive
// types. t must satisfy Type.IsPrimitive.
func NewPrimitiveSchema(t Type) *Schema {
	if !t.IsPrimitive() {
		panic(fmt.Sprintf("avro: %s is not a primitive type", t))
	}
	return &Schema{typ: t, attrs: NewOrderedMap()}
}

// NewArraySchema returns an array Schema whose items conform to element.
func NewArraySchema(element *Schema) *Schema {
	return &Schema{typ: Array, element: element, attrs: NewOrderedMap()}
}

// NewMapSchema returns a map Schema (string keys implicit) whose values
// conform to values.
func NewMapSchema(values *Schema) *Schema {
	return &Schema{typ: Map, values: values, attrs: NewOrderedMap()}
}

// NewFixedSchema returns a fixed-size byte-array Schema of the given size.
func NewFixedSchema(name Name, size int) *Schema {
	return &Schema{typ: Fixed, name: name, size: size, attrs: NewOrderedMap()}
}

// NewEnumSchema returns an enum Schema over symbols, which must be distinct
// and each a valid Avro name. defaultSymbol, if non-nil, must be one of
// symbols.
func NewEnumSchema(name Name, symbols []string, defaultSymbol *string) (*Schema, error) {
	idx := make(map[string]int, len(symbols))
	for i, sym := range symbols {
		if !ValidName(sym) {
			return nil, newSchemaParseError("invalid enum symbol %q in %s", sym, name.Full())
		}
		if _, dup := idx[sym]; dup {
			return nil, newSchemaParseError("duplicate enum symbol %q in %s", sym, name.Full())
		}
		idx[sym] = i
	}
	if defaultSymbol != nil {
		if _, ok := idx[*defaultSymbol]; !ok {
			return nil, newSchemaParseError("enum default %q is not a symbol of %s", *defaultSymbol, name.Full())
		}
	}
	return &Schema{
		typ: Enum, name: name, symbols: symbols, symbolIndex: idx, enumDefault: defaultSymbol,
		attrs: NewOrderedMap(),
	}, nil
}

// NewRecordSchema returns a record (or, if isError is true, an error)
// Schema over fields. Field positions must already be 0..len(fields)-1 in
// order; field names must be distinct within the record.
func NewRecordSchema(name Name, fields []*Field, isError bool) (*Schema, error) {
	idx := make(map[string]int, len(fields))
	for i, f := range fields {
		if _, dup := idx[f.name]; dup {
			return nil, newSchemaParseError("duplicate field name %q in record %s", f.name, name.Full())
		}
		idx[f.name] = i
	}
	typ := Record
	if isError {
		typ = Error
	}
	return &Schema{typ: typ, name: name, fields: fields, fieldIndex: idx, attrs: NewOrderedMap()}, nil
}

// NewUnionSchema returns a union over branches, enforcing both of Avro's
// structural invariants: a union may not directly nest another union, and
// no two branches may share the same full type identity (two branches of
// the same primitive type, or two named branches with the same fullname,
// are both forbidden; two differently-named records are fine).
func NewUnionSchema(branches ...*Schema) (*Schema, error) {
	seen := make(map[string]bool, len(branches))
	for _, b := range branches {
		if b.typ == Union {
			return nil, newRuntimeError("union may not immediately contain another union")
		}
		key := unionBranchKey(b)
		if seen[key] {
			return nil, newRuntimeError("union contains more than one branch of type %s", key)
		}
		seen[key] = true
	}
	return &Schema{typ: Union, branches: branches, attrs: NewOrderedMap()}, nil
}

// unionBranchKey is the identity Avro uses to detect duplicate union
// branches: the type name for primitives/arrays/maps, the fullname for
// named types.
func unionBranchKey(s *Schema) string {
	if s.typ.IsNamed() {
		return s.name.Full()
	}
	return s.typ.String()
}

func (s *Schema) Type() Type { return s.typ }

// Name is the zero Name for any schema that is not record/error/enum/fixed.
func (s *Schema) Name() Name { return s.name }

// FullName is a convenience for Name().Full().
func (s *Schema) FullName() string { return s.name.Full() }

func (s *Schema) Doc() *string {
	switch s.typ {
	case Record, Error, Enum, Fixed:
		return s.doc
	default:
		return nil
	}
}

func (s *Schema) SetDoc(doc string) *Schema { s.doc = &doc; return s }

func (s *Schema) Fields() []*Field { return s.fields }

// FieldByName looks up a record/error field by name.
func (s *Schema) FieldByName(name string) (*Field, bool) {
	i, ok := s.fieldIndex[name]
	if !ok {
		return nil, false
	}
	return s.fields[i], true
}

func (s *Schema) Aliases() []Name { return s.aliases }
func (s *Schema) SetAliases(aliases []Name) *Schema {
	s.aliases = aliases
	return s
}

func (s *Schema) Symbols() []string { return s.symbols }

// SymbolIndex returns the ordinal of symbol within an enum, or -1 if it is
// not a symbol of this schema.
func (s *Schema) SymbolIndex(symbol string) int {
	if i, ok := s.symbolIndex[symbol]; ok {
		return i
	}
	return -1
}

func (s *Schema) EnumDefault() *string { return s.enumDefault }

func (s *Schema) Element() *Schema { return s.element }
func (s *Schema) Values() *Schema  { return s.values }
func (s *Schema) Branches() []*Schema {
	return s.branches
}
func (s *Schema) Size() int { return s.size }

// LogicalType returns the optional logical-type annotation (e.g. "decimal",
// "uuid"), carried but never interpreted by this package.
func (s *Schema) LogicalType() *string { return s.logicalType }
func (s *Schema) SetLogicalType(lt string) *Schema {
	s.logicalType = &lt
	return s
}

// Attributes returns the bag of JSON attributes this schema carried that
// were not one of the reserved keywords the parser understands.
func (s *Schema) Attributes() *OrderedMap {
	if s.attrs == nil {
		s.attrs = NewOrderedMap()
	}
	return s.attrs
}

// String renders the schema as its canonical JSON form.
func (s *Schema) String() string {
	out, err := Canonical(s)
	if err != nil {
		return fmt.Sprintf("<invalid schema: %v>", err)
	}
	return out
}

// Fingerprint is the canonical JSON string of the schema. It is stable under
// attribute reordering and under re-parsing, making it usable as a cache or
// map key without computing a hash.
func (s *Schema) Fingerprint() string {
	out, err := Canonical(s)
	if err != nil {
		return ""
	}
	return out
}
