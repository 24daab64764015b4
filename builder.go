package avro

// Builder functions for constructing schemas programmatically: a record is
// built from field specs, an enum from a symbol list, and so on. Each
// function returns a ready-to-use *Schema (or an error for the shapes that
// can fail validation) instead of requiring a caller to populate Schema's
// unexported fields directly.

// FieldOption configures a fieldSpec built by Fld.
type FieldOption func(*fieldSpec)

// fieldSpec is the intermediate the builder uses so Rec can assign field
// positions itself rather than asking the caller to track them.
type fieldSpec struct {
	name    string
	schema  *Schema
	doc     *string
	order   FieldOrder
	aliases []string
	def     interface{}
	hasDef  bool
}

// Fld declares one record field; apply FieldOption values (Doc, Default,
// Order, Aliases) to set the optional parts.
func Fld(name string, schema *Schema, opts ...FieldOption) fieldSpec {
	spec := fieldSpec{name: name, schema: schema, order: Ascending}
	for _, opt := range opts {
		opt(&spec)
	}
	return spec
}

func Doc(doc string) FieldOption {
	return func(f *fieldSpec) { f.doc = &doc }
}

func Order(order FieldOrder) FieldOption {
	return func(f *fieldSpec) { f.order = order }
}

func Aliases(aliases ...string) FieldOption {
	return func(f *fieldSpec) { f.aliases = aliases }
}

// Default sets the field's default value; value must already be in the
// decoded-JSON-literal shape validateDefault expects (string, float64,
// bool, nil, []interface{}, map[string]interface{}).
func Default(value interface{}) FieldOption {
	return func(f *fieldSpec) { f.def = value; f.hasDef = true }
}

// Rec builds a record schema from field specs, validating each field's
// default (if any) against its schema exactly as the parser does.
func Rec(name Name, specs ...fieldSpec) (*Schema, error) {
	return buildRecord(name, false, specs)
}

// Err builds an error schema from field specs (Avro's error type is a
// record with the Error type tag instead of Record).
func Err(name Name, specs ...fieldSpec) (*Schema, error) {
	return buildRecord(name, true, specs)
}

func buildRecord(name Name, isError bool, specs []fieldSpec) (*Schema, error) {
	fields := make([]*Field, len(specs))
	for i, spec := range specs {
		f := NewField(spec.name, i, spec.schema)
		if spec.doc != nil {
			f.SetDoc(*spec.doc)
		}
		f.SetOrder(spec.order)
		if spec.aliases != nil {
			f.SetAliases(spec.aliases)
		}
		if spec.hasDef {
			if err := validateDefault(spec.schema, spec.def); err != nil {
				return nil, newTypeError("field %q: %v", spec.name, err)
			}
			f.SetDefault(spec.def)
		}
		fields[i] = f
	}
	return NewRecordSchema(name, fields, isError)
}

// Enm builds an enum schema; defaultSymbol is optional (pass "" for none).
func Enm(name Name, symbols []string, defaultSymbol string) (*Schema, error) {
	var def *string
	if defaultSymbol != "" {
		def = &defaultSymbol
	}
	return NewEnumSchema(name, symbols, def)
}

// Arr builds an array schema over element.
func Arr(element *Schema) *Schema { return NewArraySchema(element) }

// Mp builds a map schema over values.
func Mp(values *Schema) *Schema { return NewMapSchema(values) }

// Fix builds a fixed-size schema.
func Fix(name Name, size int) *Schema { return NewFixedSchema(name, size) }

// Un builds a union schema over branches.
func Un(branches ...*Schema) (*Schema, error) { return NewUnionSchema(branches...) }

// Prim returns the schema for one of the eight primitive types, a thin
// alias for NewPrimitiveSchema kept for symmetry with the rest of this
// file's short builder names.
func Prim(t Type) *Schema { return NewPrimitiveSchema(t) }
