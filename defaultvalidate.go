package avro

import "math"

// validateDefault checks that raw (a value already decoded from JSON, i.e.
// one of nil, bool, float64, string, []interface{}, map[string]interface{})
// is an acceptable default for schema, per §4.2 of the schema-parsing
// algorithm. A JSON null is accepted unconditionally for any schema type:
// it represents "no default was actually supplied", a distinction the
// caller (the parser, via Field.HasDefault) tracks separately from whether
// the value itself type-checks.
//
// Any mismatch is a type error (ErrAvroType), not a structural parse
// error: the schema document itself is well-formed, only the default
// value's shape disagrees with the field's declared type.
func validateDefault(schema *Schema, raw interface{}) error {
	if raw == nil {
		return nil
	}

	switch schema.Type() {
	case Null:
		return newTypeError("default for null schema must be JSON null")

	case Boolean:
		if _, ok := raw.(bool); !ok {
			return newTypeError("default for boolean schema must be a JSON boolean")
		}
		return nil

	case Int:
		n, ok := raw.(float64)
		if !ok {
			return newTypeError("default for int schema must be a JSON number")
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return newTypeError("default %v out of int32 range", n)
		}
		return nil

	case Long:
		if _, ok := raw.(float64); !ok {
			return newTypeError("default for long schema must be a JSON number")
		}
		return nil

	case Float, Double:
		if _, ok := raw.(float64); !ok {
			return newTypeError("default for %s schema must be a JSON number", schema.Type())
		}
		return nil

	case Bytes, String, Enum, Fixed:
		if _, ok := raw.(string); !ok {
			return newTypeError("default for %s schema must be a JSON string", schema.Type())
		}
		return nil

	case Array:
		elems, ok := raw.([]interface{})
		if !ok {
			return newTypeError("default for array schema must be a JSON array")
		}
		for i, e := range elems {
			if err := validateDefault(schema.Element(), e); err != nil {
				return newTypeError("array default element %d: %v", i, err)
			}
		}
		return nil

	case Map:
		obj, ok := raw.(map[string]interface{})
		if !ok {
			return newTypeError("default for map schema must be a JSON object")
		}
		for k, v := range obj {
			if err := validateDefault(schema.Values(), v); err != nil {
				return newTypeError("map default value %q: %v", k, err)
			}
		}
		return nil

	case Union:
		branches := schema.Branches()
		if len(branches) == 0 {
			return newTypeError("union has no branches")
		}
		if err := validateDefault(branches[0], raw); err != nil {
			return newTypeError("union default must validate against its first branch: %v", err)
		}
		return nil

	case Record, Error:
		obj, ok := raw.(map[string]interface{})
		if !ok {
			return newTypeError("default for record schema must be a JSON object")
		}
		for _, f := range schema.Fields() {
			if v, present := obj[f.Name()]; present {
				if err := validateDefault(f.Type(), v); err != nil {
					return newTypeError("record default field %q: %v", f.Name(), err)
				}
				continue
			}
			if fdef, hasDefault := f.Default(); hasDefault {
				if err := validateDefault(f.Type(), fdef); err != nil {
					return newTypeError("record default field %q: falls back to field default which is itself invalid: %v", f.Name(), err)
				}
				continue
			}
			return newTypeError("record default missing field %q with no field-level default", f.Name())
		}
		return nil
	}

	return newTypeError("unknown schema type in default validation")
}
