package avro

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// canonicalContext threads the two pieces of state the emitter needs as it
// walks into nested schemas: the namespace currently in effect (so a
// nested name equal to it can be written bare) and the set of named
// schemas already fully written out (so a second reference to the same
// record/enum/fixed/error just writes its fullname).
type canonicalContext struct {
	namespace string
	seen      map[string]bool
}

// Canonical renders s as a JSON string. The first time a named schema
// (record, error, enum, fixed) is reached it is written in full and
// registered; every subsequent reference to that same fullname is written
// as just the quoted fullname, the same abbreviation Avro's own schema
// parser accepts. A name's namespace is omitted from the output whenever
// it's equal to the namespace currently in scope. Unknown attributes are
// emitted after the reserved keys, in the attribute map's insertion order
// (sorted key order for parsed schemas, see applyAttrs).
func Canonical(s *Schema) (string, error) {
	ctx := &canonicalContext{seen: make(map[string]bool)}
	var sb strings.Builder
	if err := ctx.write(&sb, s); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func jsonString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		// json.Marshal on a string cannot fail.
		return strconv.Quote(s)
	}
	return string(b)
}

func jsonValue(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", newRuntimeError("cannot render attribute value: %v", err)
	}
	return string(b), nil
}

func (ctx *canonicalContext) write(sb *strings.Builder, s *Schema) error {
	switch s.Type() {
	case Null, Boolean, Int, Long, Float, Double, Bytes, String:
		return ctx.writePrimitive(sb, s)
	case Array:
		return ctx.writeArray(sb, s)
	case Map:
		return ctx.writeMap(sb, s)
	case Union:
		return ctx.writeUnion(sb, s)
	case Record, Error:
		return ctx.writeRecord(sb, s)
	case Enum:
		return ctx.writeEnum(sb, s)
	case Fixed:
		return ctx.writeFixed(sb, s)
	default:
		return newRuntimeError("cannot render schema of unknown type")
	}
}

func (ctx *canonicalContext) writePrimitive(sb *strings.Builder, s *Schema) error {
	if s.LogicalType() == nil && s.Attributes().Len() == 0 {
		sb.WriteString(jsonString(s.Type().String()))
		return nil
	}
	sb.WriteByte('{')
	sb.WriteString(`"type":`)
	sb.WriteString(jsonString(s.Type().String()))
	if err := ctx.writeLogicalTypeAndAttrs(sb, s); err != nil {
		return err
	}
	sb.WriteByte('}')
	return nil
}

func (ctx *canonicalContext) writeArray(sb *strings.Builder, s *Schema) error {
	sb.WriteString(`{"type":"array","items":`)
	if err := ctx.write(sb, s.Element()); err != nil {
		return err
	}
	if err := ctx.writeLogicalTypeAndAttrs(sb, s); err != nil {
		return err
	}
	sb.WriteByte('}')
	return nil
}

func (ctx *canonicalContext) writeMap(sb *strings.Builder, s *Schema) error {
	sb.WriteString(`{"type":"map","values":`)
	if err := ctx.write(sb, s.Values()); err != nil {
		return err
	}
	if err := ctx.writeLogicalTypeAndAttrs(sb, s); err != nil {
		return err
	}
	sb.WriteByte('}')
	return nil
}

func (ctx *canonicalContext) writeUnion(sb *strings.Builder, s *Schema) error {
	sb.WriteByte('[')
	for i, b := range s.Branches() {
		if i > 0 {
			sb.WriteByte(',')
		}
		if err := ctx.write(sb, b); err != nil {
			return err
		}
	}
	sb.WriteByte(']')
	return nil
}

// writeNameFields writes the "name" and, when it would not be redundant
// with the enclosing namespace, "namespace" keys for a named schema. It
// returns the namespace the caller should enter while emitting this
// schema's children (fields, nested names).
func (ctx *canonicalContext) writeNameFields(sb *strings.Builder, s *Schema) string {
	nm := s.Name()
	if nm.Namespace() != "" && nm.Namespace() != ctx.namespace {
		sb.WriteString(`,"namespace":`)
		sb.WriteString(jsonString(nm.Namespace()))
	}
	sb.WriteString(`,"name":`)
	sb.WriteString(jsonString(nm.Simple()))
	return nm.Namespace()
}

func (ctx *canonicalContext) writeRecord(sb *strings.Builder, s *Schema) error {
	full := s.FullName()
	if ctx.seen[full] {
		sb.WriteString(jsonString(full))
		return nil
	}
	ctx.seen[full] = true

	typeName := "record"
	if s.Type() == Error {
		typeName = "error"
	}
	sb.WriteString(`{"type":"`)
	sb.WriteString(typeName)
	sb.WriteByte('"')
	childNamespace := ctx.writeNameFields(sb, s)

	if doc := s.Doc(); doc != nil {
		sb.WriteString(`,"doc":`)
		sb.WriteString(jsonString(*doc))
	}

	sb.WriteString(`,"fields":[`)
	child := &canonicalContext{namespace: childNamespace, seen: ctx.seen}
	for i, f := range s.Fields() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(`{"name":`)
		sb.WriteString(jsonString(f.Name()))
		sb.WriteString(`,"type":`)
		if err := child.write(sb, f.Type()); err != nil {
			return err
		}
		if def, ok := f.Default(); ok {
			v, err := jsonValue(def)
			if err != nil {
				return err
			}
			sb.WriteString(`,"default":`)
			sb.WriteString(v)
		}
		if f.Order() != Ascending {
			sb.WriteString(`,"order":"`)
			sb.WriteString(f.Order().String())
			sb.WriteByte('"')
		}
		if err := writeOrderedAttrs(sb, f.Attributes()); err != nil {
			return err
		}
		sb.WriteByte('}')
	}
	sb.WriteByte(']')

	if err := ctx.writeAliasesAndAttrs(sb, s); err != nil {
		return err
	}
	sb.WriteByte('}')
	return nil
}

func (ctx *canonicalContext) writeEnum(sb *strings.Builder, s *Schema) error {
	full := s.FullName()
	if ctx.seen[full] {
		sb.WriteString(jsonString(full))
		return nil
	}
	ctx.seen[full] = true

	sb.WriteString(`{"type":"enum"`)
	ctx.writeNameFields(sb, s)

	if doc := s.Doc(); doc != nil {
		sb.WriteString(`,"doc":`)
		sb.WriteString(jsonString(*doc))
	}

	sb.WriteString(`,"symbols":[`)
	for i, sym := range s.Symbols() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(jsonString(sym))
	}
	sb.WriteByte(']')

	if def := s.EnumDefault(); def != nil {
		sb.WriteString(`,"default":`)
		sb.WriteString(jsonString(*def))
	}

	if err := ctx.writeAliasesAndAttrs(sb, s); err != nil {
		return err
	}
	sb.WriteByte('}')
	return nil
}

func (ctx *canonicalContext) writeFixed(sb *strings.Builder, s *Schema) error {
	full := s.FullName()
	if ctx.seen[full] {
		sb.WriteString(jsonString(full))
		return nil
	}
	ctx.seen[full] = true

	sb.WriteString(`{"type":"fixed"`)
	ctx.writeNameFields(sb, s)
	sb.WriteString(`,"size":`)
	sb.WriteString(strconv.Itoa(s.Size()))

	if lt := s.LogicalType(); lt != nil {
		sb.WriteString(`,"logicalType":`)
		sb.WriteString(jsonString(*lt))
	}
	if err := ctx.writeAliasesAndAttrs(sb, s); err != nil {
		return err
	}
	sb.WriteByte('}')
	return nil
}

func (ctx *canonicalContext) writeAliases(sb *strings.Builder, s *Schema) error {
	aliases := s.Aliases()
	if len(aliases) == 0 {
		return nil
	}
	sb.WriteString(`,"aliases":[`)
	for i, a := range aliases {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(jsonString(a.Full()))
	}
	sb.WriteByte(']')
	return nil
}

func (ctx *canonicalContext) writeAliasesAndAttrs(sb *strings.Builder, s *Schema) error {
	if err := ctx.writeAliases(sb, s); err != nil {
		return err
	}
	return writeOrderedAttrs(sb, s.Attributes())
}

func (ctx *canonicalContext) writeLogicalTypeAndAttrs(sb *strings.Builder, s *Schema) error {
	if lt := s.LogicalType(); lt != nil {
		sb.WriteString(`,"logicalType":`)
		sb.WriteString(jsonString(*lt))
	}
	return writeOrderedAttrs(sb, s.Attributes())
}

func writeOrderedAttrs(sb *strings.Builder, attrs *OrderedMap) error {
	var outerErr error
	attrs.Range(func(key string, value interface{}) bool {
		v, err := jsonValue(value)
		if err != nil {
			outerErr = err
			return false
		}
		sb.WriteByte(',')
		sb.WriteString(jsonString(key))
		sb.WriteByte(':')
		sb.WriteString(v)
		return true
	})
	return outerErr
}
