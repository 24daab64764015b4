package avro

import (
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// reserved keys the parser itself interprets for each node shape; anything
// else in the JSON object becomes a passthrough attribute.
var (
	primitiveReserved = map[string]bool{"type": true, "logicalType": true}
	recordReserved    = map[string]bool{"type": true, "name": true, "namespace": true, "doc": true, "fields": true, "aliases": true}
	fieldReserved     = map[string]bool{"name": true, "type": true, "doc": true, "default": true, "order": true, "aliases": true}
	enumReserved      = map[string]bool{"type": true, "name": true, "namespace": true, "doc": true, "symbols": true, "default": true, "aliases": true}
	arrayReserved     = map[string]bool{"type": true, "items": true}
	mapReserved       = map[string]bool{"type": true, "values": true}
	fixedReserved     = map[string]bool{"type": true, "name": true, "namespace": true, "size": true, "aliases": true, "logicalType": true}
)

// ParseBytes parses Avro schema text (JSON) into a Schema.
func ParseBytes(data []byte) (*Schema, error) {
	tree, err := decodeJSONTree(data)
	if err != nil {
		return nil, newSchemaParseError("invalid schema JSON: %v", err)
	}
	return parseValue(tree, NewSchemaTable())
}

// ParseString parses Avro schema text supplied as a string.
func ParseString(s string) (*Schema, error) { return ParseBytes([]byte(s)) }

// ParseYAML parses Avro schema text authored as YAML, decoding it into the
// same generic tree shape ParseBytes builds from JSON before handing off to
// the one shared recursive walker.
func ParseYAML(data []byte) (*Schema, error) {
	tree, err := decodeYAMLTree(data)
	if err != nil {
		return nil, newSchemaParseError("invalid schema YAML: %v", err)
	}
	return parseValue(tree, NewSchemaTable())
}

// decodeJSONTree and decodeYAMLTree are the decoders behind the
// "application/json" and "application/x-yaml" entries a Registry
// pre-registers; ParseBytes/ParseYAML call them directly so a bare parse
// doesn't need a Registry at all.
func decodeJSONTree(data []byte) (interface{}, error) {
	var tree interface{}
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

func decodeYAMLTree(data []byte) (interface{}, error) {
	var tree interface{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return normalizeYAMLTree(tree), nil
}

// normalizeYAMLTree rewrites map[interface{}]interface{} nodes (which some
// YAML decoders produce for mapping nodes) into map[string]interface{}, and
// integer scalars into float64, so the rest of the parser only ever has to
// handle the JSON-shaped tree.
func normalizeYAMLTree(v interface{}) interface{} {
	switch val := v.(type) {
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case uint64:
		return float64(val)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, e := range val {
			out[k] = normalizeYAMLTree(e)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, e := range val {
			if ks, ok := k.(string); ok {
				out[ks] = normalizeYAMLTree(e)
			}
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, e := range val {
			out[i] = normalizeYAMLTree(e)
		}
		return out
	default:
		return v
	}
}

// parseValue is the single recursive walker every entry point funnels
// through: a string node names a type (primitive or a reference to an
// already-registered name), an array node is a union, and an object node
// dispatches on its "type" key.
func parseValue(v interface{}, table *SchemaTable) (*Schema, error) {
	switch val := v.(type) {
	case string:
		return parseNameReference(val, table)
	case []interface{}:
		return parseUnion(val, table)
	case map[string]interface{}:
		return parseObject(val, table)
	default:
		return nil, newSchemaParseError("unexpected schema node of type %T", v)
	}
}

func parseNameReference(name string, table *SchemaTable) (*Schema, error) {
	if t, ok := primitiveType(name); ok {
		return NewPrimitiveSchema(t), nil
	}
	full := qualify(name, table.Namespace()).Full()
	if s, ok := table.Lookup(full); ok {
		return s, nil
	}
	if s, ok := table.Lookup(name); ok {
		return s, nil
	}
	return nil, newSchemaParseError("unknown type name %q", name)
}

func parseUnion(items []interface{}, table *SchemaTable) (*Schema, error) {
	branches := make([]*Schema, len(items))
	for i, item := range items {
		s, err := parseValue(item, table)
		if err != nil {
			return nil, err
		}
		branches[i] = s
	}
	return NewUnionSchema(branches...)
}

func parseObject(m map[string]interface{}, table *SchemaTable) (*Schema, error) {
	typVal, ok := m["type"]
	if !ok {
		return nil, newSchemaParseError("schema object missing \"type\"")
	}

	switch tv := typVal.(type) {
	case []interface{}:
		return parseUnion(tv, table)
	case string:
		switch tv {
		case "null", "boolean", "int", "long", "float", "double", "bytes", "string":
			t, _ := primitiveType(tv)
			s := NewPrimitiveSchema(t)
			applyLogicalType(s, m)
			applyAttrs(table, s.Attributes(), m, primitiveReserved)
			return s, nil
		case "record", "error":
			return parseRecord(tv == "error", m, table)
		case "enum":
			return parseEnum(m, table)
		case "array":
			return parseArray(m, table)
		case "map":
			return parseMap(m, table)
		case "fixed":
			return parseFixed(m, table)
		default:
			return parseNameReference(tv, table)
		}
	default:
		return nil, newSchemaParseError("\"type\" must be a string or an array")
	}
}

func resolveName(m map[string]interface{}, table *SchemaTable) (Name, error) {
	raw, ok := m["name"].(string)
	if !ok || raw == "" {
		return Name{}, newSchemaParseError("missing required \"name\"")
	}
	if !strings.Contains(raw, ".") {
		if !ValidName(raw) {
			return Name{}, newSchemaParseError("invalid name %q", raw)
		}
	}
	defaultNS := table.Namespace()
	if ns, ok := m["namespace"].(string); ok && ns != "" {
		defaultNS = ns
	}
	return qualify(raw, defaultNS), nil
}

func parseRecord(isError bool, m map[string]interface{}, table *SchemaTable) (*Schema, error) {
	nm, err := resolveName(m, table)
	if err != nil {
		return nil, err
	}

	typ := Record
	if isError {
		typ = Error
	}
	s := &Schema{typ: typ, name: nm, attrs: NewOrderedMap()}
	if err := table.Add(nm, s); err != nil {
		return nil, err
	}

	prevNS := table.EnterNamespace(nm.Namespace())
	defer table.Restore(prevNS)

	fieldsRaw, ok := m["fields"].([]interface{})
	if !ok {
		return nil, newSchemaParseError("record %s must have an array of fields", nm.Full())
	}
	fields := make([]*Field, len(fieldsRaw))
	fieldIndex := make(map[string]int, len(fieldsRaw))
	for i, fr := range fieldsRaw {
		f, err := parseField(fr, i, table)
		if err != nil {
			return nil, err
		}
		if _, dup := fieldIndex[f.Name()]; dup {
			return nil, newSchemaParseError("duplicate field name %q in record %s", f.Name(), nm.Full())
		}
		fieldIndex[f.Name()] = i
		fields[i] = f
	}
	s.fields = fields
	s.fieldIndex = fieldIndex

	if doc, ok := m["doc"].(string); ok {
		s.doc = &doc
	}
	if aliasesRaw, ok := m["aliases"].([]interface{}); ok {
		s.aliases = parseAliases(aliasesRaw, nm.Namespace())
	}
	applyAttrs(table, s.Attributes(), m, recordReserved)

	return s, nil
}

func parseField(v interface{}, position int, table *SchemaTable) (*Field, error) {
	fm, ok := v.(map[string]interface{})
	if !ok {
		return nil, newSchemaParseError("invalid field at position %d", position)
	}

	name, ok := fm["name"].(string)
	if !ok || name == "" {
		return nil, newSchemaParseError("field at position %d missing \"name\"", position)
	}

	typRaw, ok := fm["type"]
	if !ok {
		return nil, newSchemaParseError("field %q missing \"type\"", name)
	}
	fieldSchema, err := parseValue(typRaw, table)
	if err != nil {
		return nil, err
	}

	f := NewField(name, position, fieldSchema)
	if doc, ok := fm["doc"].(string); ok {
		f.SetDoc(doc)
	}
	if orderRaw, ok := fm["order"].(string); ok {
		switch orderRaw {
		case "ascending":
			f.SetOrder(Ascending)
		case "descending":
			f.SetOrder(Descending)
		case "ignore":
			f.SetOrder(Ignore)
		default:
			return nil, newSchemaParseError("field %q has invalid order %q", name, orderRaw)
		}
	}
	if aliasesRaw, ok := fm["aliases"].([]interface{}); ok {
		strs := make([]string, 0, len(aliasesRaw))
		for _, a := range aliasesRaw {
			if as, ok := a.(string); ok {
				strs = append(strs, as)
			}
		}
		f.SetAliases(strs)
	}

	if defRaw, present := fm["default"]; present {
		if err := validateDefault(fieldSchema, defRaw); err != nil {
			return nil, newTypeError("field %q: %v", name, err)
		}
		f.SetDefault(defRaw)
	}

	applyAttrs(table, f.Attributes(), fm, fieldReserved)
	return f, nil
}

func parseEnum(m map[string]interface{}, table *SchemaTable) (*Schema, error) {
	nm, err := resolveName(m, table)
	if err != nil {
		return nil, err
	}

	symsRaw, ok := m["symbols"].([]interface{})
	if !ok {
		return nil, newSchemaParseError("enum %s must have an array of symbols", nm.Full())
	}
	symbols := make([]string, len(symsRaw))
	for i, sym := range symsRaw {
		str, ok := sym.(string)
		if !ok {
			return nil, newSchemaParseError("enum %s has non-string symbol at position %d", nm.Full(), i)
		}
		symbols[i] = str
	}

	var defaultSym *string
	if d, ok := m["default"].(string); ok {
		defaultSym = &d
	}

	s, err := NewEnumSchema(nm, symbols, defaultSym)
	if err != nil {
		return nil, err
	}
	if doc, ok := m["doc"].(string); ok {
		s.doc = &doc
	}
	if aliasesRaw, ok := m["aliases"].([]interface{}); ok {
		s.aliases = parseAliases(aliasesRaw, nm.Namespace())
	}
	applyAttrs(table, s.Attributes(), m, enumReserved)

	if err := table.Add(nm, s); err != nil {
		return nil, err
	}
	return s, nil
}

func parseArray(m map[string]interface{}, table *SchemaTable) (*Schema, error) {
	itemsRaw, ok := m["items"]
	if !ok {
		return nil, newSchemaParseError("array schema must have \"items\"")
	}
	elem, err := parseValue(itemsRaw, table)
	if err != nil {
		return nil, err
	}
	s := NewArraySchema(elem)
	applyAttrs(table, s.Attributes(), m, arrayReserved)
	return s, nil
}

func parseMap(m map[string]interface{}, table *SchemaTable) (*Schema, error) {
	valuesRaw, ok := m["values"]
	if !ok {
		return nil, newSchemaParseError("map schema must have \"values\"")
	}
	val, err := parseValue(valuesRaw, table)
	if err != nil {
		return nil, err
	}
	s := NewMapSchema(val)
	applyAttrs(table, s.Attributes(), m, mapReserved)
	return s, nil
}

func parseFixed(m map[string]interface{}, table *SchemaTable) (*Schema, error) {
	nm, err := resolveName(m, table)
	if err != nil {
		return nil, err
	}
	sizeRaw, ok := m["size"].(float64)
	if !ok {
		return nil, newSchemaParseError("fixed %s must have a numeric \"size\"", nm.Full())
	}
	s := NewFixedSchema(nm, int(sizeRaw))
	applyLogicalType(s, m)
	if aliasesRaw, ok := m["aliases"].([]interface{}); ok {
		s.aliases = parseAliases(aliasesRaw, nm.Namespace())
	}
	applyAttrs(table, s.Attributes(), m, fixedReserved)

	if err := table.Add(nm, s); err != nil {
		return nil, err
	}
	return s, nil
}

func parseAliases(raw []interface{}, defaultNamespace string) []Name {
	names := make([]Name, 0, len(raw))
	for _, a := range raw {
		if str, ok := a.(string); ok {
			names = append(names, qualify(str, defaultNamespace))
		}
	}
	return names
}

func applyLogicalType(s *Schema, m map[string]interface{}) {
	if lt, ok := m["logicalType"].(string); ok {
		s.SetLogicalType(lt)
	}
}

// applyAttrs copies every key of m not in reserved into dst, in sorted key
// order, unless table has unknown-attribute passthrough disabled (see
// Registry.PreserveExtra), in which case unknown keys are dropped entirely.
// The generic JSON tree decodes into plain Go maps, which do not preserve
// source key order, so sorted order is used as the next best deterministic
// substitute when attributes are kept (see DESIGN.md).
func applyAttrs(table *SchemaTable, dst *OrderedMap, m map[string]interface{}, reserved map[string]bool) {
	if !table.PreserveExtra() {
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		if !reserved[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		dst.Set(k, m[k])
	}
}
