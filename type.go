package avro

import (
	"regexp"
	"strings"
)

// Type is the closed set of schema kinds a Schema can carry. It mirrors the
// fifteen forms the Avro JSON grammar recognizes under a "type" key.
type Type int

const (
	Null Type = iota
	Boolean
	Int
	Long
	Float
	Double
	Bytes
	String
	Record
	Error
	Enum
	Array
	Map
	Union
	Fixed
)

var typeNames = [...]string{
	Null:    "null",
	Boolean: "boolean",
	Int:     "int",
	Long:    "long",
	Float:   "float",
	Double:  "double",
	Bytes:   "bytes",
	String:  "string",
	Record:  "record",
	Error:   "error",
	Enum:    "enum",
	Array:   "array",
	Map:     "map",
	Union:   "union",
	Fixed:   "fixed",
}

// String returns the wire-format type name, the same token that appears in
// the schema's "type" attribute.
func (t Type) String() string {
	if int(t) < 0 || int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}

// IsPrimitive reports whether t is one of the eight primitive types, which
// a bare string reference names without any prior definition.
func (t Type) IsPrimitive() bool {
	switch t {
	case Null, Boolean, Int, Long, Float, Double, Bytes, String:
		return true
	default:
		return false
	}
}

// IsNamed reports whether t carries a Name (record, error, enum, fixed) and
// therefore must be registered in a SchemaTable by fullname.
func (t Type) IsNamed() bool {
	switch t {
	case Record, Error, Enum, Fixed:
		return true
	default:
		return false
	}
}

var primitiveByName = map[string]Type{
	"null":    Null,
	"boolean": Boolean,
	"int":     Int,
	"long":    Long,
	"float":   Float,
	"double":  Double,
	"bytes":   Bytes,
	"string":  String,
}

// primitiveType looks up a primitive Type by its wire name. ok is false for
// any name that is not one of the eight primitives.
func primitiveType(name string) (Type, bool) {
	t, ok := primitiveByName[name]
	return t, ok
}

// nameRE matches the grammar Avro requires for both a schema's own name and
// for each symbol/alias component: an ASCII letter or underscore followed by
// letters, digits, or underscores.
var nameRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidName reports whether s is a syntactically legal Avro name component.
func ValidName(s string) bool {
	return nameRE.MatchString(s)
}

// Name is the local-name/namespace pair that identifies every record, error,
// enum, and fixed schema, plus every alias on those schemas.
type Name struct {
	name      string
	namespace string
}

// NewName builds a Name from a local name and a namespace. If name already
// contains a dot, it is treated as already-qualified and namespace is
// derived from it, overriding the namespace argument (this mirrors how a
// dotted "name" attribute behaves in the Avro schema grammar).
func NewName(name, namespace string) Name {
	if idx := strings.LastIndexByte(name, '.'); idx >= 0 {
		return Name{name: name[idx+1:], namespace: name[:idx]}
	}
	return Name{name: name, namespace: namespace}
}

// Simple reports the unqualified local name component.
func (n Name) Simple() string { return n.name }

// Namespace reports the namespace component, empty if the name is
// unqualified.
func (n Name) Namespace() string { return n.namespace }

// Full returns the fully-qualified "namespace.name" form, or just "name"
// when the namespace is empty.
func (n Name) Full() string {
	if n.namespace == "" {
		return n.name
	}
	return n.namespace + "." + n.name
}

// IsZero reports whether n is the empty Name.
func (n Name) IsZero() bool { return n.name == "" && n.namespace == "" }

// String implements fmt.Stringer as the fullname, matching how names are
// printed in error messages and canonical JSON.
func (n Name) String() string { return n.Full() }

// qualify resolves a possibly-unqualified name or alias string against a
// default namespace the same way the parser resolves a schema's own name:
// a dotted string is already fully qualified; anything else picks up the
// namespace in scope.
func qualify(raw, defaultNamespace string) Name {
	if idx := strings.LastIndexByte(raw, '.'); idx >= 0 {
		return Name{name: raw[idx+1:], namespace: raw[:idx]}
	}
	return Name{name: raw, namespace: defaultNamespace}
}
