package avro

import (
	"errors"
	"fmt"

	"github.com/kaptinlin/go-i18n"
)

// === Schema parsing errors ===
// Returned while interpreting schema JSON/YAML into a Schema: malformed
// structure, unknown or duplicate names. Default-value mismatches are
// classified as ErrAvroType instead (the schema document itself is
// well-formed; only a value disagrees with its declared type), see
// defaultvalidate.go.
var (
	ErrSchemaParse          = errors.New("avro: schema parse error")
	ErrInvalidName          = errors.New("avro: invalid name")
	ErrUnknownTypeName      = errors.New("avro: unknown type name")
	ErrDuplicateName        = errors.New("avro: duplicate name")
	ErrNestedUnion          = errors.New("avro: nested union")
	ErrDuplicateUnionBranch = errors.New("avro: duplicate union branch type")
	ErrMissingRequiredField = errors.New("avro: missing required schema field")
	ErrUnresolvableNameRef  = errors.New("avro: unresolvable name reference")
)

// === Runtime type errors ===
// Returned when a GenericDatum operation is asked to treat a value as a Go
// type its current schema does not support.
var (
	ErrAvroType           = errors.New("avro: type error")
	ErrValueTypeMismatch  = errors.New("avro: value type does not match schema")
	ErrUnionIndexMismatch = errors.New("avro: datum type does not match union branch")
)

// === General runtime errors ===
// Everything else: codec misuse, encoder/decoder state errors, malformed
// wire data.
var (
	ErrAvroRuntime       = errors.New("avro: runtime error")
	ErrNotARecord        = errors.New("avro: value is not a record")
	ErrNotAnArray        = errors.New("avro: value is not an array")
	ErrNotAMap           = errors.New("avro: value is not a map")
	ErrNotAUnion         = errors.New("avro: value is not a union")
	ErrNotAnEnum         = errors.New("avro: value is not an enum")
	ErrNotFixed          = errors.New("avro: value is not fixed")
	ErrFieldNotFound     = errors.New("avro: field not found")
	ErrEnumOrdinalRange  = errors.New("avro: enum ordinal out of range")
	ErrEnumSymbolUnknown = errors.New("avro: unknown enum symbol")
	ErrMalformedVarInt   = errors.New("avro: malformed varint")
	ErrEncoderState      = errors.New("avro: encoder used out of sequence")
	ErrDecoderState      = errors.New("avro: decoder used out of sequence")
	ErrJSONLex           = errors.New("avro: malformed json")
	ErrUnexpectedToken   = errors.New("avro: unexpected token")
)

// === Backward compatibility aliases ===
// Deprecated spellings kept so callers that imported an earlier draft of
// this package keep compiling.
var (
	// Deprecated: use ErrSchemaParse instead.
	ErrParse = ErrSchemaParse
	// Deprecated: use ErrAvroRuntime instead.
	ErrRuntime = ErrAvroRuntime
)

// SchemaError is the structured form of a schema-parse failure: a stable
// Code for programmatic matching, a templated Message (substituted via
// replace()), and the Params that fill the template.
type SchemaError struct {
	Code    string
	Message string
	Params  map[string]interface{}
}

func newSchemaParseError(format string, args ...interface{}) *SchemaError {
	msg := fmt.Sprintf(format, args...)
	return &SchemaError{Code: "schema_parse", Message: msg, Params: map[string]interface{}{"Message": msg}}
}

func (e *SchemaError) Error() string {
	return replace(e.Message, e.Params)
}

func (e *SchemaError) Unwrap() error { return ErrSchemaParse }

// Localize renders the error through localizer, falling back to Error()
// when localizer is nil.
func (e *SchemaError) Localize(localizer *i18n.Localizer) string {
	if localizer != nil {
		return localizer.Get(e.Code, i18n.Vars(e.Params))
	}
	return e.Error()
}

// TypeError is the structured form of a GenericDatum type mismatch.
type TypeError struct {
	Code    string
	Message string
	Params  map[string]interface{}
}

func newTypeError(format string, args ...interface{}) *TypeError {
	msg := fmt.Sprintf(format, args...)
	return &TypeError{Code: "avro_type", Message: msg, Params: map[string]interface{}{"Message": msg}}
}

func (e *TypeError) Error() string  { return replace(e.Message, e.Params) }
func (e *TypeError) Unwrap() error { return ErrAvroType }

func (e *TypeError) Localize(localizer *i18n.Localizer) string {
	if localizer != nil {
		return localizer.Get(e.Code, i18n.Vars(e.Params))
	}
	return e.Error()
}

// RuntimeError is the structured form of every other Avro runtime failure
// (codec misuse, malformed wire data, out-of-sequence encoder/decoder
// calls).
type RuntimeError struct {
	Code    string
	Message string
	Params  map[string]interface{}

	// cause holds the formatted error, so a sentinel passed through a %w
	// verb in the format stays matchable with errors.Is.
	cause error
}

func newRuntimeError(format string, args ...interface{}) *RuntimeError {
	cause := fmt.Errorf(format, args...)
	msg := cause.Error()
	return &RuntimeError{Code: "avro_runtime", Message: msg, Params: map[string]interface{}{"Message": msg}, cause: cause}
}

func (e *RuntimeError) Error() string  { return replace(e.Message, e.Params) }
func (e *RuntimeError) Unwrap() error { return ErrAvroRuntime }

// Is reports whether target is a sentinel wrapped via %w in the message.
func (e *RuntimeError) Is(target error) bool {
	return e.cause != nil && errors.Is(e.cause, target)
}

func (e *RuntimeError) Localize(localizer *i18n.Localizer) string {
	if localizer != nil {
		return localizer.Get(e.Code, i18n.Vars(e.Params))
	}
	return e.Error()
}
