package avro

import (
	"sync"
)

// Registry is a long-lived configuration and cache object: it carries
// parse-wide options and a pluggable table of schema source-text decoders,
// and caches schemas it has already parsed so repeated lookups by fullname
// don't re-parse source text.
//
// Unlike a SchemaTable (scoped to one parse, per the Data Model), a
// Registry is meant to be held for a process's lifetime and may field
// concurrent calls, so its cache is guarded by a mutex.
type Registry struct {
	mu    sync.RWMutex
	cache map[string]*Schema // fullname -> parsed schema

	// Decoders maps a media type to a function turning raw schema source
	// text into a generic tree ready for parseValue. "application/json" and
	// "application/x-yaml" are pre-registered by NewRegistry.
	Decoders map[string]func([]byte) (interface{}, error)

	// DefaultNamespace seeds the SchemaTable's current namespace before
	// parsing begins, letting a caller parse schema text that omits an
	// explicit top-level namespace.
	DefaultNamespace string

	// PreserveExtra controls whether unknown JSON/YAML attributes are kept
	// on Schema.Attributes()/Field.Attributes() (true by default) or
	// silently discarded during parsing.
	PreserveExtra bool
}

// NewRegistry returns a Registry with the default media types registered.
func NewRegistry() *Registry {
	r := &Registry{
		cache:         make(map[string]*Schema),
		Decoders:      make(map[string]func([]byte) (interface{}, error)),
		PreserveExtra: true,
	}
	r.setupDefaultMediaTypes()
	return r
}

func (r *Registry) setupDefaultMediaTypes() {
	r.Decoders["application/json"] = func(data []byte) (interface{}, error) {
		return decodeJSONTree(data)
	}
	r.Decoders["application/x-yaml"] = func(data []byte) (interface{}, error) {
		return decodeYAMLTree(data)
	}
}

// RegisterMediaType adds a decoder for a further schema source encoding
// (e.g. a protobuf-text or TOML schema representation) without touching the
// parser itself.
func (r *Registry) RegisterMediaType(mediaType string, decode func([]byte) (interface{}, error)) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Decoders[mediaType] = decode
	return r
}

// SetDefaultNamespace configures the namespace parses through this Registry
// start in.
func (r *Registry) SetDefaultNamespace(ns string) *Registry {
	r.DefaultNamespace = ns
	return r
}

// SetPreserveExtra toggles unknown-attribute passthrough.
func (r *Registry) SetPreserveExtra(preserve bool) *Registry {
	r.PreserveExtra = preserve
	return r
}

// Parse decodes data using the decoder registered for mediaType and parses
// the resulting tree into a Schema, seeding the SchemaTable with
// r.DefaultNamespace. The result is cached by fullname (for named schemas)
// so a later Lookup for the same fullname avoids re-parsing.
func (r *Registry) Parse(mediaType string, data []byte) (*Schema, error) {
	r.mu.RLock()
	decode, ok := r.Decoders[mediaType]
	r.mu.RUnlock()
	if !ok {
		return nil, newSchemaParseError("no decoder registered for media type %q", mediaType)
	}
	tree, err := decode(data)
	if err != nil {
		return nil, newSchemaParseError("failed to decode %s source: %v", mediaType, err)
	}

	table := NewSchemaTable()
	table.SetPreserveExtra(r.PreserveExtra)
	if r.DefaultNamespace != "" {
		table.EnterNamespace(r.DefaultNamespace)
	}
	schema, err := parseValue(tree, table)
	if err != nil {
		return nil, err
	}

	if schema.Type().IsNamed() {
		r.mu.Lock()
		r.cache[schema.FullName()] = schema
		r.mu.Unlock()
	}
	return schema, nil
}

// Lookup returns a previously-parsed named schema by fullname, if this
// Registry has parsed one.
func (r *Registry) Lookup(fullname string) (*Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.cache[fullname]
	return s, ok
}

// SetSchema associates a schema directly with a fullname in the cache,
// letting a caller pre-seed the Registry with schemas it built
// programmatically (via NewRecordSchema etc.) rather than by parsing text.
func (r *Registry) SetSchema(fullname string, s *Schema) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[fullname] = s
	return r
}
