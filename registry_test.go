package avro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryParseJSONCachesNamedSchema(t *testing.T) {
	r := NewRegistry()
	s, err := r.Parse("application/json", []byte(`{"type":"fixed","name":"Md5","size":16}`))
	require.NoError(t, err)
	assert.Equal(t, "Md5", s.FullName())

	got, ok := r.Lookup("Md5")
	require.True(t, ok)
	assert.Same(t, s, got)
}

func TestRegistryParseYAML(t *testing.T) {
	r := NewRegistry()
	s, err := r.Parse("application/x-yaml", []byte("type: string\n"))
	require.NoError(t, err)
	assert.Equal(t, String, s.Type())
}

func TestRegistryUnknownMediaType(t *testing.T) {
	r := NewRegistry()
	_, err := r.Parse("application/does-not-exist", []byte("{}"))
	require.Error(t, err)
}

func TestRegistryDefaultNamespaceSeeds(t *testing.T) {
	r := NewRegistry().SetDefaultNamespace("example.avro")
	s, err := r.Parse("application/json", []byte(`{"type":"fixed","name":"Md5","size":16}`))
	require.NoError(t, err)
	assert.Equal(t, "example.avro.Md5", s.FullName())
}

func TestRegistryRegisterMediaType(t *testing.T) {
	r := NewRegistry()
	r.RegisterMediaType("text/x-custom", func(data []byte) (interface{}, error) {
		return "string", nil
	})
	s, err := r.Parse("text/x-custom", []byte("ignored"))
	require.NoError(t, err)
	assert.Equal(t, String, s.Type())
}

func TestRegistryPreserveExtraDefaultKeepsUnknownAttrs(t *testing.T) {
	r := NewRegistry()
	s, err := r.Parse("application/json", []byte(`{"type":"fixed","name":"Md5","size":16,"extra":"x"}`))
	require.NoError(t, err)
	v, ok := s.Attributes().Get("extra")
	require.True(t, ok)
	assert.Equal(t, "x", v)
}

func TestRegistryPreserveExtraFalseDropsUnknownAttrs(t *testing.T) {
	r := NewRegistry().SetPreserveExtra(false)
	s, err := r.Parse("application/json", []byte(`{"type":"fixed","name":"Md5","size":16,"extra":"x"}`))
	require.NoError(t, err)
	_, ok := s.Attributes().Get("extra")
	assert.False(t, ok)
}

func TestRegistrySetSchema(t *testing.T) {
	r := NewRegistry()
	s := NewPrimitiveSchema(Int)
	r.SetSchema("manual.Int", s)
	got, ok := r.Lookup("manual.Int")
	require.True(t, ok)
	assert.Same(t, s, got)
}
