package avro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDefaultNullAlwaysAccepted(t *testing.T) {
	assert.NoError(t, validateDefault(NewPrimitiveSchema(String), nil))
	assert.NoError(t, validateDefault(NewArraySchema(NewPrimitiveSchema(Int)), nil))
}

func TestValidateDefaultInt32Range(t *testing.T) {
	s := NewPrimitiveSchema(Int)
	assert.NoError(t, validateDefault(s, float64(42)))
	err := validateDefault(s, float64(1)<<40)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAvroType)
}

func TestValidateDefaultArrayRecurses(t *testing.T) {
	s := NewArraySchema(NewPrimitiveSchema(String))
	assert.NoError(t, validateDefault(s, []interface{}{"a", "b"}))
	assert.Error(t, validateDefault(s, []interface{}{"a", 1.0}))
}

func TestValidateDefaultUnionOnlyFirstBranch(t *testing.T) {
	s, err := NewUnionSchema(NewPrimitiveSchema(String), NewPrimitiveSchema(Int))
	assert.NoError(t, err)
	assert.NoError(t, validateDefault(s, "ok"))
	assert.Error(t, validateDefault(s, float64(5)))
}

func TestValidateDefaultRecordFallsBackToFieldDefault(t *testing.T) {
	inner := NewField("x", 0, NewPrimitiveSchema(Int))
	inner.SetDefault(float64(9))
	rec, err := NewRecordSchema(NewName("R", ""), []*Field{inner}, false)
	assert.NoError(t, err)

	assert.NoError(t, validateDefault(rec, map[string]interface{}{}))
	assert.NoError(t, validateDefault(rec, map[string]interface{}{"x": float64(1)}))
}

func TestValidateDefaultRecordMissingFieldNoFallback(t *testing.T) {
	inner := NewField("x", 0, NewPrimitiveSchema(Int))
	rec, err := NewRecordSchema(NewName("R", ""), []*Field{inner}, false)
	assert.NoError(t, err)
	assert.Error(t, validateDefault(rec, map[string]interface{}{}))
}
