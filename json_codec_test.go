package avro

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONEncoderArrayAndMap(t *testing.T) {
	var buf bytes.Buffer
	enc := NewJSONEncoder(&buf)
	require.NoError(t, enc.WriteArrayStart())
	require.NoError(t, enc.WriteLong(1))
	require.NoError(t, enc.WriteLong(2))
	require.NoError(t, enc.WriteArrayEnd())
	assert.Equal(t, "[1,2]", buf.String())

	buf.Reset()
	enc = NewJSONEncoder(&buf)
	require.NoError(t, enc.WriteMapStart())
	require.NoError(t, enc.WriteMapKey("a"))
	require.NoError(t, enc.WriteLong(1))
	require.NoError(t, enc.WriteMapKey("b"))
	require.NoError(t, enc.WriteLong(2))
	require.NoError(t, enc.WriteMapEnd())
	assert.Equal(t, `{"a":1,"b":2}`, buf.String())
}

func TestJSONEncoderUnionNullBareAndTagged(t *testing.T) {
	var buf bytes.Buffer
	enc := NewJSONEncoder(&buf)
	require.NoError(t, enc.WriteNull())
	assert.Equal(t, "null", buf.String())

	buf.Reset()
	enc = NewJSONEncoder(&buf)
	require.NoError(t, enc.WriteUnionStart("int"))
	require.NoError(t, enc.WriteInt(5))
	require.NoError(t, enc.WriteUnionEnd())
	assert.Equal(t, `{"int":5}`, buf.String())
}

func TestJSONDecoderArray(t *testing.T) {
	dec := NewJSONDecoder([]byte("[1,2,3]"))
	require.NoError(t, dec.ReadArrayStart())
	var got []int64
	for {
		more, err := dec.ReadArrayNext()
		require.NoError(t, err)
		if !more {
			break
		}
		v, err := dec.ReadLong()
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, []int64{1, 2, 3}, got)
}

func TestJSONDecoderUnionBranch(t *testing.T) {
	dec := NewJSONDecoder([]byte(`{"int":5}`))
	name, ok, err := dec.ReadUnionBranch()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "int", name)
	v, err := dec.ReadLong()
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)
	require.NoError(t, dec.ReadUnionEnd())
}

func TestJSONDecoderUnionNullBranch(t *testing.T) {
	dec := NewJSONDecoder([]byte("null"))
	_, ok, err := dec.ReadUnionBranch()
	require.NoError(t, err)
	assert.False(t, ok)
}
