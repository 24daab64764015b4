package avro

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryEncoderScalars(t *testing.T) {
	var buf bytes.Buffer
	enc := NewBinaryEncoder(&buf, 0)
	require.NoError(t, enc.WriteBoolean(true))
	require.NoError(t, enc.WriteInt(-1))
	require.NoError(t, enc.WriteLong(1000000))
	require.NoError(t, enc.WriteFloat(1.5))
	require.NoError(t, enc.WriteDouble(2.5))
	require.NoError(t, enc.WriteString("hi"))
	require.NoError(t, enc.Flush())

	dec := NewBinaryDecoder(&buf, 0)
	b, err := dec.ReadBoolean()
	require.NoError(t, err)
	assert.True(t, b)

	i, err := dec.ReadInt()
	require.NoError(t, err)
	assert.Equal(t, int32(-1), i)

	l, err := dec.ReadLong()
	require.NoError(t, err)
	assert.Equal(t, int64(1000000), l)

	f, err := dec.ReadFloat()
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), f)

	d, err := dec.ReadDouble()
	require.NoError(t, err)
	assert.Equal(t, 2.5, d)

	s, err := dec.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "hi", s)
}

func TestBinaryArrayBlockFraming(t *testing.T) {
	var buf bytes.Buffer
	enc := NewBinaryEncoder(&buf, 0)
	require.NoError(t, enc.WriteArrayStart())
	require.NoError(t, enc.SetItemCount(3))
	for _, v := range []int32{1, 2, 3} {
		require.NoError(t, enc.StartItem())
		require.NoError(t, enc.WriteInt(v))
	}
	require.NoError(t, enc.WriteArrayEnd())
	require.NoError(t, enc.Flush())

	dec := NewBinaryDecoder(&buf, 0)
	count, err := dec.ReadArrayStart()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	got := make([]int32, 0, 3)
	for count != 0 {
		for i := int64(0); i < count; i++ {
			v, err := dec.ReadInt()
			require.NoError(t, err)
			got = append(got, v)
		}
		count, err = dec.ReadArrayNext()
		require.NoError(t, err)
	}
	assert.Equal(t, []int32{1, 2, 3}, got)
}

func TestBinaryEncoderRejectsUnbalancedBlock(t *testing.T) {
	var buf bytes.Buffer
	enc := NewBinaryEncoder(&buf, 0)
	require.NoError(t, enc.WriteArrayStart())
	require.NoError(t, enc.SetItemCount(2))
	require.NoError(t, enc.StartItem())
	err := enc.WriteArrayEnd()
	require.Error(t, err)
}

func TestBinarySkipArray(t *testing.T) {
	var buf bytes.Buffer
	enc := NewBinaryEncoder(&buf, 0)
	require.NoError(t, enc.WriteArrayStart())
	require.NoError(t, enc.SetItemCount(2))
	require.NoError(t, enc.StartItem())
	require.NoError(t, enc.WriteLong(10))
	require.NoError(t, enc.StartItem())
	require.NoError(t, enc.WriteLong(20))
	require.NoError(t, enc.WriteArrayEnd())
	require.NoError(t, enc.WriteString("trailing"))
	require.NoError(t, enc.Flush())

	dec := NewBinaryDecoder(&buf, 0)
	require.NoError(t, dec.SkipArray(func() error { return dec.SkipLong() }))
	s, err := dec.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "trailing", s)
}
