package avro

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarIntRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 1 << 20, 1<<63 - 1}
	for _, v := range values {
		buf := putVarInt(nil, v)
		got, n, err := takeVarInt(buf)
		require.NoError(t, err)
		assert.Equal(t, v, got)
		assert.Equal(t, len(buf), n)
	}
}

func TestVarIntSingleByteForSmallValues(t *testing.T) {
	buf := putVarInt(nil, 3)
	assert.Len(t, buf, 1)
}

func TestTakeVarIntTruncated(t *testing.T) {
	_, _, err := takeVarInt([]byte{0x80})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedVarInt))
}

func TestTakeVarIntTooLong(t *testing.T) {
	buf := make([]byte, 11)
	for i := range buf {
		buf[i] = 0x80
	}
	_, _, err := takeVarInt(buf)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedVarInt))
}
