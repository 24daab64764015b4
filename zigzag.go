package avro

// ZigZag encoding maps a signed integer to an unsigned one so that values
// small in magnitude (positive or negative) also end up small in unsigned
// value, which is what makes VarInt encoding of them compact. This and
// varint.go have no third-party analog in the retrieval pack (every Avro
// library implements this arithmetic inline, not via a shared dependency),
// so it is implemented directly against the standard library; see
// DESIGN.md.

// zigzagEncode32 maps a signed 32-bit integer to its zigzag-encoded
// unsigned form.
func zigzagEncode32(n int32) uint32 {
	return uint32((n << 1) ^ (n >> 31))
}

// zigzagDecode32 reverses zigzagEncode32.
func zigzagDecode32(n uint32) int32 {
	return int32(n>>1) ^ -int32(n&1)
}

// zigzagEncode64 maps a signed 64-bit integer to its zigzag-encoded
// unsigned form.
func zigzagEncode64(n int64) uint64 {
	return uint64((n << 1) ^ (n >> 63))
}

// zigzagDecode64 reverses zigzagEncode64.
func zigzagDecode64(n uint64) int64 {
	return int64(n>>1) ^ -int64(n&1)
}
