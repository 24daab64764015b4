package avro

import (
	"io"
	"math"
)

// BinaryEncoder writes primitive and framing values in Avro's binary wire
// format to an underlying io.Writer. One encoder is meant to be used by a
// single caller for the duration of writing one value; it is not safe for
// concurrent use.
type BinaryEncoder struct {
	w      *BufferedWriter
	frames []int64 // remaining-item count per open array/map block
}

// NewBinaryEncoder wraps w. bufSize <= 0 selects the default buffer size.
func NewBinaryEncoder(w io.Writer, bufSize int) *BinaryEncoder {
	return &BinaryEncoder{w: NewBufferedWriter(w, bufSize)}
}

// Flush forces any buffered output to the underlying writer.
func (e *BinaryEncoder) Flush() error { return e.w.Flush() }

func (e *BinaryEncoder) WriteNull() error { return nil }

func (e *BinaryEncoder) WriteBoolean(v bool) error {
	if v {
		return e.w.WriteByte(1)
	}
	return e.w.WriteByte(0)
}

func (e *BinaryEncoder) WriteInt(v int32) error {
	var buf [5]byte
	out := putVarInt(buf[:0], uint64(zigzagEncode32(v)))
	_, err := e.w.Write(out)
	return err
}

func (e *BinaryEncoder) WriteLong(v int64) error {
	var buf [10]byte
	out := putVarInt(buf[:0], zigzagEncode64(v))
	_, err := e.w.Write(out)
	return err
}

func (e *BinaryEncoder) WriteFloat(v float32) error {
	bits := math.Float32bits(v)
	buf := [4]byte{byte(bits), byte(bits >> 8), byte(bits >> 16), byte(bits >> 24)}
	_, err := e.w.Write(buf[:])
	return err
}

func (e *BinaryEncoder) WriteDouble(v float64) error {
	bits := math.Float64bits(v)
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(bits >> (8 * uint(i)))
	}
	_, err := e.w.Write(buf[:])
	return err
}

func (e *BinaryEncoder) WriteBytes(b []byte) error {
	if err := e.WriteLong(int64(len(b))); err != nil {
		return err
	}
	_, err := e.w.Write(b)
	return err
}

func (e *BinaryEncoder) WriteString(s string) error {
	return e.WriteBytes([]byte(s))
}

// WriteFixed writes b's raw bytes with no length prefix; b's length is not
// checked here (a FixedValue enforces the schema's size in SetBytes, and
// the generic writer writes that value's bytes).
func (e *BinaryEncoder) WriteFixed(b []byte) error {
	_, err := e.w.Write(b)
	return err
}

// WriteEnum writes an enum's selected symbol as its ordinal, int-encoded.
func (e *BinaryEncoder) WriteEnum(ordinal int) error {
	return e.WriteInt(int32(ordinal))
}

// WriteArrayStart opens a new array block-framing context. Nested
// arrays/maps are supported; each open context must be balanced by a
// matching WriteArrayEnd/WriteMapEnd.
func (e *BinaryEncoder) WriteArrayStart() error {
	e.frames = append(e.frames, -1)
	return nil
}

// WriteMapStart opens a new map block-framing context.
func (e *BinaryEncoder) WriteMapStart() error { return e.WriteArrayStart() }

// SetItemCount declares the size of the current block. It must be called
// before StartItem for that block; a count of 0 is legal (an empty
// collection) and simply causes WriteArrayEnd/WriteMapEnd to write the
// terminating zero immediately.
func (e *BinaryEncoder) SetItemCount(n int64) error {
	if len(e.frames) == 0 {
		return newRuntimeError("%w: SetItemCount with no open block", ErrEncoderState)
	}
	if n < 0 {
		return newRuntimeError("item count must not be negative")
	}
	e.frames[len(e.frames)-1] = n
	if n == 0 {
		return nil
	}
	return e.WriteLong(n)
}

// StartItem marks the beginning of one element within the current block.
func (e *BinaryEncoder) StartItem() error {
	if len(e.frames) == 0 {
		return newRuntimeError("%w: StartItem with no open block", ErrEncoderState)
	}
	top := len(e.frames) - 1
	if e.frames[top] <= 0 {
		return newRuntimeError("%w: StartItem called without a prior SetItemCount or after the block was exhausted", ErrEncoderState)
	}
	e.frames[top]--
	return nil
}

// WriteArrayEnd closes the current block-framing context, writing the
// terminating zero-length block. It is an error to call it before every
// item declared by SetItemCount has been started.
func (e *BinaryEncoder) WriteArrayEnd() error {
	if len(e.frames) == 0 {
		return newRuntimeError("%w: WriteArrayEnd with no open block", ErrEncoderState)
	}
	top := len(e.frames) - 1
	if e.frames[top] != 0 {
		return newRuntimeError("%w: WriteArrayEnd before all declared items were written", ErrEncoderState)
	}
	e.frames = e.frames[:top]
	return e.WriteLong(0)
}

// WriteMapEnd closes the current map block-framing context.
func (e *BinaryEncoder) WriteMapEnd() error { return e.WriteArrayEnd() }
