package avro

import (
	"io"
	"math"
)

// BinaryDecoder reads primitive and framing values in Avro's binary wire
// format from an underlying io.Reader. It is not safe for concurrent use.
type BinaryDecoder struct {
	r *BufferedReader
}

// NewBinaryDecoder wraps r. bufSize <= 0 selects the default buffer size.
func NewBinaryDecoder(r io.Reader, bufSize int) *BinaryDecoder {
	return &BinaryDecoder{r: NewBufferedReader(r, bufSize)}
}

func (d *BinaryDecoder) ReadNull() error { return nil }

func (d *BinaryDecoder) ReadBoolean() (bool, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

func (d *BinaryDecoder) readVarInt() (uint64, error) {
	var v uint64
	for i := 0; i < maxVarIntBytes; i++ {
		b, err := d.r.ReadByte()
		if err != nil {
			return 0, err
		}
		v |= uint64(b&0x7f) << (7 * uint(i))
		if b&0x80 == 0 {
			return v, nil
		}
	}
	return 0, newRuntimeError("%w: more than %d continuation bytes", ErrMalformedVarInt, maxVarIntBytes)
}

func (d *BinaryDecoder) ReadInt() (int32, error) {
	v, err := d.readVarInt()
	if err != nil {
		return 0, err
	}
	return zigzagDecode32(uint32(v)), nil
}

func (d *BinaryDecoder) ReadLong() (int64, error) {
	v, err := d.readVarInt()
	if err != nil {
		return 0, err
	}
	return zigzagDecode64(v), nil
}

func (d *BinaryDecoder) ReadFloat() (float32, error) {
	buf, err := d.r.ReadFull(4)
	if err != nil {
		return 0, err
	}
	bits := uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
	return math.Float32frombits(bits), nil
}

func (d *BinaryDecoder) ReadDouble() (float64, error) {
	buf, err := d.r.ReadFull(8)
	if err != nil {
		return 0, err
	}
	var bits uint64
	for i := 0; i < 8; i++ {
		bits |= uint64(buf[i]) << (8 * uint(i))
	}
	return math.Float64frombits(bits), nil
}

func (d *BinaryDecoder) ReadBytes() ([]byte, error) {
	n, err := d.ReadLong()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, newRuntimeError("negative bytes length %d", n)
	}
	return d.r.ReadFull(int(n))
}

func (d *BinaryDecoder) ReadString() (string, error) {
	b, err := d.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadFixed reads exactly size bytes with no length prefix.
func (d *BinaryDecoder) ReadFixed(size int) ([]byte, error) {
	return d.r.ReadFull(size)
}

func (d *BinaryDecoder) ReadEnum() (int, error) {
	v, err := d.ReadInt()
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// readBlockCount reads one array/map block header, which is either a
// positive item count, 0 (end of blocks), or a negative count immediately
// followed by a long byte-size for the block — the latter form lets a
// reader skip the whole block without decoding its items. The returned
// count is always non-negative; skipSize is the byte size read after a
// negative count and 0 for the positive form.
func (d *BinaryDecoder) readBlockCount() (count int64, skipSize int64, err error) {
	n, err := d.ReadLong()
	if err != nil {
		return 0, 0, err
	}
	if n < 0 {
		size, err := d.ReadLong()
		if err != nil {
			return 0, 0, err
		}
		return -n, size, nil
	}
	return n, 0, nil
}

// ReadArrayStart reads the first block header of an array, returning the
// number of items in that block (0 means the array is empty).
func (d *BinaryDecoder) ReadArrayStart() (int64, error) {
	count, _, err := d.readBlockCount()
	return count, err
}

// ReadArrayNext reads the next block header once the previous block's items
// have all been consumed, returning the following block's item count (0
// terminates the array).
func (d *BinaryDecoder) ReadArrayNext() (int64, error) {
	return d.ReadArrayStart()
}

// ReadMapStart and ReadMapNext mirror ReadArrayStart/ReadArrayNext; maps use
// the identical block-count framing keyed by string rather than by
// position.
func (d *BinaryDecoder) ReadMapStart() (int64, error) { return d.ReadArrayStart() }
func (d *BinaryDecoder) ReadMapNext() (int64, error)  { return d.ReadArrayNext() }

// SkipBoolean, SkipInt, etc. discard one encoded value of the given wire
// type without materializing it. The generic reader does not call them; it
// decodes every value of its single schema.

func (d *BinaryDecoder) SkipBoolean() error {
	_, err := d.r.ReadByte()
	return err
}

func (d *BinaryDecoder) SkipInt() error {
	_, err := d.readVarInt()
	return err
}

func (d *BinaryDecoder) SkipLong() error {
	_, err := d.readVarInt()
	return err
}

func (d *BinaryDecoder) SkipFloat() error { return d.r.Discard(4) }

func (d *BinaryDecoder) SkipDouble() error { return d.r.Discard(8) }

func (d *BinaryDecoder) SkipBytes() error {
	n, err := d.ReadLong()
	if err != nil {
		return err
	}
	if n < 0 {
		return newRuntimeError("negative bytes length %d", n)
	}
	return d.r.Discard(int(n))
}

func (d *BinaryDecoder) SkipFixed(size int) error { return d.r.Discard(size) }

// SkipArray discards an entire array's contents given a per-item skip
// function, using the negative-count-plus-byte-size block form when
// present to skip whole blocks in one call.
func (d *BinaryDecoder) SkipArray(skipItem func() error) error {
	for {
		count, size, err := d.readBlockCount()
		if err != nil {
			return err
		}
		if count == 0 {
			return nil
		}
		if size > 0 {
			if err := d.r.Discard(int(size)); err != nil {
				return err
			}
			continue
		}
		for i := int64(0); i < count; i++ {
			if err := skipItem(); err != nil {
				return err
			}
		}
	}
}

// SkipMap mirrors SkipArray for map entries, where skipEntry discards one
// key string plus its value.
func (d *BinaryDecoder) SkipMap(skipEntry func() error) error {
	return d.SkipArray(skipEntry)
}
