package avro

import (
	"io"
	"math"
	"strconv"

	json "github.com/goccy/go-json"
)

// JSONEncoder writes primitive and framing values in Avro's JSON wire
// format (§4.6): unlike the binary format, containers are delimited by
// literal JSON brackets rather than length-prefixed blocks, and a union's
// selected branch is tagged by its fullname except for the null branch,
// which is written bare.
type JSONEncoder struct {
	w        io.Writer
	frames   []jsonFrame
	topLevel bool
}

type jsonFrame struct {
	kind      jsonFrameKind
	count     int // items written so far, for comma placement
	keyNeeded bool
}

type jsonFrameKind int

const (
	frameArray jsonFrameKind = iota
	frameMap
)

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) writeRaw(p []byte) error {
	_, err := e.w.Write(p)
	return err
}

// comma writes a separating comma if this is not the first item in the
// current array; it is a no-op outside any container and inside a map,
// where WriteMapKey places the separator before each key instead.
func (e *JSONEncoder) comma() error {
	if len(e.frames) == 0 {
		return nil
	}
	top := &e.frames[len(e.frames)-1]
	if top.kind == frameMap {
		return nil
	}
	if top.count > 0 {
		if err := e.writeRaw([]byte(",")); err != nil {
			return err
		}
	}
	top.count++
	return nil
}

func (e *JSONEncoder) WriteNull() error {
	if err := e.comma(); err != nil {
		return err
	}
	return e.writeRaw([]byte("null"))
}

func (e *JSONEncoder) WriteBoolean(v bool) error {
	if err := e.comma(); err != nil {
		return err
	}
	if v {
		return e.writeRaw([]byte("true"))
	}
	return e.writeRaw([]byte("false"))
}

func (e *JSONEncoder) WriteInt(v int32) error {
	if err := e.comma(); err != nil {
		return err
	}
	return e.writeRaw([]byte(strconv.FormatInt(int64(v), 10)))
}

func (e *JSONEncoder) WriteLong(v int64) error {
	if err := e.comma(); err != nil {
		return err
	}
	return e.writeRaw([]byte(strconv.FormatInt(v, 10)))
}

func (e *JSONEncoder) writeFloatLike(v float64, bitSize int) error {
	if err := e.comma(); err != nil {
		return err
	}
	switch {
	case math.IsNaN(v):
		return e.writeRaw([]byte("NaN"))
	case math.IsInf(v, 1):
		return e.writeRaw([]byte("Infinity"))
	case math.IsInf(v, -1):
		return e.writeRaw([]byte("-Infinity"))
	default:
		return e.writeRaw([]byte(strconv.FormatFloat(v, 'g', -1, bitSize)))
	}
}

func (e *JSONEncoder) WriteFloat(v float32) error { return e.writeFloatLike(float64(v), 32) }
func (e *JSONEncoder) WriteDouble(v float64) error { return e.writeFloatLike(v, 64) }

// WriteBytes encodes raw bytes as a string using the 0x00-0xFF Latin-1
// mapping Avro's JSON codec requires for the bytes/fixed types.
func (e *JSONEncoder) WriteBytes(b []byte) error {
	if err := e.comma(); err != nil {
		return err
	}
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return e.writeJSONLiteral(string(runes))
}

func (e *JSONEncoder) WriteString(s string) error {
	if err := e.comma(); err != nil {
		return err
	}
	return e.writeJSONLiteral(s)
}

func (e *JSONEncoder) writeJSONLiteral(s string) error {
	out, err := json.Marshal(s)
	if err != nil {
		return newRuntimeError("failed to encode string literal: %v", err)
	}
	return e.writeRaw(out)
}

func (e *JSONEncoder) WriteFixed(b []byte) error { return e.WriteBytes(b) }

func (e *JSONEncoder) WriteEnum(symbol string) error {
	if err := e.comma(); err != nil {
		return err
	}
	return e.writeJSONLiteral(symbol)
}

func (e *JSONEncoder) WriteArrayStart() error {
	if err := e.comma(); err != nil {
		return err
	}
	e.frames = append(e.frames, jsonFrame{kind: frameArray})
	return e.writeRaw([]byte("["))
}

func (e *JSONEncoder) WriteArrayEnd() error {
	if len(e.frames) == 0 || e.frames[len(e.frames)-1].kind != frameArray {
		return newRuntimeError("%w: WriteArrayEnd without a matching WriteArrayStart", ErrEncoderState)
	}
	e.frames = e.frames[:len(e.frames)-1]
	return e.writeRaw([]byte("]"))
}

func (e *JSONEncoder) WriteMapStart() error {
	if err := e.comma(); err != nil {
		return err
	}
	e.frames = append(e.frames, jsonFrame{kind: frameMap})
	return e.writeRaw([]byte("{"))
}

func (e *JSONEncoder) WriteMapEnd() error {
	if len(e.frames) == 0 || e.frames[len(e.frames)-1].kind != frameMap {
		return newRuntimeError("%w: WriteMapEnd without a matching WriteMapStart", ErrEncoderState)
	}
	e.frames = e.frames[:len(e.frames)-1]
	return e.writeRaw([]byte("}"))
}

// WriteMapKey writes one map entry's key string, including the comma and
// trailing colon; callers follow it immediately with the value.
func (e *JSONEncoder) WriteMapKey(key string) error {
	if len(e.frames) == 0 || e.frames[len(e.frames)-1].kind != frameMap {
		return newRuntimeError("%w: WriteMapKey outside a map", ErrEncoderState)
	}
	top := &e.frames[len(e.frames)-1]
	if top.count > 0 {
		if err := e.writeRaw([]byte(",")); err != nil {
			return err
		}
	}
	top.count++
	if err := e.writeJSONLiteral(key); err != nil {
		return err
	}
	return e.writeRaw([]byte(":"))
}

// WriteUnionStart opens the branch-tagging wrapper for a non-null union
// branch: {"<branchFullName>": . WriteNull should be called directly
// instead of this for the null branch, per Avro's JSON union encoding.
func (e *JSONEncoder) WriteUnionStart(branchFullName string) error {
	if err := e.comma(); err != nil {
		return err
	}
	if err := e.writeRaw([]byte("{")); err != nil {
		return err
	}
	if err := e.writeJSONLiteral(branchFullName); err != nil {
		return err
	}
	if err := e.writeRaw([]byte(":")); err != nil {
		return err
	}
	e.frames = append(e.frames, jsonFrame{kind: frameMap, count: 1})
	return nil
}

func (e *JSONEncoder) WriteUnionEnd() error {
	if len(e.frames) == 0 || e.frames[len(e.frames)-1].kind != frameMap {
		return newRuntimeError("%w: WriteUnionEnd without a matching WriteUnionStart", ErrEncoderState)
	}
	e.frames = e.frames[:len(e.frames)-1]
	return e.writeRaw([]byte("}"))
}
