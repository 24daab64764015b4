package avro

// GenericWriter encodes datums conforming to one schema in either of Avro's
// two wire encodings. BinaryEncoder and JSONEncoder diverge on
// union/array/map framing detail, so there is one recursive walker per
// encoder type (writeBinaryValue, writeJSONValue) rather than one walker
// over a shared interface.
type GenericWriter struct {
	schema *Schema
}

// NewGenericWriter returns a writer that encodes datums conforming to
// schema.
func NewGenericWriter(schema *Schema) *GenericWriter {
	return &GenericWriter{schema: schema}
}

// WriteBinary encodes d (which must conform to w.schema) to enc in Avro's
// binary format.
func (w *GenericWriter) WriteBinary(enc *BinaryEncoder, d *GenericDatum) error {
	return writeBinaryValue(enc, w.schema, d)
}

// WriteJSON encodes d to enc in Avro's JSON format.
func (w *GenericWriter) WriteJSON(enc *JSONEncoder, d *GenericDatum) error {
	return writeJSONValue(enc, w.schema, d)
}

func writeBinaryValue(enc *BinaryEncoder, schema *Schema, d *GenericDatum) error {
	switch schema.Type() {
	case Null:
		return enc.WriteNull()
	case Boolean:
		v, err := GetValue[bool](d)
		if err != nil {
			return err
		}
		return enc.WriteBoolean(v)
	case Int:
		v, err := GetValue[int32](d)
		if err != nil {
			return err
		}
		return enc.WriteInt(v)
	case Long:
		v, err := GetValue[int64](d)
		if err != nil {
			return err
		}
		return enc.WriteLong(v)
	case Float:
		v, err := GetValue[float32](d)
		if err != nil {
			return err
		}
		return enc.WriteFloat(v)
	case Double:
		v, err := GetValue[float64](d)
		if err != nil {
			return err
		}
		return enc.WriteDouble(v)
	case Bytes:
		v, err := GetValue[[]byte](d)
		if err != nil {
			return err
		}
		return enc.WriteBytes(v)
	case String:
		v, err := GetValue[string](d)
		if err != nil {
			return err
		}
		return enc.WriteString(v)
	case Fixed:
		fv, err := d.Fixed()
		if err != nil {
			return err
		}
		return enc.WriteFixed(fv.Bytes())
	case Enum:
		ev, err := d.Enum()
		if err != nil {
			return err
		}
		return enc.WriteEnum(ev.Ordinal())
	case Record, Error:
		rv, err := d.Record()
		if err != nil {
			return err
		}
		for i, f := range schema.Fields() {
			fd, err := rv.GetByIndex(i)
			if err != nil {
				return err
			}
			if err := writeBinaryValue(enc, f.Type(), fd); err != nil {
				return err
			}
		}
		return nil
	case Array:
		av, err := d.Array()
		if err != nil {
			return err
		}
		if err := enc.WriteArrayStart(); err != nil {
			return err
		}
		items := av.Items()
		if err := enc.SetItemCount(int64(len(items))); err != nil {
			return err
		}
		for _, item := range items {
			if err := enc.StartItem(); err != nil {
				return err
			}
			if err := writeBinaryValue(enc, schema.Element(), item); err != nil {
				return err
			}
		}
		return enc.WriteArrayEnd()
	case Map:
		mv, err := d.Map()
		if err != nil {
			return err
		}
		if err := enc.WriteMapStart(); err != nil {
			return err
		}
		keys := mv.Keys()
		if err := enc.SetItemCount(int64(len(keys))); err != nil {
			return err
		}
		for _, k := range keys {
			if err := enc.StartItem(); err != nil {
				return err
			}
			if err := enc.WriteString(k); err != nil {
				return err
			}
			val, _ := mv.Get(k)
			if err := writeBinaryValue(enc, schema.Values(), val); err != nil {
				return err
			}
		}
		return enc.WriteMapEnd()
	case Union:
		uv, err := d.Union()
		if err != nil {
			return err
		}
		if err := enc.WriteLong(int64(uv.Index())); err != nil {
			return err
		}
		return writeBinaryValue(enc, schema.Branches()[uv.Index()], uv.Value())
	default:
		return newRuntimeError("cannot write unknown schema type %s", schema.Type())
	}
}

func writeJSONValue(enc *JSONEncoder, schema *Schema, d *GenericDatum) error {
	switch schema.Type() {
	case Null:
		return enc.WriteNull()
	case Boolean:
		v, err := GetValue[bool](d)
		if err != nil {
			return err
		}
		return enc.WriteBoolean(v)
	case Int:
		v, err := GetValue[int32](d)
		if err != nil {
			return err
		}
		return enc.WriteInt(v)
	case Long:
		v, err := GetValue[int64](d)
		if err != nil {
			return err
		}
		return enc.WriteLong(v)
	case Float:
		v, err := GetValue[float32](d)
		if err != nil {
			return err
		}
		return enc.WriteFloat(v)
	case Double:
		v, err := GetValue[float64](d)
		if err != nil {
			return err
		}
		return enc.WriteDouble(v)
	case Bytes:
		v, err := GetValue[[]byte](d)
		if err != nil {
			return err
		}
		return enc.WriteBytes(v)
	case String:
		v, err := GetValue[string](d)
		if err != nil {
			return err
		}
		return enc.WriteString(v)
	case Fixed:
		fv, err := d.Fixed()
		if err != nil {
			return err
		}
		return enc.WriteFixed(fv.Bytes())
	case Enum:
		ev, err := d.Enum()
		if err != nil {
			return err
		}
		sym, err := ev.Symbol()
		if err != nil {
			return err
		}
		return enc.WriteEnum(sym)
	case Record, Error:
		rv, err := d.Record()
		if err != nil {
			return err
		}
		if err := enc.WriteMapStart(); err != nil {
			return err
		}
		for i, f := range schema.Fields() {
			fd, err := rv.GetByIndex(i)
			if err != nil {
				return err
			}
			if err := enc.WriteMapKey(f.Name()); err != nil {
				return err
			}
			if err := writeJSONValue(enc, f.Type(), fd); err != nil {
				return err
			}
		}
		return enc.WriteMapEnd()
	case Array:
		av, err := d.Array()
		if err != nil {
			return err
		}
		if err := enc.WriteArrayStart(); err != nil {
			return err
		}
		for _, item := range av.Items() {
			if err := writeJSONValue(enc, schema.Element(), item); err != nil {
				return err
			}
		}
		return enc.WriteArrayEnd()
	case Map:
		mv, err := d.Map()
		if err != nil {
			return err
		}
		if err := enc.WriteMapStart(); err != nil {
			return err
		}
		for _, k := range mv.Keys() {
			if err := enc.WriteMapKey(k); err != nil {
				return err
			}
			val, _ := mv.Get(k)
			if err := writeJSONValue(enc, schema.Values(), val); err != nil {
				return err
			}
		}
		return enc.WriteMapEnd()
	case Union:
		uv, err := d.Union()
		if err != nil {
			return err
		}
		branch := schema.Branches()[uv.Index()]
		if branch.Type() == Null {
			return enc.WriteNull()
		}
		if err := enc.WriteUnionStart(unionBranchKey(branch)); err != nil {
			return err
		}
		if err := writeJSONValue(enc, branch, uv.Value()); err != nil {
			return err
		}
		return enc.WriteUnionEnd()
	default:
		return newRuntimeError("cannot write unknown schema type %s", schema.Type())
	}
}
