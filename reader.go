package avro

// GenericReader decodes datums conforming to one schema from either of
// Avro's two wire encodings, mirroring GenericWriter.
type GenericReader struct {
	schema *Schema
}

func NewGenericReader(schema *Schema) *GenericReader {
	return &GenericReader{schema: schema}
}

// ReadBinary decodes one value of r.schema from dec.
func (r *GenericReader) ReadBinary(dec *BinaryDecoder) (*GenericDatum, error) {
	return readBinaryValue(dec, r.schema)
}

// ReadJSON decodes one value of r.schema from dec.
func (r *GenericReader) ReadJSON(dec *JSONDecoder) (*GenericDatum, error) {
	return readJSONValue(dec, r.schema)
}

func readBinaryValue(dec *BinaryDecoder, schema *Schema) (*GenericDatum, error) {
	d := NewDatum(schema)
	switch schema.Type() {
	case Null:
		return d, dec.ReadNull()
	case Boolean:
		v, err := dec.ReadBoolean()
		if err != nil {
			return nil, err
		}
		return d, SetValue(d, v)
	case Int:
		v, err := dec.ReadInt()
		if err != nil {
			return nil, err
		}
		return d, SetValue(d, v)
	case Long:
		v, err := dec.ReadLong()
		if err != nil {
			return nil, err
		}
		return d, SetValue(d, v)
	case Float:
		v, err := dec.ReadFloat()
		if err != nil {
			return nil, err
		}
		return d, SetValue(d, v)
	case Double:
		v, err := dec.ReadDouble()
		if err != nil {
			return nil, err
		}
		return d, SetValue(d, v)
	case Bytes:
		v, err := dec.ReadBytes()
		if err != nil {
			return nil, err
		}
		return d, SetValue(d, v)
	case String:
		v, err := dec.ReadString()
		if err != nil {
			return nil, err
		}
		return d, SetValue(d, v)
	case Fixed:
		b, err := dec.ReadFixed(schema.Size())
		if err != nil {
			return nil, err
		}
		fv, _ := d.Fixed()
		return d, fv.SetBytes(b)
	case Enum:
		ord, err := dec.ReadEnum()
		if err != nil {
			return nil, err
		}
		ev, _ := d.Enum()
		return d, ev.SetOrdinal(ord)
	case Record, Error:
		rv, _ := d.Record()
		for i, f := range schema.Fields() {
			fd, err := readBinaryValue(dec, f.Type())
			if err != nil {
				return nil, err
			}
			if err := rv.Set(schema.Fields()[i].Name(), fd); err != nil {
				return nil, err
			}
		}
		return d, nil
	case Array:
		av, _ := d.Array()
		count, err := dec.ReadArrayStart()
		if err != nil {
			return nil, err
		}
		for count != 0 {
			for i := int64(0); i < count; i++ {
				item, err := readBinaryValue(dec, schema.Element())
				if err != nil {
					return nil, err
				}
				av.Append(item)
			}
			count, err = dec.ReadArrayNext()
			if err != nil {
				return nil, err
			}
		}
		return d, nil
	case Map:
		mv, _ := d.Map()
		count, err := dec.ReadMapStart()
		if err != nil {
			return nil, err
		}
		for count != 0 {
			for i := int64(0); i < count; i++ {
				key, err := dec.ReadString()
				if err != nil {
					return nil, err
				}
				val, err := readBinaryValue(dec, schema.Values())
				if err != nil {
					return nil, err
				}
				mv.Set(key, val)
			}
			count, err = dec.ReadMapNext()
			if err != nil {
				return nil, err
			}
		}
		return d, nil
	case Union:
		idx, err := dec.ReadLong()
		if err != nil {
			return nil, err
		}
		uv, _ := d.Union()
		if err := uv.SetIndex(int(idx)); err != nil {
			return nil, err
		}
		branchVal, err := readBinaryValue(dec, schema.Branches()[idx])
		if err != nil {
			return nil, err
		}
		uv.value = branchVal
		return d, nil
	default:
		return nil, newRuntimeError("cannot read unknown schema type %s", schema.Type())
	}
}

func readJSONValue(dec *JSONDecoder, schema *Schema) (*GenericDatum, error) {
	d := NewDatum(schema)
	switch schema.Type() {
	case Null:
		return d, dec.ReadNull()
	case Boolean:
		v, err := dec.ReadBoolean()
		if err != nil {
			return nil, err
		}
		return d, SetValue(d, v)
	case Int:
		v, err := dec.ReadInt()
		if err != nil {
			return nil, err
		}
		return d, SetValue(d, v)
	case Long:
		v, err := dec.ReadLong()
		if err != nil {
			return nil, err
		}
		return d, SetValue(d, v)
	case Float:
		v, err := dec.ReadFloat()
		if err != nil {
			return nil, err
		}
		return d, SetValue(d, v)
	case Double:
		v, err := dec.ReadDouble()
		if err != nil {
			return nil, err
		}
		return d, SetValue(d, v)
	case Bytes:
		v, err := dec.ReadBytes()
		if err != nil {
			return nil, err
		}
		return d, SetValue(d, v)
	case String:
		v, err := dec.ReadString()
		if err != nil {
			return nil, err
		}
		return d, SetValue(d, v)
	case Fixed:
		b, err := dec.ReadFixed(schema.Size())
		if err != nil {
			return nil, err
		}
		fv, _ := d.Fixed()
		return d, fv.SetBytes(b)
	case Enum:
		sym, err := dec.ReadEnum()
		if err != nil {
			return nil, err
		}
		ev, _ := d.Enum()
		return d, ev.SetSymbol(sym)
	case Record, Error:
		rv, _ := d.Record()
		if err := dec.ReadMapStart(); err != nil {
			return nil, err
		}
		for {
			more, err := dec.ReadMapNext()
			if err != nil {
				return nil, err
			}
			if !more {
				break
			}
			key, err := dec.ReadMapKey()
			if err != nil {
				return nil, err
			}
			f, ok := schema.FieldByName(key)
			if !ok {
				return nil, newRuntimeError("%w: %q", ErrFieldNotFound, key)
			}
			fd, err := readJSONValue(dec, f.Type())
			if err != nil {
				return nil, err
			}
			if err := rv.Set(key, fd); err != nil {
				return nil, err
			}
		}
		return d, nil
	case Array:
		av, _ := d.Array()
		if err := dec.ReadArrayStart(); err != nil {
			return nil, err
		}
		for {
			more, err := dec.ReadArrayNext()
			if err != nil {
				return nil, err
			}
			if !more {
				break
			}
			item, err := readJSONValue(dec, schema.Element())
			if err != nil {
				return nil, err
			}
			av.Append(item)
		}
		return d, nil
	case Map:
		mv, _ := d.Map()
		if err := dec.ReadMapStart(); err != nil {
			return nil, err
		}
		for {
			more, err := dec.ReadMapNext()
			if err != nil {
				return nil, err
			}
			if !more {
				break
			}
			key, err := dec.ReadMapKey()
			if err != nil {
				return nil, err
			}
			val, err := readJSONValue(dec, schema.Values())
			if err != nil {
				return nil, err
			}
			mv.Set(key, val)
		}
		return d, nil
	case Union:
		uv, _ := d.Union()
		branchName, ok, err := dec.ReadUnionBranch()
		if err != nil {
			return nil, err
		}
		if !ok {
			for i, b := range schema.Branches() {
				if b.Type() == Null {
					if err := uv.SetIndex(i); err != nil {
						return nil, err
					}
					uv.value = NewDatum(b)
					return d, nil
				}
			}
			return nil, newRuntimeError("union has no null branch for a bare null value")
		}
		for i, b := range schema.Branches() {
			if unionBranchKey(b) == branchName {
				if err := uv.SetIndex(i); err != nil {
					return nil, err
				}
				val, err := readJSONValue(dec, b)
				if err != nil {
					return nil, err
				}
				uv.value = val
				return d, dec.ReadUnionEnd()
			}
		}
		return nil, newRuntimeError("%w: union has no branch named %q", ErrUnionIndexMismatch, branchName)
	default:
		return nil, newRuntimeError("cannot read unknown schema type %s", schema.Type())
	}
}
