package avro

// JSONDecoder reads primitive and framing values in Avro's JSON wire format,
// driven by a jsonLexer. Containers are tracked the same way the lexer
// tracks them; ReadArrayNext/ReadMapNext report whether another element
// follows by peeking for a closing bracket/brace versus a comma.
type JSONDecoder struct {
	lex *jsonLexer
}

func NewJSONDecoder(data []byte) *JSONDecoder {
	return &JSONDecoder{lex: newJSONLexer(data)}
}

func (d *JSONDecoder) ReadNull() error {
	if err := d.lex.next(); err != nil {
		return err
	}
	if d.lex.tok != tokNull {
		return newRuntimeError("%w: expected null", ErrUnexpectedToken)
	}
	return nil
}

func (d *JSONDecoder) ReadBoolean() (bool, error) {
	if err := d.lex.next(); err != nil {
		return false, err
	}
	if d.lex.tok != tokBool {
		return false, newRuntimeError("%w: expected boolean", ErrUnexpectedToken)
	}
	return d.lex.boolVal, nil
}

func (d *JSONDecoder) ReadInt() (int32, error) {
	v, err := d.ReadLong()
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

func (d *JSONDecoder) ReadLong() (int64, error) {
	if err := d.lex.next(); err != nil {
		return 0, err
	}
	switch d.lex.tok {
	case tokLong:
		return d.lex.longVal, nil
	case tokDouble:
		return int64(d.lex.dblVal), nil
	default:
		return 0, newRuntimeError("%w: expected number", ErrUnexpectedToken)
	}
}

func (d *JSONDecoder) readFloatLike() (float64, error) {
	if err := d.lex.next(); err != nil {
		return 0, err
	}
	switch d.lex.tok {
	case tokDouble:
		return d.lex.dblVal, nil
	case tokLong:
		return float64(d.lex.longVal), nil
	default:
		return 0, newRuntimeError("%w: expected number", ErrUnexpectedToken)
	}
}

func (d *JSONDecoder) ReadFloat() (float32, error) {
	v, err := d.readFloatLike()
	return float32(v), err
}

func (d *JSONDecoder) ReadDouble() (float64, error) {
	return d.readFloatLike()
}

func (d *JSONDecoder) readStringLiteral() (string, error) {
	if err := d.lex.next(); err != nil {
		return "", err
	}
	if d.lex.tok != tokString {
		return "", newRuntimeError("%w: expected string", ErrUnexpectedToken)
	}
	return d.lex.strVal, nil
}

// ReadBytes decodes the Latin-1-mapped string form bytes/fixed use back
// into raw bytes.
func (d *JSONDecoder) ReadBytes() ([]byte, error) {
	s, err := d.readStringLiteral()
	if err != nil {
		return nil, err
	}
	b := make([]byte, len([]rune(s)))
	for i, r := range []rune(s) {
		b[i] = byte(r)
	}
	return b, nil
}

func (d *JSONDecoder) ReadString() (string, error) {
	return d.readStringLiteral()
}

func (d *JSONDecoder) ReadFixed(size int) ([]byte, error) {
	b, err := d.ReadBytes()
	if err != nil {
		return nil, err
	}
	if len(b) != size {
		return nil, newRuntimeError("fixed value requires exactly %d bytes, got %d", size, len(b))
	}
	return b, nil
}

func (d *JSONDecoder) ReadEnum() (string, error) {
	return d.readStringLiteral()
}

func (d *JSONDecoder) ReadArrayStart() error {
	if err := d.lex.next(); err != nil {
		return err
	}
	if d.lex.tok != tokArrayStart {
		return newRuntimeError("%w: expected array", ErrUnexpectedToken)
	}
	return nil
}

// ReadArrayNext reports whether another element follows in the current
// array; it consumes the separating comma or the closing bracket.
func (d *JSONDecoder) ReadArrayNext() (bool, error) {
	b, ok := d.lex.peekByte()
	if !ok {
		return false, newRuntimeError("%w: unterminated array", ErrJSONLex)
	}
	if b == ']' {
		d.lex.pos++
		return false, nil
	}
	if b == ',' {
		d.lex.pos++
		return true, nil
	}
	// first element, no comma consumed yet
	return true, nil
}

func (d *JSONDecoder) ReadMapStart() error {
	if err := d.lex.next(); err != nil {
		return err
	}
	if d.lex.tok != tokObjectStart {
		return newRuntimeError("%w: expected object", ErrUnexpectedToken)
	}
	return nil
}

// ReadMapNext reports whether another key/value pair follows, consuming
// the comma or closing brace. When true, the caller should read the key
// with ReadMapKey next.
func (d *JSONDecoder) ReadMapNext() (bool, error) {
	b, ok := d.lex.peekByte()
	if !ok {
		return false, newRuntimeError("%w: unterminated object", ErrJSONLex)
	}
	if b == '}' {
		d.lex.pos++
		return false, nil
	}
	if b == ',' {
		d.lex.pos++
		return true, nil
	}
	return true, nil
}

// ReadMapKey reads one map entry's key plus the following colon.
func (d *JSONDecoder) ReadMapKey() (string, error) {
	key, err := d.readStringLiteral()
	if err != nil {
		return "", err
	}
	if err := d.lex.expect(':'); err != nil {
		return "", err
	}
	return key, nil
}

// ReadUnionBranch peeks the next value: a bare "null" token selects the
// null branch (returns ok=false, no object wrapper to close); otherwise it
// consumes the {"<branchFullName>": wrapper and returns the branch name
// with ok=true, leaving the caller to decode the value and then call
// ReadUnionEnd.
func (d *JSONDecoder) ReadUnionBranch() (branchName string, ok bool, err error) {
	b, peeked := d.lex.peekByte()
	if !peeked {
		return "", false, newRuntimeError("%w: expected union value", ErrJSONLex)
	}
	if b == 'n' {
		if err := d.ReadNull(); err != nil {
			return "", false, err
		}
		return "", false, nil
	}
	if err := d.lex.expect('{'); err != nil {
		return "", false, err
	}
	name, err := d.readStringLiteral()
	if err != nil {
		return "", false, err
	}
	if err := d.lex.expect(':'); err != nil {
		return "", false, err
	}
	return name, true, nil
}

func (d *JSONDecoder) ReadUnionEnd() error {
	return d.lex.expect('}')
}
