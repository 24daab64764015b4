package avro

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userBinarySchemaJSON = `{"namespace":"example.avro","type":"record","name":"User","fields":[
  {"name":"name","type":"string"},
  {"name":"favorite_number","type":["int","null"]},
  {"name":"favorite_color","type":["string","null"]}]}`

func TestUserRecordBinaryExactBytes(t *testing.T) {
	schema, err := ParseString(userBinarySchemaJSON)
	require.NoError(t, err)

	d := NewDatum(schema)
	rv, err := d.Record()
	require.NoError(t, err)

	nameD, err := rv.Get("name")
	require.NoError(t, err)
	require.NoError(t, SetValue(nameD, "bob"))

	numD, err := rv.Get("favorite_number")
	require.NoError(t, err)
	numU, err := numD.Union()
	require.NoError(t, err)
	require.NoError(t, numU.SetIndex(0))
	require.NoError(t, SetValue(numU.Value(), int32(8)))

	colorD, err := rv.Get("favorite_color")
	require.NoError(t, err)
	colorU, err := colorD.Union()
	require.NoError(t, err)
	require.NoError(t, colorU.SetIndex(0))
	require.NoError(t, SetValue(colorU.Value(), "blue"))

	var buf bytes.Buffer
	enc := NewBinaryEncoder(&buf, 64)
	w := NewGenericWriter(schema)
	require.NoError(t, w.WriteBinary(enc, d))
	require.NoError(t, enc.Flush())

	want := []byte{0x06, 0x62, 0x6F, 0x62, 0x00, 0x10, 0x00, 0x08, 0x62, 0x6C, 0x75, 0x65}
	assert.Equal(t, want, buf.Bytes())
}

func TestUserRecordJSONExact(t *testing.T) {
	schema, err := ParseString(userBinarySchemaJSON)
	require.NoError(t, err)

	d := NewDatum(schema)
	rv, _ := d.Record()
	nameD, _ := rv.Get("name")
	require.NoError(t, SetValue(nameD, "bob"))
	numD, _ := rv.Get("favorite_number")
	numU, _ := numD.Union()
	require.NoError(t, numU.SetIndex(0))
	require.NoError(t, SetValue(numU.Value(), int32(8)))
	colorD, _ := rv.Get("favorite_color")
	colorU, _ := colorD.Union()
	require.NoError(t, colorU.SetIndex(0))
	require.NoError(t, SetValue(colorU.Value(), "blue"))

	var buf bytes.Buffer
	enc := NewJSONEncoder(&buf)
	w := NewGenericWriter(schema)
	require.NoError(t, w.WriteJSON(enc, d))

	assert.JSONEq(t,
		`{"name":"bob","favorite_number":{"int":8},"favorite_color":{"string":"blue"}}`,
		buf.String())
}

const enumArrayMapFixedSchemaJSON = `{"type":"record","name":"EAMF","fields":[
  {"name":"e","type":{"type":"enum","name":"Status","symbols":["FULLTIME","PARTTIME"]}},
  {"name":"a","type":{"type":"array","items":"float"}},
  {"name":"m","type":{"type":"map","values":"long"}},
  {"name":"f","type":{"type":"fixed","name":"F4","size":4}}]}`

func TestEnumArrayMapFixedBinaryEncoding(t *testing.T) {
	schema, err := ParseString(enumArrayMapFixedSchemaJSON)
	require.NoError(t, err)

	d := NewDatum(schema)
	rv, err := d.Record()
	require.NoError(t, err)

	eD, err := rv.Get("e")
	require.NoError(t, err)
	eV, err := eD.Enum()
	require.NoError(t, err)
	require.NoError(t, eV.SetSymbol("PARTTIME"))
	require.Equal(t, 1, eV.Ordinal())

	aD, err := rv.Get("a")
	require.NoError(t, err)
	aV, err := aD.Array()
	require.NoError(t, err)
	elemSchema := aD.Schema().Element()
	floats := []float32{1.23, 4.56}
	for _, f := range floats {
		item := NewDatum(elemSchema)
		require.NoError(t, SetValue(item, f))
		aV.Append(item)
	}

	mD, err := rv.Get("m")
	require.NoError(t, err)
	mV, err := mD.Map()
	require.NoError(t, err)
	valSchema := mD.Schema().Values()
	mapData := map[string]int64{"m1": 10, "m2": 20}
	for k, v := range mapData {
		item := NewDatum(valSchema)
		require.NoError(t, SetValue(item, v))
		mV.Set(k, item)
	}

	fD, err := rv.Get("f")
	require.NoError(t, err)
	fV, err := fD.Fixed()
	require.NoError(t, err)
	require.NoError(t, fV.SetBytes([]byte{1, 2, 3, 4}))

	var buf bytes.Buffer
	enc := NewBinaryEncoder(&buf, 128)
	w := NewGenericWriter(schema)
	require.NoError(t, w.WriteBinary(enc, d))
	require.NoError(t, enc.Flush())
	out := buf.Bytes()

	// enum ordinal 1 zigzag-encodes to 0x02.
	require.True(t, len(out) > 0)
	assert.Equal(t, byte(0x02), out[0])

	// array: block count 2 zigzags to 0x04, then two raw little-endian
	// float32 payloads, then a 0x00 terminator.
	wantArrayBody := []byte{0x04}
	for _, f := range floats {
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, math.Float32bits(f))
		wantArrayBody = append(wantArrayBody, b...)
	}
	wantArrayBody = append(wantArrayBody, 0x00)
	assert.Equal(t, wantArrayBody, out[1:1+len(wantArrayBody)])

	// map entry order is unspecified by Avro (unlike array/enum/fixed), so
	// the map and fixed portions are checked by decoding the whole datum
	// back instead of asserting a fixed byte layout.
	dec := NewBinaryDecoder(bytes.NewReader(out), 128)
	r := NewGenericReader(schema)
	got, err := r.ReadBinary(dec)
	require.NoError(t, err)

	gotRV, err := got.Record()
	require.NoError(t, err)

	gotE, err := gotRV.Get("e")
	require.NoError(t, err)
	gotEV, err := gotE.Enum()
	require.NoError(t, err)
	sym, err := gotEV.Symbol()
	require.NoError(t, err)
	assert.Equal(t, "PARTTIME", sym)

	gotM, err := gotRV.Get("m")
	require.NoError(t, err)
	gotMV, err := gotM.Map()
	require.NoError(t, err)
	for k, want := range mapData {
		v, ok := gotMV.Get(k)
		require.True(t, ok)
		n, err := GetValue[int64](v)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	gotF, err := gotRV.Get("f")
	require.NoError(t, err)
	gotFV, err := gotF.Fixed()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, gotFV.Bytes())
}

const recursiveNodeSchemaJSON = `{"type":"record","name":"Node","namespace":"example.avro","fields":[
  {"name":"value","type":{"type":"record","name":"Value","fields":[{"name":"a","type":"int"}]}},
  {"name":"nextNode","type":["Node","null"]}
]}`

func TestRecursiveNodeSchemaParsesSelfReference(t *testing.T) {
	schema, err := ParseString(recursiveNodeSchemaJSON)
	require.NoError(t, err)
	require.Equal(t, Record, schema.Type())

	nextField, ok := schema.FieldByName("nextNode")
	require.True(t, ok)
	require.Equal(t, Union, nextField.Type().Type())

	branches := nextField.Type().Branches()
	require.Len(t, branches, 2)
	assert.Same(t, schema, branches[0])
	assert.Equal(t, Null, branches[1].Type())
}

func TestRecursiveNodeSchemaRoundTripsThroughBinary(t *testing.T) {
	schema, err := ParseString(recursiveNodeSchemaJSON)
	require.NoError(t, err)

	// head (a=1) -> next (a=2) -> nil, built by hand rather than via the
	// writer so the binary round trip below is checking parser-produced
	// structure, not just writer code.
	head := NewDatum(schema)
	headRV, err := head.Record()
	require.NoError(t, err)
	headValueD, err := headRV.Get("value")
	require.NoError(t, err)
	headValueRV, err := headValueD.Record()
	require.NoError(t, err)
	headAD, err := headValueRV.Get("a")
	require.NoError(t, err)
	require.NoError(t, SetValue(headAD, int32(1)))
	headNextD, err := headRV.Get("nextNode")
	require.NoError(t, err)
	headNextU, err := headNextD.Union()
	require.NoError(t, err)
	require.NoError(t, headNextU.SetIndex(0))
	headNextRV, err := headNextU.Value().Record()
	require.NoError(t, err)
	headNextValueD, err := headNextRV.Get("value")
	require.NoError(t, err)
	headNextValueRV, err := headNextValueD.Record()
	require.NoError(t, err)
	headNextAD, err := headNextValueRV.Get("a")
	require.NoError(t, err)
	require.NoError(t, SetValue(headNextAD, int32(2)))
	headNextNextD, err := headNextRV.Get("nextNode")
	require.NoError(t, err)
	headNextNextU, err := headNextNextD.Union()
	require.NoError(t, err)
	require.NoError(t, headNextNextU.SetIndex(1))

	var buf bytes.Buffer
	enc := NewBinaryEncoder(&buf, 128)
	w := NewGenericWriter(schema)
	require.NoError(t, w.WriteBinary(enc, head))
	require.NoError(t, enc.Flush())

	dec := NewBinaryDecoder(bytes.NewReader(buf.Bytes()), 128)
	r := NewGenericReader(schema)
	got, err := r.ReadBinary(dec)
	require.NoError(t, err)

	gotRV, err := got.Record()
	require.NoError(t, err)
	gotValueD, err := gotRV.Get("value")
	require.NoError(t, err)
	gotValueRV, err := gotValueD.Record()
	require.NoError(t, err)
	gotAD, err := gotValueRV.Get("a")
	require.NoError(t, err)
	gotA, err := GetValue[int32](gotAD)
	require.NoError(t, err)
	assert.Equal(t, int32(1), gotA)

	gotNextD, err := gotRV.Get("nextNode")
	require.NoError(t, err)
	gotNextU, err := gotNextD.Union()
	require.NoError(t, err)
	assert.Equal(t, 0, gotNextU.Index())
	gotNextRV, err := gotNextU.Value().Record()
	require.NoError(t, err)
	gotNextValueD, err := gotNextRV.Get("value")
	require.NoError(t, err)
	gotNextValueRV, err := gotNextValueD.Record()
	require.NoError(t, err)
	gotNextAD, err := gotNextValueRV.Get("a")
	require.NoError(t, err)
	gotNextA, err := GetValue[int32](gotNextAD)
	require.NoError(t, err)
	assert.Equal(t, int32(2), gotNextA)

	gotNextNextD, err := gotNextRV.Get("nextNode")
	require.NoError(t, err)
	gotNextNextU, err := gotNextNextD.Union()
	require.NoError(t, err)
	assert.Equal(t, 1, gotNextNextU.Index())
}

func TestDuplicateUnionBranchFailsWithAvroRuntime(t *testing.T) {
	_, err := NewUnionSchema(NewPrimitiveSchema(String), NewPrimitiveSchema(String))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAvroRuntime)
}

func TestInvalidDefaultFailsWithAvroTypeThroughParser(t *testing.T) {
	_, err := ParseString(`{"type":"record","name":"R","fields":[
	  {"name":"x","type":"int","default":"not a number"}]}`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAvroType)
}

func TestParserNamespaceScoping(t *testing.T) {
	schema, err := ParseString(`{"type":"record","name":"Outer","namespace":"a.b",
	  "fields":[{"name":"inner","type":{"type":"record","name":"Inner","fields":[
	    {"name":"x","type":"int"}]}}]}`)
	require.NoError(t, err)
	assert.Equal(t, "a.b.Outer", schema.FullName())

	innerField, ok := schema.FieldByName("inner")
	require.True(t, ok)
	assert.Equal(t, "a.b.Inner", innerField.Type().FullName())
}

func TestParserAliasesQualifyAgainstNamespace(t *testing.T) {
	schema, err := ParseString(`{"type":"record","name":"R","namespace":"a.b",
	  "aliases":["Old","c.d.Older"],"fields":[]}`)
	require.NoError(t, err)
	aliases := schema.Aliases()
	require.Len(t, aliases, 2)
	assert.Equal(t, "a.b.Old", aliases[0].Full())
	assert.Equal(t, "c.d.Older", aliases[1].Full())
}

func TestParserUnknownAttributePassthrough(t *testing.T) {
	schema, err := ParseString(`{"type":"record","name":"R","fields":[],"custom":"value"}`)
	require.NoError(t, err)
	v, ok := schema.Attributes().Get("custom")
	require.True(t, ok)
	assert.Equal(t, "value", v)
}

func TestParseYAMLEquivalentToJSON(t *testing.T) {
	jsonSchema, err := ParseString(`{"type":"record","name":"R","fields":[{"name":"x","type":"int"}]}`)
	require.NoError(t, err)

	yamlSchema, err := ParseYAML([]byte("type: record\nname: R\nfields:\n  - name: x\n    type: int\n"))
	require.NoError(t, err)

	jout, err := Canonical(jsonSchema)
	require.NoError(t, err)
	yout, err := Canonical(yamlSchema)
	require.NoError(t, err)
	assert.Equal(t, jout, yout)
}
