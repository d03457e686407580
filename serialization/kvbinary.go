// Package serialization implements the two wire-facing codecs the engine
// uses: the binary-packed varint codec (wire.ReadVarInt/WriteVarInt and the
// struct Serialize/Deserialize methods in package wire) used for on-disk
// BlockEntry and chainindex-snapshot persistence, and the key-value binary
// codec implemented in this file, used for RPC-facing envelopes.
package serialization

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/ccoincore/cnode/cnerrors"
)

// Storage signature/version header. portableStorageSignatureA/B and
// formatVersion match the reference coin's KVBinaryCommon.h constants so
// that an envelope produced by this codec is byte-compatible with the
// reference RPC wire format.
const (
	portableStorageSignatureA = uint32(0x01011101)
	portableStorageSignatureB = uint32(0x01020101)
	formatVersion             = uint8(1)
)

// Header is the fixed 9-byte preamble every key-value binary blob starts
// with: 4-byte signature A, 4-byte signature B, 1-byte format version.
var Header = [9]byte{}

func init() {
	binary.LittleEndian.PutUint32(Header[0:4], portableStorageSignatureA)
	binary.LittleEndian.PutUint32(Header[4:8], portableStorageSignatureB)
	Header[8] = formatVersion
}

// Array-size packing marks, packed into the low 2 bits of the size varint,
// selecting the width of the size field that follows.
const (
	sizeMarkByte  = 0
	sizeMarkWord  = 1
	sizeMarkDword = 2
	sizeMarkInt64 = 3
)

// Value type tags, one per Kind.
const (
	typeInt64 uint8 = iota
	typeInt32
	typeInt16
	typeInt8
	typeUint64
	typeUint32
	typeUint16
	typeUint8
	typeDouble
	typeString
	typeBool
	typeObject
	typeArray
)

const arrayFlag uint8 = 0x80

// Kind identifies the dynamic type carried by a Value.
type Kind uint8

// Value kinds, mirroring the BIN_KV_SERIALIZE_TYPE_* tags of the reference
// coin's key-value binary codec.
const (
	KindInt64 Kind = iota
	KindInt32
	KindInt16
	KindInt8
	KindUint64
	KindUint32
	KindUint16
	KindUint8
	KindDouble
	KindString
	KindBool
	KindObject
	KindArray
)

var kindToType = map[Kind]uint8{
	KindInt64: typeInt64, KindInt32: typeInt32, KindInt16: typeInt16, KindInt8: typeInt8,
	KindUint64: typeUint64, KindUint32: typeUint32, KindUint16: typeUint16, KindUint8: typeUint8,
	KindDouble: typeDouble, KindString: typeString, KindBool: typeBool, KindObject: typeObject,
}

var typeToKind = func() map[uint8]Kind {
	m := make(map[uint8]Kind, len(kindToType))
	for k, v := range kindToType {
		m[v] = k
	}
	return m
}()

// Value is a single dynamically-typed node of a key-value binary document:
// a scalar, a nested Section (object), or an Array of homogeneously-typed
// elements.
type Value struct {
	Kind    Kind
	I64     int64
	U64     uint64
	F64     float64
	Bool    bool
	Str     []byte
	Object  *Section
	Array   []Value
	ArrayOf Kind // element kind, valid when Kind == KindArray
}

// Entry is a single named field of a Section, preserving insertion order
// (the reference format's on-the-wire encoding is order-sensitive).
type Entry struct {
	Name  string
	Value Value
}

// Section is an ordered map: name -> Value. It is the "object" node of the
// key-value binary tree and also the root of a document.
type Section struct {
	Entries []Entry
}

// Set appends or replaces (by name) an entry in the section.
func (s *Section) Set(name string, v Value) {
	for i := range s.Entries {
		if s.Entries[i].Name == name {
			s.Entries[i].Value = v
			return
		}
	}
	s.Entries = append(s.Entries, Entry{Name: name, Value: v})
}

// Get returns the named entry's value and whether it was present.
func (s *Section) Get(name string) (Value, bool) {
	for _, e := range s.Entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return Value{}, false
}

// SetUint64 is a convenience wrapper for Set with a KindUint64 value.
func (s *Section) SetUint64(name string, v uint64) { s.Set(name, Value{Kind: KindUint64, U64: v}) }

// SetString is a convenience wrapper for Set with a KindString value.
func (s *Section) SetString(name string, v []byte) { s.Set(name, Value{Kind: KindString, Str: v}) }

// SetObject is a convenience wrapper for Set with a KindObject value.
func (s *Section) SetObject(name string, v *Section) { s.Set(name, Value{Kind: KindObject, Object: v}) }

// writeArraySize packs val using the reference coin's variable-width
// scheme: the two low bits of the first byte/word/dword/qword select the
// width, the remaining bits (shifted right 2) hold the value.
func writeArraySize(w io.Writer, val uint64) error {
	switch {
	case val <= 63:
		return writeLE(w, uint8(val<<2)|sizeMarkByte)
	case val <= 16383:
		return writeLE(w, uint16(val<<2)|sizeMarkWord)
	case val <= 1073741823:
		return writeLE(w, uint32(val<<2)|sizeMarkDword)
	default:
		return writeLE(w, val<<2|sizeMarkInt64)
	}
}

func readArraySize(r io.Reader) (uint64, error) {
	var firstByte [1]byte
	if _, err := io.ReadFull(r, firstByte[:]); err != nil {
		return 0, cnerrors.Wrap(cnerrors.ParseError, err, "readArraySize")
	}
	mark := firstByte[0] & 0x3
	switch mark {
	case sizeMarkByte:
		return uint64(firstByte[0] >> 2), nil
	case sizeMarkWord:
		var rest [1]byte
		if _, err := io.ReadFull(r, rest[:]); err != nil {
			return 0, cnerrors.Wrap(cnerrors.ParseError, err, "readArraySize word")
		}
		v := binary.LittleEndian.Uint16([]byte{firstByte[0], rest[0]})
		return uint64(v >> 2), nil
	case sizeMarkDword:
		var rest [3]byte
		if _, err := io.ReadFull(r, rest[:]); err != nil {
			return 0, cnerrors.Wrap(cnerrors.ParseError, err, "readArraySize dword")
		}
		v := binary.LittleEndian.Uint32([]byte{firstByte[0], rest[0], rest[1], rest[2]})
		return uint64(v >> 2), nil
	default:
		var rest [7]byte
		if _, err := io.ReadFull(r, rest[:]); err != nil {
			return 0, cnerrors.Wrap(cnerrors.ParseError, err, "readArraySize qword")
		}
		v := binary.LittleEndian.Uint64([]byte{firstByte[0], rest[0], rest[1], rest[2], rest[3], rest[4], rest[5], rest[6]})
		return v >> 2, nil
	}
}

func writeLE(w io.Writer, v interface{}) error {
	return binary.Write(w, binary.LittleEndian, v)
}

func writeElementName(w io.Writer, name string) error {
	if len(name) > 255 {
		return cnerrors.New(cnerrors.ParseError, "element name too long: %d", len(name))
	}
	if err := writeLE(w, uint8(len(name))); err != nil {
		return err
	}
	_, err := io.WriteString(w, name)
	return err
}

func readElementName(r io.Reader) (string, error) {
	var l [1]byte
	if _, err := io.ReadFull(r, l[:]); err != nil {
		return "", cnerrors.Wrap(cnerrors.ParseError, err, "readElementName")
	}
	buf := make([]byte, l[0])
	if l[0] > 0 {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", cnerrors.Wrap(cnerrors.ParseError, err, "readElementName body")
		}
	}
	return string(buf), nil
}

// Encode writes the full key-value binary document (9-byte header, root
// object entry count, then the root's entries) to w.
func Encode(w io.Writer, root *Section) error {
	if _, err := w.Write(Header[:]); err != nil {
		return cnerrors.Wrap(cnerrors.StorageIoError, err, "Encode: header")
	}
	return writeSectionBody(w, root)
}

func writeSectionBody(w io.Writer, s *Section) error {
	if err := writeArraySize(w, uint64(len(s.Entries))); err != nil {
		return err
	}
	for _, e := range s.Entries {
		if err := writeElementName(w, e.Name); err != nil {
			return err
		}
		if err := writeValue(w, e.Value); err != nil {
			return err
		}
	}
	return nil
}

func writeValue(w io.Writer, v Value) error {
	if v.Kind == KindArray {
		if err := writeLE(w, arrayFlag|kindToType[v.ArrayOf]); err != nil {
			return err
		}
		if err := writeArraySize(w, uint64(len(v.Array))); err != nil {
			return err
		}
		for _, el := range v.Array {
			if err := writeScalar(w, el); err != nil {
				return err
			}
		}
		return nil
	}
	if err := writeLE(w, kindToType[v.Kind]); err != nil {
		return err
	}
	return writeScalar(w, v)
}

func writeScalar(w io.Writer, v Value) error {
	switch v.Kind {
	case KindInt64:
		return writeLE(w, v.I64)
	case KindInt32:
		return writeLE(w, int32(v.I64))
	case KindInt16:
		return writeLE(w, int16(v.I64))
	case KindInt8:
		return writeLE(w, int8(v.I64))
	case KindUint64:
		return writeLE(w, v.U64)
	case KindUint32:
		return writeLE(w, uint32(v.U64))
	case KindUint16:
		return writeLE(w, uint16(v.U64))
	case KindUint8:
		return writeLE(w, uint8(v.U64))
	case KindDouble:
		return writeLE(w, math.Float64bits(v.F64))
	case KindBool:
		b := uint8(0)
		if v.Bool {
			b = 1
		}
		return writeLE(w, b)
	case KindString:
		if err := writeArraySize(w, uint64(len(v.Str))); err != nil {
			return err
		}
		_, err := w.Write(v.Str)
		return err
	case KindObject:
		return writeSectionBody(w, v.Object)
	default:
		return cnerrors.New(cnerrors.ParseError, "writeScalar: unhandled kind %d", v.Kind)
	}
}

// Decode reads a full key-value binary document from r, validating the
// 9-byte header before decoding the root object.
func Decode(r io.Reader) (*Section, error) {
	var hdr [9]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, cnerrors.Wrap(cnerrors.ParseError, err, "Decode: header")
	}
	if hdr != Header {
		return nil, cnerrors.New(cnerrors.ParseError, "Decode: bad signature/version header")
	}
	return readSectionBody(r)
}

func readSectionBody(r io.Reader) (*Section, error) {
	count, err := readArraySize(r)
	if err != nil {
		return nil, err
	}
	s := &Section{Entries: make([]Entry, 0, count)}
	for i := uint64(0); i < count; i++ {
		name, err := readElementName(r)
		if err != nil {
			return nil, err
		}
		v, err := readValue(r)
		if err != nil {
			return nil, err
		}
		s.Entries = append(s.Entries, Entry{Name: name, Value: v})
	}
	return s, nil
}

func readValue(r io.Reader) (Value, error) {
	var typeByte [1]byte
	if _, err := io.ReadFull(r, typeByte[:]); err != nil {
		return Value{}, cnerrors.Wrap(cnerrors.ParseError, err, "readValue: type tag")
	}
	t := typeByte[0]
	if t&arrayFlag != 0 {
		elemKind, ok := typeToKind[t&^arrayFlag]
		if !ok {
			return Value{}, cnerrors.New(cnerrors.ParseError, "readValue: unknown array element type %d", t&^arrayFlag)
		}
		n, err := readArraySize(r)
		if err != nil {
			return Value{}, err
		}
		els := make([]Value, n)
		for i := range els {
			el, err := readScalar(r, elemKind)
			if err != nil {
				return Value{}, err
			}
			els[i] = el
		}
		return Value{Kind: KindArray, ArrayOf: elemKind, Array: els}, nil
	}
	kind, ok := typeToKind[t]
	if !ok {
		return Value{}, cnerrors.New(cnerrors.ParseError, "readValue: unknown type tag %d", t)
	}
	return readScalar(r, kind)
}

func readScalar(r io.Reader, kind Kind) (Value, error) {
	switch kind {
	case KindInt64:
		var v int64
		err := binary.Read(r, binary.LittleEndian, &v)
		return Value{Kind: kind, I64: v}, wrapParse(err)
	case KindInt32:
		var v int32
		err := binary.Read(r, binary.LittleEndian, &v)
		return Value{Kind: kind, I64: int64(v)}, wrapParse(err)
	case KindInt16:
		var v int16
		err := binary.Read(r, binary.LittleEndian, &v)
		return Value{Kind: kind, I64: int64(v)}, wrapParse(err)
	case KindInt8:
		var v int8
		err := binary.Read(r, binary.LittleEndian, &v)
		return Value{Kind: kind, I64: int64(v)}, wrapParse(err)
	case KindUint64:
		var v uint64
		err := binary.Read(r, binary.LittleEndian, &v)
		return Value{Kind: kind, U64: v}, wrapParse(err)
	case KindUint32:
		var v uint32
		err := binary.Read(r, binary.LittleEndian, &v)
		return Value{Kind: kind, U64: uint64(v)}, wrapParse(err)
	case KindUint16:
		var v uint16
		err := binary.Read(r, binary.LittleEndian, &v)
		return Value{Kind: kind, U64: uint64(v)}, wrapParse(err)
	case KindUint8:
		var v uint8
		err := binary.Read(r, binary.LittleEndian, &v)
		return Value{Kind: kind, U64: uint64(v)}, wrapParse(err)
	case KindDouble:
		var bits uint64
		if err := binary.Read(r, binary.LittleEndian, &bits); err != nil {
			return Value{}, wrapParse(err)
		}
		return Value{Kind: kind, F64: math.Float64frombits(bits)}, nil
	case KindBool:
		var v uint8
		err := binary.Read(r, binary.LittleEndian, &v)
		return Value{Kind: kind, Bool: v != 0}, wrapParse(err)
	case KindString:
		n, err := readArraySize(r)
		if err != nil {
			return Value{}, err
		}
		buf := make([]byte, n)
		if n > 0 {
			if _, err := io.ReadFull(r, buf); err != nil {
				return Value{}, wrapParse(err)
			}
		}
		return Value{Kind: kind, Str: buf}, nil
	case KindObject:
		sec, err := readSectionBody(r)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: kind, Object: sec}, nil
	default:
		return Value{}, cnerrors.New(cnerrors.ParseError, "readScalar: unhandled kind %d", kind)
	}
}

func wrapParse(err error) error {
	if err == nil {
		return nil
	}
	return cnerrors.Wrap(cnerrors.ParseError, err, "readScalar")
}
