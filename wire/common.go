// Package wire implements the binary encodings of the block and
// transaction structures exchanged between peers and persisted to disk.
// It mirrors the style of a classic struct-order, varint-length binary
// wire package: explicit Read/Write methods, no reflection, explicit
// ParseError-wrapped failures on truncation.
package wire

import (
	"encoding/binary"
	"io"

	"github.com/ccoincore/cnode/chainhash"
	"github.com/ccoincore/cnode/cnerrors"
)

// MaxVarIntPayload is the maximum payload size, in bytes, for a variable
// length integer.
const MaxVarIntPayload = 10

// ReadVarInt reads a variable length integer from r and returns it as a
// uint64, using the standard LEB128-style base-128 varint encoding used
// throughout the CryptoNote wire formats.
func ReadVarInt(r io.Reader) (uint64, error) {
	var buf [1]byte
	var result uint64
	var shift uint
	for i := 0; i < MaxVarIntPayload; i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, cnerrors.Wrap(cnerrors.ParseError, err, "ReadVarInt: unexpected EOF")
		}
		b := buf[0]
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
	return 0, cnerrors.New(cnerrors.ParseError, "ReadVarInt: varint too long")
}

// WriteVarInt writes val to w using the base-128 varint encoding.
func WriteVarInt(w io.Writer, val uint64) error {
	var buf []byte
	for val >= 0x80 {
		buf = append(buf, byte(val)|0x80)
		val >>= 7
	}
	buf = append(buf, byte(val))
	_, err := w.Write(buf)
	if err != nil {
		return cnerrors.Wrap(cnerrors.StorageIoError, err, "WriteVarInt")
	}
	return nil
}

// VarIntSerializeSize returns the number of bytes it would take to
// serialize val as a variable length integer.
func VarIntSerializeSize(val uint64) int {
	n := 1
	for val >= 0x80 {
		n++
		val >>= 7
	}
	return n
}

// ReadVarBytes reads a variable length byte array, prefixed by its length
// as a varint, rejecting arrays longer than maxAllowed.
func ReadVarBytes(r io.Reader, maxAllowed uint64, fieldName string) ([]byte, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if count > maxAllowed {
		return nil, cnerrors.New(cnerrors.ParseError,
			"%s: byte array too long [count %d, max %d]", fieldName, count, maxAllowed)
	}
	b := make([]byte, count)
	if count == 0 {
		return b, nil
	}
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, cnerrors.Wrap(cnerrors.ParseError, err, "%s: unexpected EOF", fieldName)
	}
	return b, nil
}

// WriteVarBytes writes a variable length byte array, prefixed by its
// length as a varint.
func WriteVarBytes(w io.Writer, b []byte) error {
	if err := WriteVarInt(w, uint64(len(b))); err != nil {
		return err
	}
	if len(b) == 0 {
		return nil
	}
	_, err := w.Write(b)
	if err != nil {
		return cnerrors.Wrap(cnerrors.StorageIoError, err, "WriteVarBytes")
	}
	return nil
}

// readHash reads a fixed-size chainhash.Hash from r.
func readHash(r io.Reader, h *chainhash.Hash) error {
	if _, err := io.ReadFull(r, h[:]); err != nil {
		return cnerrors.Wrap(cnerrors.ParseError, err, "readHash: unexpected EOF")
	}
	return nil
}

// writeHash writes a fixed-size chainhash.Hash to w.
func writeHash(w io.Writer, h *chainhash.Hash) error {
	_, err := w.Write(h[:])
	if err != nil {
		return cnerrors.Wrap(cnerrors.StorageIoError, err, "writeHash")
	}
	return nil
}

// readUint32 reads a little-endian uint32 from r.
func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, cnerrors.Wrap(cnerrors.ParseError, err, "readUint32: unexpected EOF")
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// writeUint32 writes a little-endian uint32 to w.
func writeUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	if err != nil {
		return cnerrors.Wrap(cnerrors.StorageIoError, err, "writeUint32")
	}
	return nil
}

// readUint64 reads a little-endian uint64 from r.
func readUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, cnerrors.Wrap(cnerrors.ParseError, err, "readUint64: unexpected EOF")
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// writeUint64 writes a little-endian uint64 to w.
func writeUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	if err != nil {
		return cnerrors.Wrap(cnerrors.StorageIoError, err, "writeUint64")
	}
	return nil
}
