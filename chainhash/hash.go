// Package chainhash provides the 32-byte hash type used throughout the
// engine to identify blocks, transactions and key-images.
package chainhash

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// HashSize is the number of bytes in a hash produced by HashH.
const HashSize = 32

// MaxHashStringSize is the maximum length of a Hash hash string.
const MaxHashStringSize = HashSize * 2

// ErrHashStrSize describes an error that indicates the caller specified a
// hash string that has too many characters.
var ErrHashStrSize = fmt.Errorf("max hash string length is %v bytes", MaxHashStringSize)

// Hash is used in several of the cryptonote messages and common structures.
// It typically represents the Keccak-256 of data (see HashH).
type Hash [HashSize]byte

// String returns the Hash as a hexadecimal string. Unlike Bitcoin,
// CryptoNote hashes are displayed and stored in the same byte order, so
// String returns the plain, non-reversed hex encoding.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// CloneBytes returns a copy of the bytes which represent the hash as a byte
// slice.
func (h *Hash) CloneBytes() []byte {
	newHash := make([]byte, HashSize)
	copy(newHash, h[:])
	return newHash
}

// SetBytes sets the bytes which represent the hash. An error is returned if
// the number of bytes passed in is not HashSize.
func (h *Hash) SetBytes(newHash []byte) error {
	nhlen := len(newHash)
	if nhlen != HashSize {
		return fmt.Errorf("invalid hash length of %v, want %v", nhlen, HashSize)
	}
	copy(h[:], newHash)
	return nil
}

// IsEqual returns true if target is the same as the hash.
func (h *Hash) IsEqual(target *Hash) bool {
	if h == nil && target == nil {
		return true
	}
	if h == nil || target == nil {
		return false
	}
	return *h == *target
}

// NewHash returns a new Hash from a byte slice.
func NewHash(newHash []byte) (*Hash, error) {
	var sh Hash
	err := sh.SetBytes(newHash)
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

// NewHashFromStr creates a Hash from a hash string.
func NewHashFromStr(hash string) (*Hash, error) {
	ret := new(Hash)
	err := Decode(ret, hash)
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// Decode decodes the form of hash expected for CryptoNote identifiers:
// plain hexadecimal, not reversed.
func Decode(dst *Hash, src string) error {
	if len(src) > MaxHashStringSize {
		return ErrHashStrSize
	}

	srcBytes, err := hex.DecodeString(src)
	if err != nil {
		return err
	}
	if len(srcBytes) != HashSize {
		return fmt.Errorf("invalid hash length of %v, want %v", len(srcBytes), HashSize)
	}
	copy(dst[:], srcBytes)
	return nil
}

// HashH computes the Keccak-256 (not the NIST-standardized SHA3-256) hash
// of the given data and returns it as a Hash. CryptoNote's reference coin
// uses Keccak, predating the SHA3 finalization, so NewLegacyKeccak256 is
// used rather than sha3.New256.
func HashH(b []byte) Hash {
	h := sha3.NewLegacyKeccak256()
	h.Write(b)
	var hash Hash
	h.Sum(hash[:0])
	return hash
}

// HashB computes the Keccak-256 hash of the given data and returns it as a
// byte slice.
func HashB(b []byte) []byte {
	h := HashH(b)
	return h[:]
}
