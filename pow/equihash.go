// Package pow implements Equihash proof-of-work solution verification and
// the difficulty-to-target comparison the blockchain engine runs against
// every candidate block header. Unlike Bitcoin/Decred-style chains, block
// headers here carry no compact "bits" field: difficulty is recomputed by
// every node from chain history (see package difficulty) and compared
// directly as a target derived from that integer.
package pow

import (
	"encoding/binary"
	"errors"
	"hash"
	"math/big"
	"reflect"

	"github.com/minio/blake2b-simd"
)

const wordSize = 32
const wordMask = (1 << wordSize) - 1
const byteMask = 0xFF

// personPrefix seeds the blake2b personalization string; distinct from the
// reference implementation's own prefix so that a solution valid on one
// network is never mistakenly accepted on the other.
const personPrefix = "CNodeEquihash"

var (
	errBadArg           = errors.New("pow: invalid argument")
	errKTooLarge        = errors.New("pow: k must be less than n")
	errCollisionLen     = errors.New("pow: collision length too large for a 32-bit index space")
	errDuplicateIndices = errors.New("pow: duplicate solution indices")
	errPairOrdering     = errors.New("pow: solution indices fail pairwise ordering")
	errBadWord          = errors.New("pow: xor-folded word nonzero above the collision window")
	bigZero             = big.NewInt(0)
)

// ValidateParams reports whether (n, k) form a legal Equihash instance:
// n divisible by 8 and by k+1, k < n, and the resulting per-step collision
// bit-length fits in a 32-bit index.
func ValidateParams(n, k int) error {
	if n < 2 {
		return errBadArg
	}
	if k < 3 {
		return errBadArg
	}
	if n%8 != 0 || n%(k+1) != 0 {
		return errBadArg
	}
	if k >= n {
		return errKTooLarge
	}
	if collisionLength(n, k)+1 >= 32 {
		return errCollisionLen
	}
	return nil
}

func collisionLength(n, k int) int { return n / (k + 1) }

func indicesPerHashOutput(n int) int { return 512 / n }

func powOf2(k int) int {
	if k < 1 {
		return 1
	}
	return 1 << uint(k)
}

func person(n, k int) []byte {
	return append([]byte(personPrefix), append(writeU32(uint32(n)), writeU32(uint32(k))...)...)
}

func writeU32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func newHash(n, k int) (hash.Hash, error) {
	return blake2b.New(&blake2b.Config{
		Person: person(n, k),
		Size:   uint8((512 / n) * n / 8),
	})
}

func copyHash(src hash.Hash) hash.Hash {
	typ := reflect.TypeOf(src)
	val := reflect.ValueOf(src)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
		val = val.Elem()
	}
	elem := reflect.New(typ).Elem()
	elem.Set(val)
	return elem.Addr().Interface().(hash.Hash)
}

func writeBytesToHash(h hash.Hash, b []byte) error {
	n, err := h.Write(b)
	if err != nil {
		return err
	}
	if n != len(b) {
		return errors.New("pow: short hash write")
	}
	return nil
}

func hasDuplicateIndices(indices []uint32) bool {
	seen := make(map[uint32]struct{}, len(indices))
	for _, idx := range indices {
		if _, ok := seen[idx]; ok {
			return true
		}
		seen[idx] = struct{}{}
	}
	return false
}

func validateSolutionOrdering(k int, indices []uint32) error {
	solutionLen := powOf2(k)
	for s := 0; s < k; s++ {
		d := 1 << uint(s)
		for i := 0; i < solutionLen; i += 2 * d {
			if indices[i] >= indices[i+d] {
				return errPairOrdering
			}
		}
	}
	return nil
}

func generateWord(n int, h hash.Hash, idx uint32) (*big.Int, error) {
	bytesPerWord := n / 8
	wordsPerHash := indicesPerHashOutput(n)

	hidx := idx / uint32(wordsPerHash)
	hrem := int(idx % uint32(wordsPerHash))

	ctx1 := copyHash(h)
	if err := writeBytesToHash(ctx1, writeU32(hidx)); err != nil {
		return nil, err
	}
	digest := ctx1.Sum(nil)

	word := big.NewInt(0)
	for i := hrem * bytesPerWord; i < hrem*bytesPerWord+bytesPerWord; i++ {
		word.Lsh(word, 8)
		word.Or(word, big.NewInt(int64(digest[i])&0xFF))
	}
	return word, nil
}

func generateWords(n, k int, indices []uint32, h hash.Hash) ([]*big.Int, error) {
	words := make([]*big.Int, len(indices))
	for i, idx := range indices {
		w, err := generateWord(n, h, idx)
		if err != nil {
			return nil, err
		}
		words[i] = w
	}
	return words, nil
}

func validateWords(n, k int, words []*big.Int) bool {
	solutionLen := powOf2(k)
	bitsPerStage := n / (k + 1)
	for s := 0; s < k; s++ {
		d := 1 << uint(s)
		for i := 0; i < solutionLen; i += 2 * d {
			w := new(big.Int).Xor(words[i], words[i+d])
			if w.Rsh(w, uint(n-(s+1)*bitsPerStage)).Cmp(bigZero) != 0 {
				return false
			}
			words[i] = new(big.Int).Xor(words[i], words[i+d])
		}
	}
	return words[0].Cmp(bigZero) == 0
}

// ValidateSolution reports whether solutionIndices is a valid Equihash(n,k)
// solution for the given header bytes.
func ValidateSolution(n, k int, header []byte, solutionIndices []uint32) (bool, error) {
	if err := ValidateParams(n, k); err != nil {
		return false, err
	}
	if len(header) == 0 {
		return false, errBadArg
	}
	if len(solutionIndices) != powOf2(k) {
		return false, errBadArg
	}
	if hasDuplicateIndices(solutionIndices) {
		return false, errDuplicateIndices
	}

	h, err := newHash(n, k)
	if err != nil {
		return false, err
	}
	if err := writeBytesToHash(h, header); err != nil {
		return false, err
	}

	if err := validateSolutionOrdering(k, solutionIndices); err != nil {
		return false, err
	}

	words, err := generateWords(n, k, solutionIndices, h)
	if err != nil {
		return false, err
	}
	return validateWords(n, k, words), nil
}
