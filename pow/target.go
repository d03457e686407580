package pow

import (
	"math/big"

	"github.com/ccoincore/cnode/chainhash"
)

// maxTarget is the target corresponding to difficulty 1: the full 256-bit
// range. A block's proof-of-work hash, read as a big-endian integer, must
// be less than or equal to Target(difficulty) to be accepted.
var maxTarget = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// Target returns the 256-bit target corresponding to difficulty: the
// highest hash value (as a big-endian integer) that satisfies it. Target
// is monotonically non-increasing in difficulty.
func Target(difficulty uint64) *big.Int {
	if difficulty == 0 {
		return new(big.Int).Set(maxTarget)
	}
	return new(big.Int).Div(maxTarget, new(big.Int).SetUint64(difficulty))
}

// CheckProofOfWork reports whether powHash satisfies difficulty: read as a
// big-endian 256-bit integer, it must not exceed Target(difficulty).
func CheckProofOfWork(powHash chainhash.Hash, difficulty uint64) bool {
	hashInt := new(big.Int).SetBytes(powHash[:])
	return hashInt.Cmp(Target(difficulty)) <= 0
}
