// Package chaincfg defines the network-parameter value object every other
// package threads through construction instead of reaching for a global
// mutable Currency/config singleton: genesis block, emission curve
// constants, size-limit growth curve, checkpoints and the hard-fork
// algorithm schedule are all fields of Params, and testnet-vs-mainnet is a
// constructor choice, not a build tag or package-level flag.
package chaincfg

import (
	"math/big"

	"github.com/ccoincore/cnode/chainhash"
	"github.com/ccoincore/cnode/wire"
)

// Checkpoint identifies a block by its block height and hash, used to
// pin the historical canonical chain and bound how far a reorganization
// may reach.
type Checkpoint struct {
	Height uint32
	Hash   chainhash.Hash
}

// Params defines a CryptoNote-family network's consensus parameters: the
// emission curve, block/tx size policy, unlock-time switch, difficulty
// retarget window, address codec prefixes, checkpoints and hard-fork
// schedule. A Params value is constructed once at startup and passed by
// reference into every package that needs consensus constants; there is no
// package-level active-network singleton.
type Params struct {
	// Name is the network's symbolic name: "mainnet", "testnet", "simnet".
	Name string

	// Net is a magic number identifying the network on the wire.
	Net uint32

	// GenesisBlock is the fixed, immutable block at height 0.
	GenesisBlock wire.Block

	// GenesisHash is the hash of GenesisBlock, computed once at Params
	// construction time.
	GenesisHash chainhash.Hash

	// MoneySupply is the maximum amount of atomic units that will ever be
	// emitted; already_generated_coins never exceeds it.
	MoneySupply *big.Int

	// EmissionSpeedFactor controls the exponential decay rate of the base
	// block reward: baseReward(alreadyGenerated) = (MoneySupply -
	// alreadyGenerated) >> EmissionSpeedFactor.
	EmissionSpeedFactor uint

	// GenesisBlockReward is the fixed reward paid by the genesis block,
	// bypassing the emission curve.
	GenesisBlockReward uint64

	// MinimumFee is the minimum per-transaction network fee, in atomic
	// units, required unless the transaction is a coinbase.
	MinimumFee uint64

	// DifficultyTarget is the intended number of seconds between blocks.
	DifficultyTarget int64

	// DifficultyWindow is the number of most-recent samples (after
	// dropping DifficultyLag) considered by the difficulty oracle.
	DifficultyWindow int

	// DifficultyLag is the number of most-recent samples dropped before
	// the window is taken, to reduce a miner's ability to bias the
	// retarget with a manipulated timestamp on their own just-submitted
	// block.
	DifficultyLag int

	// DifficultyCut is the number of outliers trimmed from each end of
	// the sorted window before averaging.
	DifficultyCut int

	// BlockFutureTimeLimit bounds how far into the future, in seconds, a
	// block's timestamp may be relative to the validating node's clock.
	BlockFutureTimeLimit int64

	// TimestampCheckWindow is the number of most-recent block timestamps
	// a new block's timestamp is checked against (must exceed their
	// median).
	TimestampCheckWindow int

	// MaxBlockSizeInitial is the cumulative block size limit at height 0,
	// in bytes before any median-based growth is applied.
	MaxBlockSizeInitial uint64

	// MaxBlockSizeGrowthSpeedNumerator and Denominator set the fraction
	// of the median block size a new block may exceed it by per growth
	// interval, implementing a slowly expanding soft cap.
	MaxBlockSizeGrowthSpeedNumerator   uint64
	MaxBlockSizeGrowthSpeedDenominator uint64

	// MaxTxSize bounds a single transaction's serialized size.
	MaxTxSize uint64

	// MaxExtraSize bounds a transaction's Extra byte-string.
	MaxExtraSize uint64

	// MinedMoneyUnlockWindow is the number of blocks a coinbase output
	// stays locked after the block that mints it.
	MinedMoneyUnlockWindow uint64

	// UnlockTimeHeightSwitch is the unlock_time value at and above which
	// an output's unlock condition is interpreted as a Unix timestamp
	// rather than a block height.
	UnlockTimeHeightSwitch uint64

	// MempoolTxLiveTime is the duration, in seconds, an admitted
	// transaction may remain in the pool before TTL eviction.
	MempoolTxLiveTime int64

	// ReorgDepthLimit bounds how many blocks below the current tip an
	// alternative chain's fork point may be before it is rejected
	// outright as unreachable; per Design Notes it defaults to
	// MinedMoneyUnlockWindow.
	ReorgDepthLimit uint64

	// FusionTxMinInputCount and FusionTxMinInOutCountRatio parameterize
	// the fusion-transaction exemption from the minimum-fee rule (see
	// cnutil.IsFusionTransaction).
	FusionTxMinInputCount      int
	FusionTxMinInOutCountRatio int

	// AddressPrefix is the single byte prepended to a standard address's
	// payload before the base58 checksum encoding.
	AddressPrefix byte

	// IntegratedAddressPrefix is the byte prepended to an integrated
	// address (spend key + view key + 8-byte payment id).
	IntegratedAddressPrefix byte

	// Checkpoints is the immutable, ascending-by-height list of pinned
	// (height, hash) pairs.
	Checkpoints []Checkpoint

	// AlgorithmSchedule is the ascending-by-height hard-fork schedule;
	// entry 0 must have Height == 0 and describes genesis rules.
	AlgorithmSchedule []wire.AlgorithmSpec
}

// CheckpointHash returns the checkpointed hash at height and whether one is
// pinned there.
func (p *Params) CheckpointHash(height uint32) (chainhash.Hash, bool) {
	for _, c := range p.Checkpoints {
		if c.Height == height {
			return c.Hash, true
		}
	}
	return chainhash.Hash{}, false
}

// LastCheckpointHeight returns the height of the highest checkpoint at or
// below topHeight, and whether any checkpoint qualifies.
func (p *Params) LastCheckpointHeight(topHeight uint32) (uint32, bool) {
	found := false
	var best uint32
	for _, c := range p.Checkpoints {
		if c.Height <= topHeight && (!found || c.Height > best) {
			best = c.Height
			found = true
		}
	}
	return best, found
}

// MaxBlockCumulativeSize returns the maximum permitted serialized size, in
// bytes, of a block plus its transactions, given the median size of the
// preceding window of blocks. The limit grows from
// MaxBlockSizeInitial proportionally to how far medianSize exceeds it,
// scaled by the growth-speed fraction; it never shrinks below
// MaxBlockSizeInitial.
func (p *Params) MaxBlockCumulativeSize(medianSize uint64) uint64 {
	limit := p.MaxBlockSizeInitial
	if medianSize > limit {
		limit = medianSize
	}
	growth := (limit * p.MaxBlockSizeGrowthSpeedNumerator) / p.MaxBlockSizeGrowthSpeedDenominator
	return limit + growth
}

// AlgorithmAt returns the AlgorithmSpec in effect at height.
func (p *Params) AlgorithmAt(height uint32) wire.AlgorithmSpec {
	return wire.ActiveAlgorithm(p.AlgorithmSchedule, height)
}

// bigOne is 1 as a *big.Int.
var bigOne = big.NewInt(1)
