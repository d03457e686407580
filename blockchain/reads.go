package blockchain

import (
	cryptorand "crypto/rand"
	"math/big"
	"time"

	"github.com/ccoincore/cnode/chainhash"
	"github.com/ccoincore/cnode/cnerrors"
	"github.com/ccoincore/cnode/cnutil"
	"github.com/ccoincore/cnode/database"
	"github.com/ccoincore/cnode/mempool"
)

// GetBlocks returns up to maxCount consecutive main-chain blocks starting
// at height (spec.md §4.7.4 get_blocks), grounded on the reference coin's
// paged block reader.
func (c *Chain) GetBlocks(height uint64, maxCount uint64) ([]*database.BlockEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.blockIndex.Size()
	if height >= n {
		return nil, cnerrors.New(cnerrors.ConsensusViolation, "blockchain: height %d exceeds chain size %d", height, n)
	}
	end := height + maxCount
	if end > n {
		end = n
	}
	out := make([]*database.BlockEntry, 0, end-height)
	for h := height; h < end; h++ {
		e, err := c.store.At(h)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// BuildSparseChain returns a geometrically-spaced sequence of block hashes
// descending from the current main-chain tip, used by a peer announcing
// its chain state to let the remote efficiently locate their common
// ancestor without walking every height (spec.md §4.7.4
// build_sparse_chain), grounded on blockindex.Index.BuildSparseChain.
func (c *Chain) BuildSparseChain() []chainhash.Hash {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.blockIndex.Size() == 0 {
		return nil
	}
	return c.blockIndex.BuildSparseChain(c.blockIndex.Size() - 1)
}

// FindBlockchainSupplement compares a remote's sparse chain summary
// (descending, most-recent-first block hashes) against the local main
// chain and returns the height of the highest common block, so the local
// node knows where to resume sending blocks from (spec.md §4.7.4
// find_blockchain_supplement).
func (c *Chain) FindBlockchainSupplement(remoteSparseChain []chainhash.Hash) (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, hash := range remoteSparseChain {
		if height, ok := c.blockIndex.GetHeight(hash); ok {
			return height, true
		}
	}
	return 0, false
}

// RandomOutputSet is one amount's worth of sampled decoy outputs returned
// by GetRandomOutsForAmounts: exactly Count distinct, currently-unlocked
// global indexes sampled uniformly, for the caller (typically a wallet
// assembling a ring signature) to use as mixins.
type RandomOutputSet struct {
	Amount  uint64
	Outputs []RandomOutput
}

// RandomOutput is a single candidate ring member.
type RandomOutput struct {
	GlobalIndex uint64
	Key         chainhash.Hash
}

// AmountRequest is one (amount, count) pair in a GetRandomOutsForAmounts
// call.
type AmountRequest struct {
	Amount uint64
	Count  uint64
}

// GetRandomOutsForAmounts samples, for each requested (amount, count)
// pair, count distinct global indexes drawn uniformly from the
// currently-unlocked outputs of that amount (spec.md §4.7.4
// get_random_outs_for_amounts); an amount with fewer than count eligible
// outputs is rejected outright, matching end-to-end scenario 6 (§8).
// Sampling uses a shuffled-prefix generator (a partial Fisher-Yates over
// the eligible index list) so the result is a true sample without
// replacement, grounded on the reference coin's uniform-random output
// selection for ring signature mixins.
func (c *Chain) GetRandomOutsForAmounts(requests []AmountRequest) ([]RandomOutputSet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	height, _ := c.topHeightLocked()
	now := time.Now().Unix()

	out := make([]RandomOutputSet, 0, len(requests))
	for _, req := range requests {
		refs := c.outputsByAmount[req.Amount]
		eligible := make([]int, 0, len(refs))
		for i, r := range refs {
			if cnutil.IsUnlocked(c.params, r.unlockTime, height, now) {
				eligible = append(eligible, i)
			}
		}
		if uint64(len(eligible)) < req.Count {
			return nil, cnerrors.New(cnerrors.ConsensusViolation,
				"blockchain: amount %d has %d unlocked outputs, fewer than requested %d", req.Amount, len(eligible), req.Count)
		}

		sampled, err := shufflePrefix(eligible, req.Count)
		if err != nil {
			return nil, err
		}
		set := RandomOutputSet{Amount: req.Amount, Outputs: make([]RandomOutput, len(sampled))}
		for i, idx := range sampled {
			set.Outputs[i] = RandomOutput{GlobalIndex: uint64(idx), Key: refs[idx].key}
		}
		out = append(out, set)
	}
	return out, nil
}

// shufflePrefix returns the first n elements of a uniformly random
// permutation of candidates, without mutating the caller's slice: a
// partial Fisher-Yates shuffle over a private copy, drawing indexes from
// crypto/rand so the result is a distinct, unbiased sample without
// replacement.
func shufflePrefix(candidates []int, n uint64) ([]int, error) {
	pool := make([]int, len(candidates))
	copy(pool, candidates)
	for i := uint64(0); i < n; i++ {
		remaining := uint64(len(pool)) - i
		j, err := cryptorand.Int(cryptorand.Reader, new(big.Int).SetUint64(remaining))
		if err != nil {
			return nil, cnerrors.Wrap(cnerrors.StorageIoError, err, "blockchain: sampling random outputs")
		}
		pick := i + j.Uint64()
		pool[i], pool[pick] = pool[pick], pool[i]
	}
	return pool[:n], nil
}

// BlockByHash looks up a committed main-chain block by hash.
func (c *Chain) BlockByHash(hash chainhash.Hash) (*database.BlockEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	height, ok := c.blockIndex.GetHeight(hash)
	if !ok {
		return nil, false
	}
	entry, err := c.store.At(height)
	if err != nil {
		return nil, false
	}
	return entry, true
}

// TxsByPaymentID looks up every main-chain transaction hash carrying the
// given 8-byte integrated-address payment id, delegating to the
// secondary index built up as blocks are committed.
func (c *Chain) TxsByPaymentID(id [8]byte) []chainhash.Hash {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.secondary.TxsByPaymentID(id)
}

// BlockHeightsInTimestampRange returns every main-chain block height whose
// timestamp falls within [start, end].
func (c *Chain) BlockHeightsInTimestampRange(start, end int64) []uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.secondary.HeightsInTimestampRange(start, end)
}

// coinbaseReserve is the number of bytes reserved for the block's own
// coinbase transaction when sizing a template fill (spec.md §4.6
// coinbase_reserve/coinbase_size): the actual coinbase isn't built until
// the fee total is known, so a conservative fixed estimate is subtracted
// up front, matching the reference protocol's
// CRYPTONOTE_COINBASE_BLOB_RESERVED_SIZE.
const coinbaseReserve = 600

// FillBlockTemplate delegates to the memory pool to assemble a
// fee-ordered set of transactions for a new block candidate. The byte
// budget is min(B, 2M − coinbase_size) per spec.md §4.6, where B is the
// median-derived cumulative size cap less the coinbase reserve and M is
// the trailing median size itself; it is exposed at the engine level
// (rather than requiring callers to reach into the pool directly) since
// the byte budget depends on chain state the pool itself does not track.
func (c *Chain) FillBlockTemplate() mempool.TemplateResult {
	c.mu.Lock()
	medianSize := medianUint64(c.recentCumulativeSizes(c.params.DifficultyWindow))
	capSize := c.params.MaxBlockCumulativeSize(medianSize)
	c.mu.Unlock()

	budgetB := saturatingSub(capSize, coinbaseReserve)
	budgetTwoM := saturatingSub(2*medianSize, coinbaseReserve)
	budget := budgetB
	if budgetTwoM < budget {
		budget = budgetTwoM
	}
	return c.pool.FillBlockTemplate(budget)
}

// saturatingSub returns a-b, or 0 if b > a.
func saturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
