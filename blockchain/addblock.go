package blockchain

import (
	"bytes"
	"time"

	"github.com/ccoincore/cnode/chainhash"
	"github.com/ccoincore/cnode/cnerrors"
	"github.com/ccoincore/cnode/cnutil"
	"github.com/ccoincore/cnode/database"
	"github.com/ccoincore/cnode/difficulty"
	"github.com/ccoincore/cnode/pow"
	"github.com/ccoincore/cnode/validator"
	"github.com/ccoincore/cnode/wire"
)

// AddResult reports where a successfully accepted block landed.
type AddResult struct {
	// MainChain is true if the block extended (or, via reorganization,
	// became part of) the main chain.
	MainChain bool
	// Height is the block's height on whichever chain it landed on.
	Height uint64
	// Switched is true if accepting this block caused the main chain to
	// switch to a previously-alternative branch.
	Switched bool
	// ForkPoint is the height the switch forked from, valid only when
	// Switched is true.
	ForkPoint uint64
}

// reorgWork carries the memory-pool fixup a completed reorganization
// requires, deferred until after the engine lock is released — per the
// pool's own lock-ordering convention (pool.mu before chain.mu), the
// engine must never call into the pool while holding c.mu.
type reorgWork struct {
	forkPoint uint64
	poppedTxs []wire.Transaction
}

// postCommitWork collects the memory-pool side effects of a successful
// AddNewBlock call, applied once c.mu has been released.
type postCommitWork struct {
	committedTxHashes []chainhash.Hash
	reorg             *reorgWork
}

// AddNewBlock is the engine's single block-submission entry point
// (spec.md §4.7.1): it classifies the block against the known chain state
// (duplicate, main-chain extension, alternative-chain branch, or orphan)
// and applies the corresponding transition. A validation failure never
// mutates any engine state; an internal invariant violation is reported as
// cnerrors.InternalInconsistency and likewise leaves state untouched.
func (c *Chain) AddNewBlock(block *wire.Block, txs []wire.Transaction, now int64) (AddResult, error) {
	hash, err := wire.BlockHash(block)
	if err != nil {
		return AddResult{}, cnerrors.Wrap(cnerrors.ParseError, err, "blockchain: hash candidate block")
	}

	c.mu.Lock()

	if _, ok := c.blockIndex.GetHeight(hash); ok {
		c.mu.Unlock()
		return AddResult{}, cnerrors.New(cnerrors.AlreadyExists, "blockchain: block %s already on main chain", hash)
	}
	if _, ok := c.altChains[hash]; ok {
		c.mu.Unlock()
		return AddResult{}, cnerrors.New(cnerrors.AlreadyExists, "blockchain: block %s already known alternative", hash)
	}

	topHeight, hasTop := c.topHeightLocked()
	extendsMain := !hasTop || block.Header.PrevBlock == mustHash(c.blockIndex.GetHash(topHeight))

	var result AddResult
	var work postCommitWork
	if extendsMain {
		height, committed, cerr := c.extendMainChainLocked(block, txs, now)
		if cerr != nil {
			c.mu.Unlock()
			return AddResult{}, cerr
		}
		result = AddResult{MainChain: true, Height: height}
		work.committedTxHashes = committed
	} else {
		r, w, cerr := c.handleAlternativeLocked(block, txs, hash, now)
		if cerr != nil {
			c.mu.Unlock()
			return AddResult{}, cerr
		}
		result = r
		work = w
	}
	c.mu.Unlock()

	for _, h := range work.committedTxHashes {
		c.pool.Remove(h)
	}
	if work.reorg != nil {
		c.pool.RevalidateAfterReorg(work.reorg.forkPoint, c)
		for i := range work.reorg.poppedTxs {
			if work.reorg.poppedTxs[i].IsCoinbase() {
				continue
			}
			_ = c.pool.AddTx(&work.reorg.poppedTxs[i], c, c, now, true)
		}
	}

	if result.Switched {
		c.notify(Event{Kind: EventChainSwitched, BlockHash: hash, Height: result.Height, ForkPoint: result.ForkPoint})
	} else {
		c.notify(Event{Kind: EventNewBlock, BlockHash: hash, Height: result.Height})
	}
	return result, nil
}

func mustHash(h chainhash.Hash, ok bool) chainhash.Hash {
	if !ok {
		return chainhash.Hash{}
	}
	return h
}

// topHeightLocked returns the main chain tip height, assuming c.mu held.
func (c *Chain) topHeightLocked() (uint64, bool) {
	if c.blockIndex.Size() == 0 {
		return 0, false
	}
	return c.blockIndex.Size() - 1, true
}

func headerHashBytes(h *wire.BlockHeader) ([]byte, error) {
	var buf bytes.Buffer
	if err := h.Serialize(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func txBytes(tx *wire.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// extendMainChainLocked runs the eight ordered checks of spec.md §4.7.2
// against block as a direct extension of the current main chain tip, then
// commits it to the store and every index. c.mu must be held. It returns
// the hashes of txs that were committed (and so should be dropped from the
// memory pool by the caller once the lock is released).
func (c *Chain) extendMainChainLocked(block *wire.Block, txs []wire.Transaction, now int64) (uint64, []chainhash.Hash, error) {
	height := c.blockIndex.Size()

	// 1. Hard-fork version schedule match.
	algo := c.params.AlgorithmAt(uint32(height))
	if block.Header.MajorVersion != algo.MajorVersion {
		return 0, nil, cnerrors.New(cnerrors.ConsensusViolation,
			"blockchain: block version %d does not match schedule version %d at height %d",
			block.Header.MajorVersion, algo.MajorVersion, height)
	}

	// 2. Timestamp: must exceed the median of the trailing window, and not
	// exceed now + the future-time limit.
	recent := c.recentTimestamps()
	if len(recent) > 0 && int64(block.Header.Timestamp) <= median(recent) {
		return 0, nil, cnerrors.New(cnerrors.ConsensusViolation, "blockchain: block timestamp not greater than median of recent blocks")
	}
	if int64(block.Header.Timestamp) > now+c.params.BlockFutureTimeLimit {
		return 0, nil, cnerrors.New(cnerrors.ConsensusViolation, "blockchain: block timestamp too far in the future")
	}

	// 3. Proof-of-work satisfies the difficulty required for this height.
	samples := c.difficultySamples()
	requiredDifficulty := difficulty.NextRequiredDifficulty(c.params, samples)
	headerBytes, err := headerHashBytes(&block.Header)
	if err != nil {
		return 0, nil, cnerrors.Wrap(cnerrors.InternalInconsistency, err, "blockchain: serialize candidate header")
	}
	powHash := chainhash.HashH(headerBytes)
	if !pow.CheckProofOfWork(powHash, requiredDifficulty) {
		return 0, nil, cnerrors.New(cnerrors.ConsensusViolation, "blockchain: proof-of-work does not satisfy required difficulty %d", requiredDifficulty)
	}

	// 4. Coinbase shape.
	if err := cnutil.ValidateCoinbaseShape(c.params, &block.MinerTransaction, height); err != nil {
		return 0, nil, cnerrors.Wrap(cnerrors.ConsensusViolation, err, "blockchain: coinbase shape")
	}

	// 5. Every non-coinbase transaction passes the full validator pipeline.
	view := lockedView{c}
	var totalFee uint64
	for i := range txs {
		tx := &txs[i]
		if err := c.validator.ValidateSyntax(tx); err != nil {
			return 0, nil, err
		}
		fee, err := c.validator.ValidateSemantic(tx, false, false)
		if err != nil {
			return 0, nil, err
		}
		txPrefix, err := wire.PrefixHash(tx)
		if err != nil {
			return 0, nil, err
		}
		if _, err := c.validator.ValidateStateful(tx, txPrefix, height, int64(block.Header.Timestamp), view, view); err != nil {
			return 0, nil, err
		}
		totalFee += fee
	}

	// 6. Cumulative block size against the median-based soft cap.
	cumulativeSizes := c.recentCumulativeSizes(c.params.DifficultyWindow)
	medianSize := medianUint64(cumulativeSizes)
	blockOnlyBytes, err := headerHashBytes(&block.Header)
	if err != nil {
		return 0, nil, cnerrors.Wrap(cnerrors.InternalInconsistency, err, "blockchain: serialize candidate block")
	}
	cumulativeSize := uint64(len(blockOnlyBytes)) + minerTxSize(block)
	for i := range txs {
		tb, err := txBytes(&txs[i])
		if err != nil {
			return 0, nil, cnerrors.Wrap(cnerrors.InternalInconsistency, err, "blockchain: serialize candidate transaction")
		}
		cumulativeSize += uint64(len(tb))
	}
	limit := c.params.MaxBlockCumulativeSize(medianSize)
	if cumulativeSize > limit {
		return 0, nil, cnerrors.New(cnerrors.ConsensusViolation, "blockchain: cumulative size %d exceeds limit %d", cumulativeSize, limit)
	}

	// 7. Miner reward matches the emission curve, penalized for any size
	// overshoot against the median, plus collected fees.
	var alreadyGenerated uint64
	if height > 0 {
		prev, err := c.store.Back()
		if err != nil {
			return 0, nil, cnerrors.Wrap(cnerrors.InternalInconsistency, err, "blockchain: read tip entry")
		}
		alreadyGenerated = prev.AlreadyGeneratedCoins
	}
	minerOut := coinbaseOutputTotal(&block.MinerTransaction)
	var reward uint64
	if height == 0 {
		// The genesis block bypasses the emission curve entirely and pays
		// a fixed, network-defined reward rather than whatever
		// cnutil.BlockReward would compute for zero already-generated
		// coins.
		reward = c.params.GenesisBlockReward
		if minerOut > reward {
			return 0, nil, cnerrors.New(cnerrors.ConsensusViolation, "blockchain: genesis coinbase pays %d, exceeds fixed reward %d", minerOut, reward)
		}
	} else {
		ok := false
		reward, ok = cnutil.BlockReward(c.params, medianSize, cumulativeSize, alreadyGenerated, totalFee)
		if !ok {
			return 0, nil, cnerrors.New(cnerrors.ConsensusViolation, "blockchain: block size exceeds twice the effective median, reward rejected")
		}
		if minerOut > reward {
			return 0, nil, cnerrors.New(cnerrors.ConsensusViolation, "blockchain: coinbase pays %d, exceeds allowed reward %d", minerOut, reward)
		}
	}

	// 8. Checkpoint pin, if any exists at this height.
	hash, err := wire.BlockHash(block)
	if err != nil {
		return 0, nil, cnerrors.Wrap(cnerrors.InternalInconsistency, err, "blockchain: hash candidate block")
	}
	if !c.checkpoints.Check(uint32(height), hash) {
		return 0, nil, cnerrors.New(cnerrors.CheckpointViolation, "blockchain: block at height %d conflicts with a pinned checkpoint", height)
	}

	var prevCumulative uint64
	if height > 0 {
		prev, err := c.store.Back()
		if err != nil {
			return 0, nil, cnerrors.Wrap(cnerrors.InternalInconsistency, err, "blockchain: read tip entry")
		}
		prevCumulative = prev.CumulativeDifficulty
	}
	cumulativeDifficulty := difficulty.CumulativeDifficultyAt(prevCumulative, requiredDifficulty)

	entry := &database.BlockEntry{
		Block:                 *block,
		CumulativeDifficulty:  cumulativeDifficulty,
		AlreadyGeneratedCoins: alreadyGenerated + minerOut,
		CumulativeSize:        cumulativeSize,
		Transactions:          txs,
		GlobalIndexes:         c.assignGlobalIndexesLocked(block, txs),
	}
	if _, err := c.store.PushBack(entry); err != nil {
		return 0, nil, err
	}
	if err := c.blockIndex.Push(hash); err != nil {
		return 0, nil, err
	}
	c.secondary.AddBlockTimestamp(height, int64(block.Header.Timestamp))
	c.indexOutputsAndSpends(entry, height)

	committed := make([]chainhash.Hash, 0, len(txs))
	for i := range txs {
		txHash, err := wire.TxHash(&txs[i])
		if err == nil {
			committed = append(committed, txHash)
		}
	}

	return height, committed, nil
}

// minerTxSize returns the serialized size of a block's coinbase
// transaction, which is carried inline in the block (unlike every other
// transaction, referenced only by hash).
func minerTxSize(block *wire.Block) uint64 {
	b, err := txBytes(&block.MinerTransaction)
	if err != nil {
		return 0
	}
	return uint64(len(b))
}

// assignGlobalIndexesLocked computes the global output index each
// transaction's outputs will receive when appended, for every amount
// column, without mutating state — called just before PushBack so the
// assigned indexes can be persisted alongside the block.
func (c *Chain) assignGlobalIndexesLocked(block *wire.Block, txs []wire.Transaction) [][]uint64 {
	allTxs := append([]wire.Transaction{block.MinerTransaction}, txs...)
	out := make([][]uint64, len(allTxs))
	nextIndex := make(map[uint64]uint64, len(c.outputsByAmount))
	for amount, refs := range c.outputsByAmount {
		nextIndex[amount] = uint64(len(refs))
	}
	for ti, tx := range allTxs {
		idxs := make([]uint64, len(tx.Outputs))
		for oi := range tx.Outputs {
			amount := tx.Outputs[oi].Amount
			idxs[oi] = nextIndex[amount]
			nextIndex[amount]++
		}
		out[ti] = idxs
	}
	return out
}

// coinbaseOutputTotal sums a coinbase (miner) transaction's output amounts.
func coinbaseOutputTotal(tx *wire.Transaction) uint64 {
	var total uint64
	for i := range tx.Outputs {
		total += tx.Outputs[i].Amount
	}
	return total
}

// handleAlternativeLocked classifies a block whose parent is not the
// current main-chain tip: a new or continuing alternative branch if the
// parent is known anywhere, otherwise an orphan. c.mu must be held.
func (c *Chain) handleAlternativeLocked(block *wire.Block, txs []wire.Transaction, hash chainhash.Hash, now int64) (AddResult, postCommitWork, error) {
	parent := block.Header.PrevBlock

	var parentCumulative uint64
	var parentHeight uint64
	if h, ok := c.blockIndex.GetHeight(parent); ok {
		entry, err := c.store.At(h)
		if err != nil {
			return AddResult{}, postCommitWork{}, cnerrors.Wrap(cnerrors.InternalInconsistency, err, "blockchain: read parent entry")
		}
		parentHeight = h
		parentCumulative = entry.CumulativeDifficulty
	} else if alt, ok := c.altChains[parent]; ok {
		parentHeight = alt.height
		parentCumulative = alt.cumulative
	} else {
		return AddResult{}, postCommitWork{}, cnerrors.New(cnerrors.Orphan, "blockchain: parent %s of block %s unknown", parent, hash)
	}

	height := parentHeight + 1
	requiredDifficulty := c.requiredDifficultyForAltLocked()
	headerBytes, err := headerHashBytes(&block.Header)
	if err != nil {
		return AddResult{}, postCommitWork{}, cnerrors.Wrap(cnerrors.InternalInconsistency, err, "blockchain: serialize alt header")
	}
	powHash := chainhash.HashH(headerBytes)
	if !pow.CheckProofOfWork(powHash, requiredDifficulty) {
		return AddResult{}, postCommitWork{}, cnerrors.New(cnerrors.ConsensusViolation, "blockchain: alt block proof-of-work does not satisfy difficulty %d", requiredDifficulty)
	}

	cumulative := difficulty.CumulativeDifficultyAt(parentCumulative, requiredDifficulty)

	topHeight, hasTop := c.topHeightLocked()
	if hasTop && topHeight > height && topHeight-height > c.params.ReorgDepthLimit {
		return AddResult{}, postCommitWork{}, cnerrors.New(cnerrors.ConsensusViolation,
			"blockchain: alternative branch at height %d exceeds reorganization depth limit", height)
	}

	c.altChains[hash] = &altBlock{
		entry: &database.BlockEntry{
			Block:                *block,
			CumulativeDifficulty: cumulative,
			Transactions:         txs,
		},
		height:     height,
		cumulative: cumulative,
	}

	if cumulative <= c.mainChainCumulativeLocked() {
		return AddResult{MainChain: false, Height: height}, postCommitWork{}, nil
	}

	forkPoint, chain, err := c.collectAltChainLocked(hash)
	if err != nil {
		return AddResult{}, postCommitWork{}, err
	}

	// A reorganization rewrites every height from forkPoint+1 up to the
	// current tip; reject it if a pinned checkpoint falls anywhere in
	// that range (spec.md §4.3/§4.7.3), rather than relying solely on
	// ReorgDepthLimit, which bounds depth but not checkpoint crossing.
	if top, hasTop := c.topHeightLocked(); hasTop {
		if !c.checkpoints.IsAllowed(uint32(forkPoint+1), uint32(top)) {
			delete(c.altChains, hash)
			return AddResult{}, postCommitWork{}, cnerrors.New(cnerrors.CheckpointViolation,
				"blockchain: reorganization at fork point %d would rewrite a pinned checkpoint", forkPoint)
		}
	}

	work, err := c.reorganizeLocked(forkPoint, chain, now)
	if err != nil {
		return AddResult{}, postCommitWork{}, err
	}
	return AddResult{MainChain: true, Height: height, Switched: true, ForkPoint: forkPoint}, work, nil
}

// requiredDifficultyForAltLocked estimates the difficulty an alternative
// branch's next block must satisfy. The reference coin recomputes this
// from the alternative branch's own recent timestamps once it is long
// enough; for a branch shallower than the retarget window, the main
// chain's current required difficulty is the only estimate available.
func (c *Chain) requiredDifficultyForAltLocked() uint64 {
	samples := c.difficultySamples()
	return difficulty.NextRequiredDifficulty(c.params, samples)
}

// mainChainCumulativeLocked returns the current main-chain tip's cumulative
// difficulty, or 0 if the chain is empty.
func (c *Chain) mainChainCumulativeLocked() uint64 {
	if c.store.Empty() {
		return 0
	}
	entry, err := c.store.Back()
	if err != nil {
		return 0
	}
	return entry.CumulativeDifficulty
}

// collectAltChainLocked walks an alternative branch back from tipHash
// until it meets the main chain, returning that fork height and the
// branch's blocks in ascending (fork-point-first) order.
func (c *Chain) collectAltChainLocked(tipHash chainhash.Hash) (uint64, []*altBlock, error) {
	var chain []*altBlock
	cur := tipHash
	for {
		alt, ok := c.altChains[cur]
		if !ok {
			return 0, nil, cnerrors.New(cnerrors.InternalInconsistency, "blockchain: alternative chain broken at %s", cur)
		}
		chain = append([]*altBlock{alt}, chain...)
		prevHash := alt.entry.Block.Header.PrevBlock
		if forkHeight, ok := c.blockIndex.GetHeight(prevHash); ok {
			return forkHeight, chain, nil
		}
		cur = prevHash
	}
}

// reorganizeLocked pops the main chain down to forkPoint (exclusive),
// retaining the popped entries in case replay fails, then pushes the
// alternative chain's blocks in order, re-running the same validation an
// ordinary extension would. It returns the memory-pool fixup the caller
// must apply once c.mu is released. If any block in the replacement chain
// fails validation, the popped main-chain suffix is re-pushed and the
// alternative branch is dropped from c.altChains and reported as invalid,
// per spec.md §4.7.3 step 2 — the engine never settles on a chain shorter
// than the one it started with.
func (c *Chain) reorganizeLocked(forkPoint uint64, chain []*altBlock, now int64) (postCommitWork, error) {
	// poppedEntries/poppedHashes accumulate most-recently-popped first
	// (descending height); rollback walks them in reverse to restore
	// ascending height order.
	var poppedEntries []*database.BlockEntry
	var poppedHashes []chainhash.Hash
	for c.blockIndex.Size() > forkPoint+1 {
		hash, ok := c.blockIndex.GetHash(c.blockIndex.Size() - 1)
		if !ok {
			return postCommitWork{}, cnerrors.New(cnerrors.InternalInconsistency, "blockchain: missing hash for main chain tail")
		}
		popped, err := c.store.PopBack()
		if err != nil {
			return postCommitWork{}, cnerrors.Wrap(cnerrors.InternalInconsistency, err, "blockchain: pop main chain block")
		}
		if _, err := c.blockIndex.Pop(); err != nil {
			return postCommitWork{}, cnerrors.Wrap(cnerrors.InternalInconsistency, err, "blockchain: pop block index")
		}
		c.secondary.RemoveBlockTimestamp(c.blockIndex.Size())
		c.unindexOutputsAndSpendsLocked(popped)
		poppedEntries = append(poppedEntries, popped)
		poppedHashes = append(poppedHashes, hash)
	}

	var committed []chainhash.Hash
	for _, alt := range chain {
		height, txCommitted, err := c.extendMainChainLocked(&alt.entry.Block, alt.entry.Transactions, now)
		if err != nil {
			if rerr := c.rollbackReplayLocked(poppedEntries, poppedHashes); rerr != nil {
				return postCommitWork{}, rerr
			}
			for _, a := range chain {
				if ahash, herr := wire.BlockHash(&a.entry.Block); herr == nil {
					delete(c.altChains, ahash)
				}
			}
			return postCommitWork{}, cnerrors.Wrap(cnerrors.ConsensusViolation, err,
				"blockchain: replay of alternative block at height %d failed, rolled back to fork point %d", height, forkPoint)
		}
		hash, _ := wire.BlockHash(&alt.entry.Block)
		delete(c.altChains, hash)
		committed = append(committed, txCommitted...)
	}

	var poppedTxs []wire.Transaction
	for _, e := range poppedEntries {
		poppedTxs = append(poppedTxs, e.Block.MinerTransaction)
		poppedTxs = append(poppedTxs, e.Transactions...)
	}

	return postCommitWork{
		committedTxHashes: committed,
		reorg:             &reorgWork{forkPoint: forkPoint, poppedTxs: poppedTxs},
	}, nil
}

// rollbackReplayLocked restores the main chain suffix popped by
// reorganizeLocked, re-pushing each entry's already-computed fields
// (cumulative difficulty, generated coins, global indexes) rather than
// recomputing them, and re-folding its outputs/spends and timestamp back
// into the secondary indexes.
func (c *Chain) rollbackReplayLocked(poppedEntries []*database.BlockEntry, poppedHashes []chainhash.Hash) error {
	for i := len(poppedEntries) - 1; i >= 0; i-- {
		entry := poppedEntries[i]
		hash := poppedHashes[i]
		height, err := c.store.PushBack(entry)
		if err != nil {
			return cnerrors.Wrap(cnerrors.StorageIoError, err, "blockchain: restore main chain block during reorg rollback")
		}
		if err := c.blockIndex.Push(hash); err != nil {
			return cnerrors.Wrap(cnerrors.InternalInconsistency, err, "blockchain: restore block index during reorg rollback")
		}
		c.secondary.AddBlockTimestamp(height, int64(entry.Block.Header.Timestamp))
		c.indexOutputsAndSpends(entry, height)
	}
	return nil
}

// unindexOutputsAndSpendsLocked removes a popped block's contribution to
// the outputs table and spent-key-image set. Since outputs are always
// appended in order and a pop only ever removes the current tail, the
// last len(outputs) entries per amount are exactly the ones this block
// added.
func (c *Chain) unindexOutputsAndSpendsLocked(entry *database.BlockEntry) {
	allTxs := append([]wire.Transaction{entry.Block.MinerTransaction}, entry.Transactions...)
	for _, tx := range allTxs {
		for oi := range tx.Outputs {
			amount := tx.Outputs[oi].Amount
			refs := c.outputsByAmount[amount]
			if len(refs) > 0 {
				c.outputsByAmount[amount] = refs[:len(refs)-1]
			}
		}
		for ii := range tx.Inputs {
			if tx.Inputs[ii].Kind == wire.InputKindKey {
				delete(c.spentKeyImages, tx.Inputs[ii].Key.KeyImage)
			}
		}
	}
}

// ValidateStateful implements mempool.StatefulValidator by running the
// stateful validation stage against the current main-chain tip's height
// and the local wall clock. It acquires c.mu itself: the memory pool's
// lock-ordering convention always takes pool.mu before chain.mu, so this
// is safe whenever it is reached through the pool and never reached
// through engine-internal code already holding c.mu (which uses lockedView
// instead).
func (c *Chain) ValidateStateful(tx *wire.Transaction) (uint64, error) {
	prefix, err := wire.PrefixHash(tx)
	if err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	height, _ := c.topHeightLocked()
	view := lockedView{c}
	return c.validator.ValidateStateful(tx, prefix, height, time.Now().Unix(), view, view)
}

var _ validator.OutputResolver = (*Chain)(nil)
var _ validator.KeyImageSpentTester = (*Chain)(nil)
