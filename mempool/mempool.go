// Package mempool implements the pending-transaction pool (C8): admission
// with a double-spend guard against the pending set, TTL eviction, and a
// fee-ordered block-template filler. The admission state machine is
// grounded directly on spec §4.6; the probabilistic already-seen
// pre-check is grounded on the teacher's sigcache.go pattern (a cheap
// lock-free-ish check before paying for the real map lookup), adapted from
// random eviction to an Age-Partitioned Bloom Filter.
package mempool

import (
	"bytes"
	"encoding/binary"
	"math"
	"sync"

	"github.com/decred/dcrd/container/apbf"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/ccoincore/cnode/chainhash"
	"github.com/ccoincore/cnode/cnerrors"
	"github.com/ccoincore/cnode/wire"
)

// Entry is one pending transaction tracked by the pool.
type Entry struct {
	Tx              wire.Transaction
	Hash            chainhash.Hash
	BlobSize        uint64
	Fee             uint64
	ReceiveTime     int64
	MaxUsedHeight   uint64
	LastFailedBlock chainhash.Hash
	KeepByBlock     bool

	indexKey []byte
}

// feePerByte orders entries by descending fee-per-byte, ties broken by
// ascending receive time, matching the block-template fill rule.
func (e *Entry) feePerByte() float64 {
	if e.BlobSize == 0 {
		return 0
	}
	return float64(e.Fee) / float64(e.BlobSize)
}

// apbfBits/apbfMaxHashes size the pre-check filter: several thousand
// pending transactions is the expected pool scale, with a low enough
// false-positive rate that the real map lookup underneath is rarely paid
// for needlessly.
const (
	apbfNumGenerations = 5
	apbfMaxHashes      = 10000
	apbfFalsePositive  = 0.0001
)

// Pool is the transaction memory pool. Per spec §5, its lock is always
// acquired *before* the blockchain engine's lock when both are needed.
type Pool struct {
	mu sync.Mutex

	byHash     map[chainhash.Hash]*Entry
	keyImages  map[chainhash.Hash]chainhash.Hash // key-image -> owning tx hash
	seenFilter *apbf.Filter

	// feeIndex orders entries by descending fee-per-byte (ties by
	// ascending receive time) so FillBlockTemplate is a plain range scan
	// instead of a re-sort on every call. It holds no data the byHash map
	// doesn't already own; it exists purely as a sorted view.
	feeIndex *leveldb.DB

	liveTime int64
}

// New returns an empty Pool. liveTimeSeconds is the TTL
// (chaincfg.Params.MempoolTxLiveTime) after which an admitted transaction
// expires.
func New(liveTimeSeconds int64) *Pool {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		// NewMemStorage never fails to open; a failure here indicates a
		// broken goleveldb build, not a runtime condition callers can
		// recover from.
		panic(err)
	}
	return &Pool{
		byHash:     make(map[chainhash.Hash]*Entry),
		keyImages:  make(map[chainhash.Hash]chainhash.Hash),
		seenFilter: apbf.NewFilter(apbfMaxHashes, apbfNumGenerations, apbfFalsePositive),
		feeIndex:   db,
		liveTime:   liveTimeSeconds,
	}
}

// Close releases the pool's in-memory fee index.
func (p *Pool) Close() error {
	return p.feeIndex.Close()
}

// feeIndexKey orders lexicographically by descending fee-per-byte (via a
// bit-flipped IEEE-754 sort key, so byte comparison matches numeric
// comparison for all non-negative floats), then ascending receive time,
// then hash, so the last component only breaks ties between identical
// fee/time pairs.
func feeIndexKey(feePerByte float64, receiveTime int64, hash chainhash.Hash) []byte {
	key := make([]byte, 8+8+chainhash.HashSize)
	bits := math.Float64bits(feePerByte)
	binary.BigEndian.PutUint64(key[0:8], ^bits) // descending
	binary.BigEndian.PutUint64(key[8:16], uint64(receiveTime))
	copy(key[16:], hash[:])
	return key
}

// StatefulValidator is the narrow capability the engine vends to the pool
// for the stateful half of admission (§4.5 step 3): it does not otherwise
// see engine internals. ValidateStateful returns the highest block height
// any input depends on.
type StatefulValidator interface {
	ValidateStateful(tx *wire.Transaction) (maxUsedHeight uint64, err error)
}

// AlreadyInChain is the narrow capability the pool uses to reject
// transactions already confirmed on the main chain.
type AlreadyInChain interface {
	HasTransaction(hash chainhash.Hash) bool
}

// AddTx attempts to admit tx into the pool. keepByBlock relaxes the
// pending-set double-spend check and skips the stateful validator call,
// used during reorg replay to reinsert transactions from a popped block
// without re-rejecting them against the pool's own key-image set (which
// they may already occupy from before the pop).
func (p *Pool) AddTx(tx *wire.Transaction, chain AlreadyInChain, validator StatefulValidator, now int64, keepByBlock bool) error {
	hash, err := wire.TxHash(tx)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.byHash[hash]; ok {
		return cnerrors.New(cnerrors.AlreadyExists, "mempool: tx %s already in pool", hash)
	}
	if chain.HasTransaction(hash) {
		return cnerrors.New(cnerrors.AlreadyExists, "mempool: tx %s already on chain", hash)
	}

	keyImages := collectKeyImages(tx)
	if !keepByBlock {
		for _, ki := range keyImages {
			if owner, ok := p.keyImages[ki]; ok && owner != hash {
				return cnerrors.New(cnerrors.DoubleSpend, "mempool: key image %s already pending in tx %s", ki, owner)
			}
		}
	}

	var maxUsedHeight uint64
	if !keepByBlock {
		maxUsedHeight, err = validator.ValidateStateful(tx)
		if err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		return err
	}

	fee := inputOutputDelta(tx)
	blobSize := uint64(buf.Len())
	entry := &Entry{
		Tx:            *tx,
		Hash:          hash,
		BlobSize:      blobSize,
		Fee:           fee,
		ReceiveTime:   now,
		MaxUsedHeight: maxUsedHeight,
		KeepByBlock:   keepByBlock,
	}
	entry.indexKey = feeIndexKey(entry.feePerByte(), now, hash)
	if err := p.feeIndex.Put(entry.indexKey, hash[:], nil); err != nil {
		return cnerrors.Wrap(cnerrors.InternalInconsistency, err, "mempool: index tx %s", hash)
	}

	p.byHash[hash] = entry
	for _, ki := range keyImages {
		p.keyImages[ki] = hash
	}
	p.seenFilter.Add(hash[:])
	return nil
}

// inputOutputDelta computes the fee implied purely by input/output amount
// fields on a key-input transaction: sum(input amounts) - sum(output
// amounts). It is zero for a coinbase (no key inputs carry an amount the
// pool can see without resolving ring members, and coinbases never enter
// the pool in the first place).
func inputOutputDelta(tx *wire.Transaction) uint64 {
	var in, out uint64
	for i := range tx.Inputs {
		if tx.Inputs[i].Kind == wire.InputKindKey {
			in += tx.Inputs[i].Key.Amount
		} else if tx.Inputs[i].Kind == wire.InputKindMultisig {
			in += tx.Inputs[i].Multisig.Amount
		}
	}
	for i := range tx.Outputs {
		out += tx.Outputs[i].Amount
	}
	if in < out {
		return 0
	}
	return in - out
}

func collectKeyImages(tx *wire.Transaction) []chainhash.Hash {
	var out []chainhash.Hash
	for i := range tx.Inputs {
		if tx.Inputs[i].Kind == wire.InputKindKey {
			out = append(out, tx.Inputs[i].Key.KeyImage)
		}
	}
	return out
}

// Contains reports whether hash is currently pending.
func (p *Pool) Contains(hash chainhash.Hash) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.byHash[hash]
	return ok
}

// MaybeSeen is a cheap, false-positive-tolerant pre-check usable without
// acquiring the pool's own lock semantics on the hot path (e.g. peer
// ingress dedup before a transaction is even fully parsed); a false return
// is authoritative, a true return must still be confirmed with Contains.
func (p *Pool) MaybeSeen(hash chainhash.Hash) bool {
	return p.seenFilter.Contains(hash[:])
}

// Remove deletes hash from the pool (e.g. because it was just included in
// a main-chain block), releasing its key-images.
func (p *Pool) Remove(hash chainhash.Hash) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.removeLocked(hash)
}

func (p *Pool) removeLocked(hash chainhash.Hash) {
	entry, ok := p.byHash[hash]
	if !ok {
		return
	}
	for _, ki := range collectKeyImages(&entry.Tx) {
		if p.keyImages[ki] == hash {
			delete(p.keyImages, ki)
		}
	}
	_ = p.feeIndex.Delete(entry.indexKey, nil)
	delete(p.byHash, hash)
}

// EvictExpired removes every entry whose ReceiveTime is older than the
// pool's configured TTL as of now, called from the engine's idle
// maintenance.
func (p *Pool) EvictExpired(now int64) []chainhash.Hash {
	p.mu.Lock()
	defer p.mu.Unlock()
	var evicted []chainhash.Hash
	for hash, e := range p.byHash {
		if now-e.ReceiveTime > p.liveTime {
			evicted = append(evicted, hash)
		}
	}
	for _, hash := range evicted {
		p.removeLocked(hash)
	}
	return evicted
}

// RevalidateAfterReorg re-checks every pooled transaction whose
// MaxUsedHeight exceeds forkPoint against validator; failures are dropped
// unless they were admitted with KeepByBlock set (reorg replay entries get
// one free pass, matching spec §4.6's "dropped on reorg... unless
// keep_by_block" rule — a keep_by_block entry at exactly MaxUsedHeight ==
// forkPoint is retained outright without even re-validating, since its
// dependency predates the fork).
func (p *Pool) RevalidateAfterReorg(forkPoint uint64, validator StatefulValidator) {
	p.mu.Lock()
	defer p.mu.Unlock()
	var toDrop []chainhash.Hash
	for hash, e := range p.byHash {
		if e.MaxUsedHeight <= forkPoint {
			continue
		}
		if e.KeepByBlock {
			continue
		}
		if _, err := validator.ValidateStateful(&e.Tx); err != nil {
			toDrop = append(toDrop, hash)
		}
	}
	for _, hash := range toDrop {
		p.removeLocked(hash)
	}
}

// TemplateResult is the outcome of FillBlockTemplate: the selected
// transactions in inclusion order, and their aggregate size and fee.
type TemplateResult struct {
	Txs       []wire.Transaction
	TotalSize uint64
	TotalFee  uint64
}

// FillBlockTemplate greedily selects pending transactions in descending
// fee-per-byte order (ties broken by ascending receive time), skipping any
// transaction that would push the running size past budget and continuing
// with the next one, per spec §4.6.
func (p *Pool) FillBlockTemplate(budget uint64) TemplateResult {
	p.mu.Lock()
	defer p.mu.Unlock()

	var result TemplateResult
	iter := p.feeIndex.NewIterator(&util.Range{}, nil)
	defer iter.Release()
	for iter.Next() {
		var hash chainhash.Hash
		copy(hash[:], iter.Value())
		e, ok := p.byHash[hash]
		if !ok {
			continue // stale index entry racing a concurrent removal
		}
		if result.TotalSize+e.BlobSize > budget {
			continue
		}
		result.Txs = append(result.Txs, e.Tx)
		result.TotalSize += e.BlobSize
		result.TotalFee += e.Fee
	}
	return result
}

// Size returns the number of pending transactions.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.byHash)
}
