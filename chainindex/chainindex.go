// Package chainindex implements the blockchain engine's secondary indexes:
// payment-id -> transaction, timestamp -> block height (range-queryable),
// height -> orphaned alt-chain blocks, and height -> generated-tx-count.
// The timestamp index's range scan is grounded on the reference coin's
// std::multimap lower_bound/upper_bound walk, reduced here to binary
// search over an ascending-by-timestamp slice (ties broken by insertion
// order, matching the multimap's stable ordering for equal keys).
package chainindex

import (
	"io"
	"sort"

	"github.com/ccoincore/cnode/chainhash"
	"github.com/ccoincore/cnode/cnerrors"
	"github.com/ccoincore/cnode/wire"
)

// PaymentID is the 8-byte identifier carried by an integrated address and
// looked up by wallets scanning for their payments.
type PaymentID [8]byte

// timestampEntry is one row of the timestamp index: ascending by
// Timestamp, and among equal timestamps, ascending by insertion (Height).
type timestampEntry struct {
	Timestamp int64
	Height    uint64
}

// Index owns every secondary index the engine maintains alongside the
// primary block store and block index.
type Index struct {
	byPaymentID map[PaymentID][]chainhash.Hash
	timestamps  []timestampEntry
	orphans     map[uint64][]chainhash.Hash
	txCountAt   map[uint64]uint64 // cumulative non-coinbase tx count through height
}

// New returns an empty Index.
func New() *Index {
	return &Index{
		byPaymentID: make(map[PaymentID][]chainhash.Hash),
		orphans:     make(map[uint64][]chainhash.Hash),
		txCountAt:   make(map[uint64]uint64),
	}
}

// AddTxByPaymentID records that txHash carries paymentID in its extra
// field, for wallet payment lookups.
func (idx *Index) AddTxByPaymentID(id PaymentID, txHash chainhash.Hash) {
	idx.byPaymentID[id] = append(idx.byPaymentID[id], txHash)
}

// TxsByPaymentID returns the transactions recorded under id, in the order
// they were added.
func (idx *Index) TxsByPaymentID(id PaymentID) []chainhash.Hash {
	return idx.byPaymentID[id]
}

// RemoveTxByPaymentID undoes AddTxByPaymentID, used when popping a block
// during reorganization.
func (idx *Index) RemoveTxByPaymentID(id PaymentID, txHash chainhash.Hash) {
	list := idx.byPaymentID[id]
	for i, h := range list {
		if h == txHash {
			idx.byPaymentID[id] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(idx.byPaymentID[id]) == 0 {
		delete(idx.byPaymentID, id)
	}
}

// AddBlockTimestamp records that the block at height has the given
// timestamp. Heights must be added in ascending order (the engine only
// ever appends at the tip), so the slice stays sorted without a resort.
func (idx *Index) AddBlockTimestamp(height uint64, timestamp int64) {
	idx.timestamps = append(idx.timestamps, timestampEntry{Timestamp: timestamp, Height: height})
}

// RemoveBlockTimestamp undoes AddBlockTimestamp for the tip height, used
// when popping during reorganization. It is a no-op if height is not the
// last recorded entry (which should never happen under correct usage).
func (idx *Index) RemoveBlockTimestamp(height uint64) {
	if n := len(idx.timestamps); n > 0 && idx.timestamps[n-1].Height == height {
		idx.timestamps = idx.timestamps[:n-1]
	}
}

// HeightsInTimestampRange returns, in ascending height order, every height
// whose recorded timestamp falls in [start, end] inclusive.
func (idx *Index) HeightsInTimestampRange(start, end int64) []uint64 {
	sorted := make([]timestampEntry, len(idx.timestamps))
	copy(sorted, idx.timestamps)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Timestamp < sorted[j].Timestamp })

	lo := sort.Search(len(sorted), func(i int) bool { return sorted[i].Timestamp >= start })
	hi := sort.Search(len(sorted), func(i int) bool { return sorted[i].Timestamp > end })

	out := make([]uint64, hi-lo)
	for i := lo; i < hi; i++ {
		out[i-lo] = sorted[i].Height
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AddOrphan records hash as an alt-chain block at height, for diagnostic
// and peer-serving purposes.
func (idx *Index) AddOrphan(height uint64, hash chainhash.Hash) {
	idx.orphans[height] = append(idx.orphans[height], hash)
}

// OrphansAt returns the alt-chain blocks recorded at height.
func (idx *Index) OrphansAt(height uint64) []chainhash.Hash {
	return idx.orphans[height]
}

// PruneOrphansBelow discards recorded orphans at or below height, called
// after a reorg-depth bound makes them unreachable.
func (idx *Index) PruneOrphansBelow(height uint64) {
	for h := range idx.orphans {
		if h <= height {
			delete(idx.orphans, h)
		}
	}
}

// SetGeneratedTxCount records the cumulative non-coinbase transaction
// count through height.
func (idx *Index) SetGeneratedTxCount(height, count uint64) {
	idx.txCountAt[height] = count
}

// GeneratedTxCountAt returns the cumulative non-coinbase transaction count
// through height, and whether it has been recorded.
func (idx *Index) GeneratedTxCountAt(height uint64) (uint64, bool) {
	c, ok := idx.txCountAt[height]
	return c, ok
}

// ClearGeneratedTxCount removes the recorded count at height, used when
// popping during reorganization.
func (idx *Index) ClearGeneratedTxCount(height uint64) {
	delete(idx.txCountAt, height)
}

// snapshotVersion is the leading byte of the secondary-index snapshot
// file, present so a future incompatible layout change can be detected at
// load time.
const snapshotVersion = 1

// WriteSnapshot serializes the full secondary-index state to w using the
// binary-packed wire format, for the blockchainindices.dat file.
func (idx *Index) WriteSnapshot(w io.Writer) error {
	if _, err := w.Write([]byte{snapshotVersion}); err != nil {
		return cnerrors.Wrap(cnerrors.StorageIoError, err, "chainindex: write version")
	}

	if err := wire.WriteVarInt(w, uint64(len(idx.byPaymentID))); err != nil {
		return err
	}
	for id, hashes := range idx.byPaymentID {
		if _, err := w.Write(id[:]); err != nil {
			return cnerrors.Wrap(cnerrors.StorageIoError, err, "chainindex: write payment id")
		}
		if err := wire.WriteVarInt(w, uint64(len(hashes))); err != nil {
			return err
		}
		for _, h := range hashes {
			if _, err := w.Write(h[:]); err != nil {
				return cnerrors.Wrap(cnerrors.StorageIoError, err, "chainindex: write tx hash")
			}
		}
	}

	if err := wire.WriteVarInt(w, uint64(len(idx.timestamps))); err != nil {
		return err
	}
	for _, e := range idx.timestamps {
		if err := wire.WriteVarInt(w, uint64(e.Timestamp)); err != nil {
			return err
		}
		if err := wire.WriteVarInt(w, e.Height); err != nil {
			return err
		}
	}

	if err := wire.WriteVarInt(w, uint64(len(idx.orphans))); err != nil {
		return err
	}
	for height, hashes := range idx.orphans {
		if err := wire.WriteVarInt(w, height); err != nil {
			return err
		}
		if err := wire.WriteVarInt(w, uint64(len(hashes))); err != nil {
			return err
		}
		for _, h := range hashes {
			if _, err := w.Write(h[:]); err != nil {
				return cnerrors.Wrap(cnerrors.StorageIoError, err, "chainindex: write orphan hash")
			}
		}
	}

	if err := wire.WriteVarInt(w, uint64(len(idx.txCountAt))); err != nil {
		return err
	}
	for height, count := range idx.txCountAt {
		if err := wire.WriteVarInt(w, height); err != nil {
			return err
		}
		if err := wire.WriteVarInt(w, count); err != nil {
			return err
		}
	}
	return nil
}

// ReadSnapshot decodes a secondary-index snapshot written by WriteSnapshot.
func ReadSnapshot(r io.Reader) (*Index, error) {
	var version [1]byte
	if _, err := io.ReadFull(r, version[:]); err != nil {
		return nil, cnerrors.Wrap(cnerrors.StorageCorrupt, err, "chainindex: read version")
	}
	if version[0] != snapshotVersion {
		return nil, cnerrors.New(cnerrors.StorageCorrupt, "chainindex: unsupported snapshot version %d", version[0])
	}

	idx := New()

	numIDs, err := wire.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < numIDs; i++ {
		var id PaymentID
		if _, err := io.ReadFull(r, id[:]); err != nil {
			return nil, cnerrors.Wrap(cnerrors.StorageCorrupt, err, "chainindex: read payment id")
		}
		n, err := wire.ReadVarInt(r)
		if err != nil {
			return nil, err
		}
		hashes := make([]chainhash.Hash, n)
		for j := range hashes {
			if _, err := io.ReadFull(r, hashes[j][:]); err != nil {
				return nil, cnerrors.Wrap(cnerrors.StorageCorrupt, err, "chainindex: read tx hash")
			}
		}
		idx.byPaymentID[id] = hashes
	}

	numTS, err := wire.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	idx.timestamps = make([]timestampEntry, numTS)
	for i := range idx.timestamps {
		ts, err := wire.ReadVarInt(r)
		if err != nil {
			return nil, err
		}
		height, err := wire.ReadVarInt(r)
		if err != nil {
			return nil, err
		}
		idx.timestamps[i] = timestampEntry{Timestamp: int64(ts), Height: height}
	}

	numOrphanHeights, err := wire.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < numOrphanHeights; i++ {
		height, err := wire.ReadVarInt(r)
		if err != nil {
			return nil, err
		}
		n, err := wire.ReadVarInt(r)
		if err != nil {
			return nil, err
		}
		hashes := make([]chainhash.Hash, n)
		for j := range hashes {
			if _, err := io.ReadFull(r, hashes[j][:]); err != nil {
				return nil, cnerrors.Wrap(cnerrors.StorageCorrupt, err, "chainindex: read orphan hash")
			}
		}
		idx.orphans[height] = hashes
	}

	numCounts, err := wire.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < numCounts; i++ {
		height, err := wire.ReadVarInt(r)
		if err != nil {
			return nil, err
		}
		count, err := wire.ReadVarInt(r)
		if err != nil {
			return nil, err
		}
		idx.txCountAt[height] = count
	}

	return idx, nil
}
