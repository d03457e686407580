// Package blockindex implements the bi-directional block hash <-> height
// map: an insertion-ordered slice (the random-access index) paired with a
// hash map (the hashed-unique index). This is the Go reduction of a
// boost::multi_index_container carrying exactly those two index types.
package blockindex

import (
	"github.com/ccoincore/cnode/chainhash"
	"github.com/ccoincore/cnode/cnerrors"
)

// Index is the bi-directional hash<->height map. It is not safe for
// concurrent use; callers serialize access via the engine's lock.
type Index struct {
	hashes   []chainhash.Hash
	heights  map[chainhash.Hash]int
}

// New returns an empty Index.
func New() *Index {
	return &Index{heights: make(map[chainhash.Hash]int)}
}

// Push appends hash at the next height. It fails with AlreadyExists if
// hash is already present.
func (idx *Index) Push(hash chainhash.Hash) error {
	if _, ok := idx.heights[hash]; ok {
		return cnerrors.New(cnerrors.AlreadyExists, "blockindex: hash %s already indexed", hash)
	}
	idx.heights[hash] = len(idx.hashes)
	idx.hashes = append(idx.hashes, hash)
	return nil
}

// Pop removes the highest-height entry, returning its hash. It fails with
// InternalInconsistency if the index is empty.
func (idx *Index) Pop() (chainhash.Hash, error) {
	if len(idx.hashes) == 0 {
		return chainhash.Hash{}, cnerrors.New(cnerrors.InternalInconsistency, "blockindex: pop on empty index")
	}
	last := idx.hashes[len(idx.hashes)-1]
	idx.hashes = idx.hashes[:len(idx.hashes)-1]
	delete(idx.heights, last)
	return last, nil
}

// GetHash returns the hash at height, and whether height is in range.
func (idx *Index) GetHash(height uint64) (chainhash.Hash, bool) {
	if height >= uint64(len(idx.hashes)) {
		return chainhash.Hash{}, false
	}
	return idx.hashes[height], true
}

// GetHeight returns the height of hash, and whether hash is indexed.
func (idx *Index) GetHeight(hash chainhash.Hash) (uint64, bool) {
	h, ok := idx.heights[hash]
	return uint64(h), ok
}

// Size returns the number of indexed hashes (the chain height + 1, once
// genesis is pushed).
func (idx *Index) Size() uint64 {
	return uint64(len(idx.hashes))
}

// Clear empties the index.
func (idx *Index) Clear() {
	idx.hashes = nil
	idx.heights = make(map[chainhash.Hash]int)
}

// BuildSparseChain returns hashes at exponentially increasing depths below
// from (step doubling 1, 2, 4, 8, ...), terminated by genesis, used by
// peers to locate a common ancestor in O(log n) round trips.
func (idx *Index) BuildSparseChain(from uint64) []chainhash.Hash {
	var out []chainhash.Hash
	if from >= uint64(len(idx.hashes)) {
		return out
	}
	out = append(out, idx.hashes[from])

	step := uint64(1)
	height := from
	for height > 0 {
		if step > height {
			step = height
		}
		height -= step
		out = append(out, idx.hashes[height])
		step *= 2
		if height == 0 {
			break
		}
	}
	if len(out) == 0 || out[len(out)-1] != idx.hashes[0] {
		out = append(out, idx.hashes[0])
	}
	return out
}
