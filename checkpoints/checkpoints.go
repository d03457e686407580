// Package checkpoints implements the immutable height->hash pin set that
// gates how far a reorganization may rewrite history.
package checkpoints

import (
	"sort"

	"github.com/ccoincore/cnode/chaincfg"
	"github.com/ccoincore/cnode/chainhash"
)

// Set is an immutable, ascending-by-height checkpoint list, built once from
// chaincfg.Params at engine startup.
type Set struct {
	heights []uint32
	byHash  map[uint32]chainhash.Hash
}

// New builds a Set from the checkpoints listed in p.
func New(p *chaincfg.Params) *Set {
	s := &Set{byHash: make(map[uint32]chainhash.Hash, len(p.Checkpoints))}
	for _, c := range p.Checkpoints {
		s.byHash[c.Height] = c.Hash
		s.heights = append(s.heights, c.Height)
	}
	sort.Slice(s.heights, func(i, j int) bool { return s.heights[i] < s.heights[j] })
	return s
}

// HashAt returns the hash pinned at height, and whether one is pinned
// there.
func (s *Set) HashAt(height uint32) (chainhash.Hash, bool) {
	h, ok := s.byHash[height]
	return h, ok
}

// LastBelowOrAt returns the highest checkpointed height that is <=
// topHeight, and whether any checkpoint qualifies.
func (s *Set) LastBelowOrAt(topHeight uint32) (uint32, bool) {
	found := false
	var best uint32
	for _, h := range s.heights {
		if h > topHeight {
			break
		}
		best = h
		found = true
	}
	return best, found
}

// IsAllowed reports whether a rewrite of the chain starting at blockHeight
// (i.e. a reorganization whose fork point is blockHeight-1) is permitted
// given the current tip height topHeight: it is rejected iff some
// checkpoint height lies in [blockHeight, topHeight], since rewriting it
// would require discarding a pinned block.
func (s *Set) IsAllowed(blockHeight, topHeight uint32) bool {
	for _, h := range s.heights {
		if h >= blockHeight && h <= topHeight {
			return false
		}
	}
	return true
}

// Check verifies that, if height has a pinned checkpoint, hash matches it.
// It returns false when the checkpoint exists and disagrees with hash.
func (s *Set) Check(height uint32, hash chainhash.Hash) bool {
	pinned, ok := s.HashAt(height)
	if !ok {
		return true
	}
	return pinned == hash
}
