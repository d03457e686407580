// Package difficulty computes the proof-of-work target for the next block
// from a sliding window of recent (timestamp, cumulative-difficulty)
// samples. The retarget algorithm itself is windowed-cut averaging, not
// Decred's EMA/ticket-aware retarget; only the package's locking and
// tracing conventions are carried over from the teacher.
package difficulty

import (
	"sort"

	"github.com/ccoincore/cnode/chaincfg"
)

// Sample is one data point fed to the difficulty oracle: a block's
// timestamp and the chain's cumulative difficulty through that block.
type Sample struct {
	Timestamp            int64
	CumulativeDifficulty uint64
}

// NextRequiredDifficulty computes the difficulty the next block must
// satisfy, given the trailing window of samples ending at the current tip
// (oldest first, newest last). It implements spec's windowed-cut average:
// drop the most recent p.DifficultyLag samples, keep at most
// p.DifficultyWindow of what remains, discard the top and bottom
// p.DifficultyCut timestamps from that kept range, and return the ratio of
// cumulative-difficulty delta to elapsed time scaled by the target block
// time, floored to 1.
//
// Fewer samples than window+lag are available for the first blocks after
// genesis; the available prefix is used as-is, matching the reference
// algorithm's early-chain behavior.
func NextRequiredDifficulty(p *chaincfg.Params, samples []Sample) uint64 {
	if len(samples) <= 1 {
		return 1
	}

	lag := p.DifficultyLag
	if lag > len(samples) {
		lag = len(samples) - 1
	}
	trimmed := samples
	if lag > 0 {
		trimmed = samples[:len(samples)-lag]
	}

	window := p.DifficultyWindow
	if window > len(trimmed) {
		window = len(trimmed)
	}
	if window < 2 {
		return 1
	}
	kept := trimmed[len(trimmed)-window:]

	sorted := make([]Sample, len(kept))
	copy(sorted, kept)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	cut := p.DifficultyCut
	if 2*cut >= len(sorted) {
		cut = 0
	}
	begin := cut
	end := len(sorted) - cut

	if end-begin < 2 {
		return 1
	}

	timeSpan := sorted[end-1].Timestamp - sorted[begin].Timestamp
	if timeSpan < 1 {
		timeSpan = 1
	}

	workSpan := sorted[end-1].CumulativeDifficulty - sorted[begin].CumulativeDifficulty

	result := (workSpan*uint64(p.DifficultyTarget) + uint64(timeSpan) - 1) / uint64(timeSpan)
	if result < 1 {
		result = 1
	}
	return result
}

// CumulativeDifficultyAt returns the running sum of per-block difficulty
// through height h, given the difficulty of the block at h-1's successor
// retarget and the previous height's cumulative total.
func CumulativeDifficultyAt(prevCumulative, nextDifficulty uint64) uint64 {
	return prevCumulative + nextDifficulty
}
