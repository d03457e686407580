// Package cnutil provides the currency-facing utilities threaded through
// the engine via an explicit chaincfg.Params value: amount formatting and
// parsing, block reward computation, amount decomposition, fusion
// transaction detection and the address codec. None of it is reached
// through a package-level singleton; every entry point takes the relevant
// *chaincfg.Params explicitly.
package cnutil

import (
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/ccoincore/cnode/chaincfg"
)

// DecimalPlaces is the number of atomic-unit decimal digits displayed by
// FormatAmount; fixed across all networks since it is a display concern,
// not a consensus parameter.
const DecimalPlaces = 8

// FormatAmount renders an atomic-unit amount as a fixed-point decimal
// string with DecimalPlaces digits after the point, zero-padding the
// integer part as needed.
func FormatAmount(amount uint64) string {
	s := strconv.FormatUint(amount, 10)
	if len(s) < DecimalPlaces+1 {
		s = strings.Repeat("0", DecimalPlaces+1-len(s)) + s
	}
	point := len(s) - DecimalPlaces
	return s[:point] + "." + s[point:]
}

// ParseAmount parses a fixed-point decimal string into an atomic-unit
// amount, rejecting a fractional part with more than DecimalPlaces
// significant digits (after trimming trailing zeros) and any non-digit
// character.
func ParseAmount(str string) (uint64, bool) {
	s := strings.TrimSpace(str)
	pointIdx := strings.IndexByte(s, '.')
	fractionSize := 0
	if pointIdx != -1 {
		fractionSize = len(s) - pointIdx - 1
		for fractionSize > DecimalPlaces && strings.HasSuffix(s, "0") {
			s = s[:len(s)-1]
			fractionSize--
		}
		if fractionSize > DecimalPlaces {
			return 0, false
		}
		s = s[:pointIdx] + s[pointIdx+1:]
	}
	if s == "" {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	if fractionSize < DecimalPlaces {
		s += strings.Repeat("0", DecimalPlaces-fractionSize)
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// GetPenalizedAmount applies the block-size soft-cap penalty: as
// currentBlockSize approaches 2*medianSize, the effective amount shrinks
// quadratically, driving the reward to zero at exactly twice the median.
func GetPenalizedAmount(amount uint64, medianSize, currentBlockSize uint64) uint64 {
	if currentBlockSize <= medianSize {
		return amount
	}
	if currentBlockSize > 2*medianSize {
		return 0
	}
	excess := new(big.Int).SetUint64(currentBlockSize - medianSize)
	median := new(big.Int).SetUint64(medianSize)
	penalty := new(big.Int).SetUint64(amount)
	penalty.Mul(penalty, excess)
	penalty.Mul(penalty, excess)
	penalty.Div(penalty, median)
	penalty.Div(penalty, median)
	result := int64(amount) - penalty.Int64()
	if result < 0 {
		return 0
	}
	return uint64(result)
}

// BlockReward computes the miner's total reward for a block: the base
// subsidy from the emission curve, penalized by block-size overshoot
// against medianSize, plus the penalized transaction fee total. It returns
// (reward, ok); ok is false when currentBlockSize exceeds twice the
// effective median and the candidate block must be rejected outright
// rather than merely penalized.
func BlockReward(p *chaincfg.Params, medianSize, currentBlockSize, alreadyGeneratedCoins, fee uint64) (reward uint64, ok bool) {
	supply := p.MoneySupply.Uint64()
	var baseReward uint64
	if alreadyGeneratedCoins < supply {
		baseReward = (supply - alreadyGeneratedCoins) >> p.EmissionSpeedFactor
	}

	effectiveMedian := medianSize
	if effectiveMedian < p.MaxBlockSizeInitial {
		effectiveMedian = p.MaxBlockSizeInitial
	}
	if currentBlockSize > 2*effectiveMedian {
		return 0, false
	}

	penalizedBase := GetPenalizedAmount(baseReward, effectiveMedian, currentBlockSize)
	penalizedFee := GetPenalizedAmount(fee, effectiveMedian, currentBlockSize)
	return penalizedBase + penalizedFee, true
}

// prettyAmounts is the ascending list of "round" atomic-unit chunks that a
// decomposed amount is built from: each decimal digit 1..9 at each decimal
// place up to the full width of a uint64.
var prettyAmounts = func() []uint64 {
	var out []uint64
	scale := uint64(1)
	for i := 0; i < 19; i++ {
		for d := uint64(1); d <= 9; d++ {
			v := d * scale
			if v < scale {
				break // overflow
			}
			out = append(out, v)
		}
		if scale > (1<<64-1)/10 {
			break
		}
		scale *= 10
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}()

// DecomposeAmount breaks amount into its canonical "pretty" chunks: each
// non-zero decimal digit, at its positional value, becomes one output
// amount; any positional value below dustThreshold is instead accumulated
// and emitted once as a single dust chunk. The chunks are returned in
// ascending order, so a dust chunk comes first. This mirrors the
// reference coin's decompose_amount_into_digits and is what both coinbase
// construction and fusion-transaction detection rely on.
func DecomposeAmount(amount, dustThreshold uint64) []uint64 {
	var chunks []uint64
	var dust uint64
	scale := uint64(1)
	remaining := amount
	for remaining > 0 {
		digit := remaining % 10
		remaining /= 10
		if digit == 0 {
			scale *= 10
			continue
		}
		chunk := digit * scale
		if chunk >= dustThreshold {
			chunks = append(chunks, chunk)
		} else {
			dust += chunk
		}
		scale *= 10
	}
	if dust > 0 {
		chunks = append(chunks, dust)
	}
	sort.Slice(chunks, func(i, j int) bool { return chunks[i] < chunks[j] })
	return chunks
}

// IsAmountApplicableInFusionTransactionInput reports whether amount is a
// legal fusion-transaction input value: below threshold, at or above
// dustThreshold, and exactly equal to one of the canonical pretty-amount
// chunks (not an arbitrary value).
func IsAmountApplicableInFusionTransactionInput(amount, threshold, dustThreshold uint64) bool {
	if amount >= threshold || amount < dustThreshold {
		return false
	}
	i := sort.Search(len(prettyAmounts), func(i int) bool { return prettyAmounts[i] >= amount })
	return i < len(prettyAmounts) && prettyAmounts[i] == amount
}

// IsFusionTransaction reports whether a transaction with the given input
// and output amounts, and given serialized size, qualifies as a
// zero-fee-exempt fusion (consolidation) transaction: enough small inputs
// combined into few, round outputs, per p's fusion thresholds.
func IsFusionTransaction(p *chaincfg.Params, inputAmounts, outputAmounts []uint64, size uint64, maxSize, dustThreshold uint64) bool {
	if size > maxSize {
		return false
	}
	if len(inputAmounts) < p.FusionTxMinInputCount {
		return false
	}
	if len(inputAmounts) < len(outputAmounts)*p.FusionTxMinInOutCountRatio {
		return false
	}
	var inputTotal uint64
	for _, a := range inputAmounts {
		if a < dustThreshold {
			return false
		}
		inputTotal += a
	}
	expected := DecomposeAmount(inputTotal, dustThreshold)
	got := append([]uint64(nil), outputAmounts...)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	if len(expected) != len(got) {
		return false
	}
	for i := range expected {
		if expected[i] != got[i] {
			return false
		}
	}
	return true
}

// MaxInputCountForSize estimates the maximum number of key-inputs with the
// given mixin (ring size) and output count that fit within transactionSize
// bytes, accounting for the fixed per-input and per-output wire overhead.
// Used by the memory pool and miner-side transaction assembly to avoid
// building an oversized transaction before serializing it.
func MaxInputCountForSize(transactionSize uint64, outputCount, mixinCount int) uint64 {
	const (
		keyImageSize         = 32
		outputKeySize        = 32
		amountSize           = 10 // varint upper bound for uint64
		indexesVectorSize    = 1
		indexesInitialValue  = 4
		indexesDifferenceSize = 4
		signatureSize        = 64
		extraTagSize         = 1
		inputTagSize         = 1
		outputTagSize        = 1
		versionSize          = 1
		unlockTimeSize       = 8
	)
	outputsSize := uint64(outputCount) * (outputTagSize + outputKeySize + amountSize)
	headerSize := uint64(versionSize + unlockTimeSize + extraTagSize + outputKeySize)
	inputSize := uint64(inputTagSize+amountSize+keyImageSize+signatureSize+indexesVectorSize+indexesInitialValue) +
		uint64(mixinCount)*(indexesDifferenceSize+signatureSize)

	if transactionSize < headerSize+outputsSize || inputSize == 0 {
		return 0
	}
	return (transactionSize - headerSize - outputsSize) / inputSize
}
