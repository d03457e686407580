// Package validator implements the transaction validation pipeline (C7):
// syntax, stateless semantic checks (including the minimum-fee floor) and
// stateful input checks against engine-owned state. It does not check a
// transaction's serialized size against a limit. It is grounded on the
// reference coin's Blockchain::checkTransactionInputs /
// scanOutputKeysForIndexes split: the stateful stage never holds a
// pointer back into the engine, only the three narrow capability
// interfaces below, matching the engine/validator boundary the teacher
// draws between txscript and the UTXO view it is handed.
package validator

import (
	"bytes"

	"github.com/ccoincore/cnode/chaincfg"
	"github.com/ccoincore/cnode/chainhash"
	"github.com/ccoincore/cnode/cnerrors"
	"github.com/ccoincore/cnode/cnutil"
	"github.com/ccoincore/cnode/wire"
)

// ResolvedOutput is a single ring member resolved by global output index:
// its one-time public key and the height of the block that created it
// (needed for the unlock-time spendability check).
type ResolvedOutput struct {
	Key           chainhash.Hash
	CreatedHeight uint64
	UnlockTime    uint64
}

// OutputResolver resolves global output indexes for a given amount into
// their one-time public keys, as the engine's outputs table sees them.
type OutputResolver interface {
	ResolveOutputs(amount uint64, globalIndexes []uint64) ([]ResolvedOutput, error)
	HighestGlobalIndex(amount uint64) (uint64, bool)
}

// KeyImageSpentTester reports whether a key-image is already present in
// the engine's spent-key-image set (i.e. already spent on the main
// chain).
type KeyImageSpentTester interface {
	IsKeyImageSpent(keyImage chainhash.Hash) bool
}

// SizeLimiter exposes the current fee and transaction-size policy. The
// engine implements it; Validator's own stages do not consult it.
type SizeLimiter interface {
	CurrentMinimumFee() uint64
	MaxTxSize() uint64
}

// Result carries the outcome of a full validation pass: the highest block
// height any of the transaction's inputs depends on, recorded so the
// engine can invalidate pool entries after a reorganization crosses it.
type Result struct {
	MaxUsedHeight uint64
	Fee           uint64
}

// Validator runs the syntax, semantic and stateful stages against a
// *chaincfg.Params.
type Validator struct {
	params *chaincfg.Params
}

// New returns a Validator bound to params.
func New(params *chaincfg.Params) *Validator {
	return &Validator{params: params}
}

// ValidateSyntax runs stage 1: structural well-formedness that does not
// require decoding ring members or touching engine state.
func (v *Validator) ValidateSyntax(tx *wire.Transaction) error {
	if len(tx.Inputs) == 0 {
		return cnerrors.New(cnerrors.ParseError, "validator: transaction has no inputs")
	}
	if len(tx.Outputs) == 0 {
		return cnerrors.New(cnerrors.ParseError, "validator: transaction has no outputs")
	}
	if uint64(len(tx.Extra)) > v.params.MaxExtraSize {
		return cnerrors.New(cnerrors.ParseError, "validator: extra field %d exceeds max %d", len(tx.Extra), v.params.MaxExtraSize)
	}
	for i := range tx.Inputs {
		switch tx.Inputs[i].Kind {
		case wire.InputKindCoinbase, wire.InputKindKey, wire.InputKindMultisig:
		default:
			return cnerrors.New(cnerrors.ParseError, "validator: unknown input kind %d", tx.Inputs[i].Kind)
		}
	}
	for i := range tx.Outputs {
		switch tx.Outputs[i].Kind {
		case wire.OutputTargetKey, wire.OutputTargetMultisig:
		default:
			return cnerrors.New(cnerrors.ParseError, "validator: unknown output kind %d", tx.Outputs[i].Kind)
		}
	}
	return nil
}

// ValidateSemantic runs stage 2: stateless amount/uniqueness checks.
// isCoinbase relaxes the fee floor (a coinbase has no fee) and
// keepByBlock relaxes it again for reorg replay (the original chain
// already accepted these fees under whatever policy was active then).
func (v *Validator) ValidateSemantic(tx *wire.Transaction, isCoinbase, keepByBlock bool) (fee uint64, err error) {
	var outTotal uint64
	for i := range tx.Outputs {
		if tx.Outputs[i].Amount == 0 {
			return 0, cnerrors.New(cnerrors.ConsensusViolation, "validator: zero-amount output")
		}
		if outTotal+tx.Outputs[i].Amount < outTotal {
			return 0, cnerrors.New(cnerrors.ConsensusViolation, "validator: output amount overflow")
		}
		outTotal += tx.Outputs[i].Amount
	}

	if isCoinbase {
		return 0, nil
	}

	var inTotal uint64
	seenKeyImages := make(map[chainhash.Hash]struct{})
	seenMultisigRefs := make(map[uint64]struct{})
	for i := range tx.Inputs {
		in := &tx.Inputs[i]
		switch in.Kind {
		case wire.InputKindKey:
			if _, dup := seenKeyImages[in.Key.KeyImage]; dup {
				return 0, cnerrors.New(cnerrors.ConsensusViolation, "validator: duplicate key image %s within tx", in.Key.KeyImage)
			}
			seenKeyImages[in.Key.KeyImage] = struct{}{}
			if inTotal+in.Key.Amount < inTotal {
				return 0, cnerrors.New(cnerrors.ConsensusViolation, "validator: input amount overflow")
			}
			inTotal += in.Key.Amount
		case wire.InputKindMultisig:
			if _, dup := seenMultisigRefs[in.Multisig.OutputIndex]; dup {
				return 0, cnerrors.New(cnerrors.ConsensusViolation, "validator: duplicate multisig output ref within tx")
			}
			seenMultisigRefs[in.Multisig.OutputIndex] = struct{}{}
			inTotal += in.Multisig.Amount
		default:
			return 0, cnerrors.New(cnerrors.ConsensusViolation, "validator: coinbase input in non-coinbase transaction")
		}
	}

	if inTotal < outTotal {
		return 0, cnerrors.New(cnerrors.ConsensusViolation, "validator: outputs exceed inputs")
	}
	fee = inTotal - outTotal
	if !keepByBlock && fee < v.params.MinimumFee {
		if !isFusion(v.params, tx, inTotal, outTotal) {
			return 0, cnerrors.New(cnerrors.ConsensusViolation, "validator: fee %d below minimum %d", fee, v.params.MinimumFee)
		}
	}
	return fee, nil
}

func isFusion(p *chaincfg.Params, tx *wire.Transaction, inTotal, outTotal uint64) bool {
	var inAmounts, outAmounts []uint64
	for i := range tx.Inputs {
		if tx.Inputs[i].Kind == wire.InputKindKey {
			inAmounts = append(inAmounts, tx.Inputs[i].Key.Amount)
		}
	}
	for i := range tx.Outputs {
		outAmounts = append(outAmounts, tx.Outputs[i].Amount)
	}
	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		return false
	}
	const dustThreshold = 1000000
	return cnutil.IsFusionTransaction(p, inAmounts, outAmounts, uint64(buf.Len()), p.MaxTxSize, dustThreshold)
}

// ValidateStateful runs stage 3: resolves ring members, verifies ring
// signatures, and checks the key-image spent set. For a multisig input it
// resolves the referenced output and checks that at least the required
// number of signatures is present; the signatures themselves are not
// verified. It returns the highest block height any input's referenced
// output depends on.
func (v *Validator) ValidateStateful(tx *wire.Transaction, prefixHash chainhash.Hash, currentHeight uint64, currentTimestamp int64, resolver OutputResolver, spent KeyImageSpentTester) (maxUsedHeight uint64, err error) {
	for i := range tx.Inputs {
		in := &tx.Inputs[i]
		switch in.Kind {
		case wire.InputKindKey:
			if spent.IsKeyImageSpent(in.Key.KeyImage) {
				return 0, cnerrors.New(cnerrors.DoubleSpend, "validator: key image %s already spent", in.Key.KeyImage)
			}
			absolute := in.Key.AbsoluteOffsets()
			outputs, rerr := resolver.ResolveOutputs(in.Key.Amount, absolute)
			if rerr != nil {
				return 0, cnerrors.Wrap(cnerrors.ConsensusViolation, rerr, "validator: resolve ring for key image %s", in.Key.KeyImage)
			}
			if len(outputs) != len(absolute) {
				return 0, cnerrors.New(cnerrors.ConsensusViolation, "validator: ring member count mismatch")
			}
			if i >= len(tx.Signatures) || len(tx.Signatures[i]) != len(outputs) {
				return 0, cnerrors.New(cnerrors.ConsensusViolation, "validator: ring signature size mismatch")
			}
			pubKeys := make([]chainhash.Hash, len(outputs))
			for j, o := range outputs {
				if !cnutil.IsUnlocked(v.params, o.UnlockTime, currentHeight, currentTimestamp) {
					return 0, cnerrors.New(cnerrors.ConsensusViolation, "validator: referenced output still locked")
				}
				pubKeys[j] = o.Key
				if o.CreatedHeight > maxUsedHeight {
					maxUsedHeight = o.CreatedHeight
				}
			}
			if !verifyRingSignature(prefixHash, in.Key.KeyImage, pubKeys, tx.Signatures[i]) {
				return 0, cnerrors.New(cnerrors.ConsensusViolation, "validator: ring signature verification failed")
			}
		case wire.InputKindMultisig:
			outputs, rerr := resolver.ResolveOutputs(in.Multisig.Amount, []uint64{in.Multisig.OutputIndex})
			if rerr != nil || len(outputs) != 1 {
				return 0, cnerrors.New(cnerrors.ConsensusViolation, "validator: multisig output not found")
			}
			if outputs[0].CreatedHeight > maxUsedHeight {
				maxUsedHeight = outputs[0].CreatedHeight
			}
			if i >= len(tx.Signatures) || uint32(len(tx.Signatures[i])) < in.Multisig.RequiredSignature {
				return 0, cnerrors.New(cnerrors.ConsensusViolation, "validator: insufficient multisig signatures")
			}
		}
	}
	return maxUsedHeight, nil
}

// verifyRingSignature itself lives in ringsig.go, alongside the matching
// signing routine and the curve arithmetic (Hp, point codecs) it needs.
