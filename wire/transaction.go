package wire

import (
	"bytes"
	"io"

	"github.com/ccoincore/cnode/chainhash"
	"github.com/ccoincore/cnode/cnerrors"
)

// Amount limits and field-size limits shared by every wire-level decoder.
// These are framing limits, not consensus policy (consensus limits live in
// chaincfg.Params); they exist only to keep a hostile blob from allocating
// unbounded memory during decode.
const (
	MaxInputsPerTx    = 1 << 16
	MaxOutputsPerTx   = 1 << 16
	MaxExtraSize      = 1 << 20
	MaxSignaturesSize = 1 << 20
	MaxMixinSize      = 1 << 12
)

// InputKind tags which variant of Input a TxIn carries: coinbase, key
// (ring-signed spend) or multisig.
type InputKind uint8

// Input kinds. Dispatch on Kind, not a virtual call.
const (
	InputKindCoinbase InputKind = iota
	InputKindKey
	InputKindMultisig
)

// TxInCoinbase is carried by the single input of a coinbase transaction; it
// records the height of the block it was minted in, which the subsidy
// check uses to resist coinbase replay across heights.
type TxInCoinbase struct {
	Height uint64
}

// TxInKey is a ring-signed spend of a one-time output. KeyOffsets holds
// global output indexes relative-encoded: the first entry is absolute, each
// following entry is the delta from the previous, ascending. KeyImage is
// the spend tag whose chain-wide uniqueness prevents double-spends.
type TxInKey struct {
	Amount     uint64
	KeyOffsets []uint64
	KeyImage   chainhash.Hash
}

// AbsoluteOffsets expands the relative KeyOffsets into absolute global
// output indexes.
func (k *TxInKey) AbsoluteOffsets() []uint64 {
	out := make([]uint64, len(k.KeyOffsets))
	var running uint64
	for i, rel := range k.KeyOffsets {
		running += rel
		out[i] = running
	}
	return out
}

// RelativeOffsets encodes a sorted list of absolute global output indexes
// into the delta-from-previous relative form used on the wire.
func RelativeOffsets(absolute []uint64) []uint64 {
	out := make([]uint64, len(absolute))
	var prev uint64
	for i, v := range absolute {
		if i == 0 {
			out[i] = v
		} else {
			out[i] = v - prev
		}
		prev = v
	}
	return out
}

// TxInMultisig references a single multisig output by its (amount,
// global-index) pair.
type TxInMultisig struct {
	Amount            uint64
	OutputIndex       uint64
	RequiredSignature uint32
}

// TxIn is a tagged union over the three input variants. Exactly one of
// Coinbase, Key or Multisig is populated according to Kind.
type TxIn struct {
	Kind     InputKind
	Coinbase *TxInCoinbase
	Key      *TxInKey
	Multisig *TxInMultisig
}

// OutputTargetKind tags which variant of OutputTarget a TxOut carries.
type OutputTargetKind uint8

// Output target kinds.
const (
	OutputTargetKey OutputTargetKind = iota
	OutputTargetMultisig
)

// TxOutKey is a single one-time public key target.
type TxOutKey struct {
	Key chainhash.Hash
}

// TxOutMultisig is an m-of-n multisig target.
type TxOutMultisig struct {
	RequiredSignatures uint32
	Keys               []chainhash.Hash
}

// TxOut is a transaction output: an amount plus a tagged target.
type TxOut struct {
	Amount   uint64
	Kind     OutputTargetKind
	Key      *TxOutKey
	Multisig *TxOutMultisig
}

// ExtraFieldKind tags one of the variants packed into a transaction's Extra
// byte string.
type ExtraFieldKind uint8

// Extra field kinds.
const (
	ExtraFieldPadding ExtraFieldKind = iota
	ExtraFieldPublicKey
	ExtraFieldNonce
)

// RingSignature is a single ring-signature element (one c/r pair per ring
// member) attached to one TxInKey.
type RingSignature struct {
	C, R chainhash.Hash
}

// Transaction is the full wire representation of a CryptoNote transaction:
// version, unlock-time, ordered inputs, ordered outputs, an opaque extra
// byte-string and a per-input signature vector. Coinbase transactions carry
// exactly one InputKindCoinbase input and no Signatures.
type Transaction struct {
	Version    uint32
	UnlockTime uint64
	Inputs     []TxIn
	Outputs    []TxOut
	Extra      []byte
	// Signatures holds one slice of RingSignature per input, indexed by
	// input position. Deserialize reads a ring-sized slice for each
	// key-input and leaves the entries of other inputs nil.
	Signatures [][]RingSignature
}

// IsCoinbase reports whether tx is a coinbase (base) transaction: exactly
// one input, of kind InputKindCoinbase.
func (tx *Transaction) IsCoinbase() bool {
	return len(tx.Inputs) == 1 && tx.Inputs[0].Kind == InputKindCoinbase
}

// Serialize encodes the transaction using the binary-packed wire format.
func (tx *Transaction) Serialize(w io.Writer) error {
	if err := WriteVarInt(w, uint64(tx.Version)); err != nil {
		return err
	}
	if err := WriteVarInt(w, tx.UnlockTime); err != nil {
		return err
	}
	if err := WriteVarInt(w, uint64(len(tx.Inputs))); err != nil {
		return err
	}
	for i := range tx.Inputs {
		if err := writeTxIn(w, &tx.Inputs[i]); err != nil {
			return err
		}
	}
	if err := WriteVarInt(w, uint64(len(tx.Outputs))); err != nil {
		return err
	}
	for i := range tx.Outputs {
		if err := writeTxOut(w, &tx.Outputs[i]); err != nil {
			return err
		}
	}
	if err := WriteVarBytes(w, tx.Extra); err != nil {
		return err
	}
	if tx.IsCoinbase() {
		return nil
	}
	for _, sigs := range tx.Signatures {
		for _, sig := range sigs {
			if err := writeHash(w, &sig.C); err != nil {
				return err
			}
			if err := writeHash(w, &sig.R); err != nil {
				return err
			}
		}
	}
	return nil
}

// Deserialize decodes a transaction from the binary-packed wire format.
// The signature vector carries no explicit count: for each key-input it
// reads as many signatures as that input has KeyOffsets entries.
func (tx *Transaction) Deserialize(r io.Reader) error {
	version, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	tx.Version = uint32(version)

	tx.UnlockTime, err = ReadVarInt(r)
	if err != nil {
		return err
	}

	numIn, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if numIn > MaxInputsPerTx {
		return cnerrors.New(cnerrors.ParseError, "too many inputs: %d", numIn)
	}
	tx.Inputs = make([]TxIn, numIn)
	for i := range tx.Inputs {
		if err := readTxIn(r, &tx.Inputs[i]); err != nil {
			return err
		}
	}

	numOut, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if numOut > MaxOutputsPerTx {
		return cnerrors.New(cnerrors.ParseError, "too many outputs: %d", numOut)
	}
	tx.Outputs = make([]TxOut, numOut)
	for i := range tx.Outputs {
		if err := readTxOut(r, &tx.Outputs[i]); err != nil {
			return err
		}
	}

	tx.Extra, err = ReadVarBytes(r, MaxExtraSize, "tx.Extra")
	if err != nil {
		return err
	}

	if tx.IsCoinbase() {
		tx.Signatures = nil
		return nil
	}

	tx.Signatures = make([][]RingSignature, len(tx.Inputs))
	for i := range tx.Inputs {
		if tx.Inputs[i].Kind != InputKindKey {
			continue
		}
		ringSize := len(tx.Inputs[i].Key.KeyOffsets)
		sigs := make([]RingSignature, ringSize)
		for j := range sigs {
			if err := readHash(r, &sigs[j].C); err != nil {
				return err
			}
			if err := readHash(r, &sigs[j].R); err != nil {
				return err
			}
		}
		tx.Signatures[i] = sigs
	}
	return nil
}

func writeTxIn(w io.Writer, in *TxIn) error {
	if err := WriteVarInt(w, uint64(in.Kind)); err != nil {
		return err
	}
	switch in.Kind {
	case InputKindCoinbase:
		return WriteVarInt(w, in.Coinbase.Height)
	case InputKindKey:
		k := in.Key
		if err := WriteVarInt(w, k.Amount); err != nil {
			return err
		}
		if err := WriteVarInt(w, uint64(len(k.KeyOffsets))); err != nil {
			return err
		}
		for _, off := range k.KeyOffsets {
			if err := WriteVarInt(w, off); err != nil {
				return err
			}
		}
		return writeHash(w, &k.KeyImage)
	case InputKindMultisig:
		m := in.Multisig
		if err := WriteVarInt(w, m.Amount); err != nil {
			return err
		}
		if err := WriteVarInt(w, m.OutputIndex); err != nil {
			return err
		}
		return WriteVarInt(w, uint64(m.RequiredSignature))
	default:
		return cnerrors.New(cnerrors.ParseError, "writeTxIn: unknown input kind %d", in.Kind)
	}
}

func readTxIn(r io.Reader, in *TxIn) error {
	kind, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	in.Kind = InputKind(kind)
	switch in.Kind {
	case InputKindCoinbase:
		height, err := ReadVarInt(r)
		if err != nil {
			return err
		}
		in.Coinbase = &TxInCoinbase{Height: height}
	case InputKindKey:
		k := &TxInKey{}
		k.Amount, err = ReadVarInt(r)
		if err != nil {
			return err
		}
		n, err := ReadVarInt(r)
		if err != nil {
			return err
		}
		if n > MaxMixinSize {
			return cnerrors.New(cnerrors.ParseError, "mixin too large: %d", n)
		}
		k.KeyOffsets = make([]uint64, n)
		for i := range k.KeyOffsets {
			k.KeyOffsets[i], err = ReadVarInt(r)
			if err != nil {
				return err
			}
		}
		if err := readHash(r, &k.KeyImage); err != nil {
			return err
		}
		in.Key = k
	case InputKindMultisig:
		m := &TxInMultisig{}
		m.Amount, err = ReadVarInt(r)
		if err != nil {
			return err
		}
		m.OutputIndex, err = ReadVarInt(r)
		if err != nil {
			return err
		}
		req, err := ReadVarInt(r)
		if err != nil {
			return err
		}
		m.RequiredSignature = uint32(req)
		in.Multisig = m
	default:
		return cnerrors.New(cnerrors.ParseError, "readTxIn: unknown input kind %d", kind)
	}
	return nil
}

func writeTxOut(w io.Writer, out *TxOut) error {
	if err := WriteVarInt(w, out.Amount); err != nil {
		return err
	}
	if err := WriteVarInt(w, uint64(out.Kind)); err != nil {
		return err
	}
	switch out.Kind {
	case OutputTargetKey:
		return writeHash(w, &out.Key.Key)
	case OutputTargetMultisig:
		m := out.Multisig
		if err := WriteVarInt(w, uint64(m.RequiredSignatures)); err != nil {
			return err
		}
		if err := WriteVarInt(w, uint64(len(m.Keys))); err != nil {
			return err
		}
		for i := range m.Keys {
			if err := writeHash(w, &m.Keys[i]); err != nil {
				return err
			}
		}
		return nil
	default:
		return cnerrors.New(cnerrors.ParseError, "writeTxOut: unknown target kind %d", out.Kind)
	}
}

func readTxOut(r io.Reader, out *TxOut) error {
	var err error
	out.Amount, err = ReadVarInt(r)
	if err != nil {
		return err
	}
	kind, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	out.Kind = OutputTargetKind(kind)
	switch out.Kind {
	case OutputTargetKey:
		k := &TxOutKey{}
		if err := readHash(r, &k.Key); err != nil {
			return err
		}
		out.Key = k
	case OutputTargetMultisig:
		m := &TxOutMultisig{}
		req, err := ReadVarInt(r)
		if err != nil {
			return err
		}
		m.RequiredSignatures = uint32(req)
		n, err := ReadVarInt(r)
		if err != nil {
			return err
		}
		if n > MaxMixinSize {
			return cnerrors.New(cnerrors.ParseError, "multisig key count too large: %d", n)
		}
		m.Keys = make([]chainhash.Hash, n)
		for i := range m.Keys {
			if err := readHash(r, &m.Keys[i]); err != nil {
				return err
			}
		}
		out.Multisig = m
	default:
		return cnerrors.New(cnerrors.ParseError, "readTxOut: unknown target kind %d", kind)
	}
	return nil
}

// TxHash returns the Keccak-256 hash of the transaction's serialized form.
func TxHash(tx *Transaction) (chainhash.Hash, error) {
	var buf bytes.Buffer
	if err := tx.Serialize(&buf); err != nil {
		return chainhash.Hash{}, err
	}
	return chainhash.HashH(buf.Bytes()), nil
}

// PrefixHash returns the hash of everything in the transaction except its
// Signatures; this is the message ring signatures are verified against.
func PrefixHash(tx *Transaction) (chainhash.Hash, error) {
	prefix := *tx
	prefix.Signatures = nil
	var buf bytes.Buffer
	if err := prefix.Serialize(&buf); err != nil {
		return chainhash.Hash{}, err
	}
	return chainhash.HashH(buf.Bytes()), nil
}
