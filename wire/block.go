package wire

import (
	"bytes"
	"io"

	"github.com/ccoincore/cnode/chainhash"
	"github.com/ccoincore/cnode/cnerrors"
)

// MaxTxHashesPerBlock bounds the number of transaction hashes a decoded
// block header may claim, guarding against a hostile blob forcing a huge
// allocation before the real consensus size check runs.
const MaxTxHashesPerBlock = 1 << 20

// BlockHeader carries the fields that participate in proof-of-work: the
// hard-fork major/minor version pair, the hash of the previous block, the
// block timestamp and the miner's nonce.
type BlockHeader struct {
	MajorVersion uint8
	MinorVersion uint8
	Timestamp    uint64
	PrevBlock    chainhash.Hash
	Nonce        uint32
}

// Serialize encodes the header using the binary-packed wire format.
func (h *BlockHeader) Serialize(w io.Writer) error {
	if err := WriteVarInt(w, uint64(h.MajorVersion)); err != nil {
		return err
	}
	if err := WriteVarInt(w, uint64(h.MinorVersion)); err != nil {
		return err
	}
	if err := WriteVarInt(w, h.Timestamp); err != nil {
		return err
	}
	if err := writeHash(w, &h.PrevBlock); err != nil {
		return err
	}
	return writeUint32(w, h.Nonce)
}

// Deserialize decodes a header from the binary-packed wire format.
func (h *BlockHeader) Deserialize(r io.Reader) error {
	major, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	h.MajorVersion = uint8(major)

	minor, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	h.MinorVersion = uint8(minor)

	h.Timestamp, err = ReadVarInt(r)
	if err != nil {
		return err
	}
	if err := readHash(r, &h.PrevBlock); err != nil {
		return err
	}
	h.Nonce, err = readUint32(r)
	return err
}

// Block is a header, the single coinbase transaction that mints the block
// reward, and the ordered list of hashes of the non-coinbase transactions
// the block includes; transaction bodies are stored separately (in the
// memory pool or the paged block store) and are not inline in Block.
type Block struct {
	Header           BlockHeader
	MinerTransaction Transaction
	TxHashes         []chainhash.Hash
}

// Serialize encodes the block using the binary-packed wire format.
func (b *Block) Serialize(w io.Writer) error {
	if err := b.Header.Serialize(w); err != nil {
		return err
	}
	if err := b.MinerTransaction.Serialize(w); err != nil {
		return err
	}
	if err := WriteVarInt(w, uint64(len(b.TxHashes))); err != nil {
		return err
	}
	for i := range b.TxHashes {
		if err := writeHash(w, &b.TxHashes[i]); err != nil {
			return err
		}
	}
	return nil
}

// Deserialize decodes a block from the binary-packed wire format.
func (b *Block) Deserialize(r io.Reader) error {
	if err := b.Header.Deserialize(r); err != nil {
		return err
	}
	if err := b.MinerTransaction.Deserialize(r); err != nil {
		return err
	}
	n, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if n > MaxTxHashesPerBlock {
		return cnerrors.New(cnerrors.ParseError, "too many tx hashes: %d", n)
	}
	b.TxHashes = make([]chainhash.Hash, n)
	for i := range b.TxHashes {
		if err := readHash(r, &b.TxHashes[i]); err != nil {
			return err
		}
	}
	return nil
}

// Bytes returns the binary-packed serialized form of the block.
func (b *Block) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := b.Serialize(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BlockHash returns the block identity hash: the Keccak-256 hash of the
// serialized header, the miner transaction's hash, the varint count of
// transaction hashes and the transaction hash list, concatenated. The
// reference coin hashes a "hashing blob" of header||merkleRoot||txCount;
// since true Merkle-tree construction is an external wallet/miner concern
// (not part of this engine's contract, spec §1), BlockHash hashes the
// transaction hash list itself rather than a Merkle root.
func BlockHash(b *Block) (chainhash.Hash, error) {
	var buf bytes.Buffer
	if err := b.Header.Serialize(&buf); err != nil {
		return chainhash.Hash{}, err
	}
	minerHash, err := TxHash(&b.MinerTransaction)
	if err != nil {
		return chainhash.Hash{}, err
	}
	buf.Write(minerHash[:])
	if err := WriteVarInt(&buf, uint64(len(b.TxHashes))); err != nil {
		return chainhash.Hash{}, err
	}
	for i := range b.TxHashes {
		buf.Write(b.TxHashes[i][:])
	}
	return chainhash.HashH(buf.Bytes()), nil
}

// AlgorithmSpec specifies the block height at which a given proof-of-work
// algorithm/header-size/difficulty-unit generation activates. A chain's
// hard-fork history is an ordered list of these, matched on by height.
type AlgorithmSpec struct {
	// Height is the block height at which this generation activates.
	Height uint32

	// MajorVersion is the header major version this generation expects.
	MajorVersion uint8

	// HeaderSize is the block header size in bytes fed to the
	// proof-of-work solver/verifier for this generation.
	HeaderSize int

	// EquihashN and EquihashK parameterize the Equihash instance used by
	// this generation's proof-of-work.
	EquihashN, EquihashK uint32
}

// ActiveAlgorithm returns the AlgorithmSpec in effect at height, i.e. the
// entry with the greatest Height that is <= height. schedule must be sorted
// ascending by Height and contain at least one entry (the genesis rules).
func ActiveAlgorithm(schedule []AlgorithmSpec, height uint32) AlgorithmSpec {
	active := schedule[0]
	for _, spec := range schedule {
		if spec.Height > height {
			break
		}
		active = spec
	}
	return active
}
