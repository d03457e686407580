// Package database implements the paged, append-only block store (C1):
// a random-access sequence of BlockEntry records backed by two files — a
// concatenated items file and a size-prefix index file — with an LRU decode
// cache in front. It is grounded on the reference coin's BlockAccessor<T>
// template (items file + index file + an intrusive-list LRU cache), ported
// to an os.File-backed append-only log plus a container/list cache since
// no Go source for this concern was present in the retrieval pack.
package database

import (
	"bytes"
	"io"

	"github.com/ccoincore/cnode/cnerrors"
	"github.com/ccoincore/cnode/wire"
)

// BlockEntry is the persisted unit of the block store: a block, its
// cumulative consensus metadata, and the bodies of every transaction it
// references (the coinbase plus each non-coinbase transaction, in block
// order), each annotated with the global output indexes its outputs were
// assigned.
type BlockEntry struct {
	Block                 wire.Block
	CumulativeDifficulty   uint64
	AlreadyGeneratedCoins  uint64
	CumulativeSize         uint64
	Transactions           []wire.Transaction
	// GlobalIndexes[i] holds, for Transactions[i], the global output index
	// assigned to each of that transaction's outputs, in output order.
	GlobalIndexes [][]uint64
}

const blockEntryVersion = 1

// Serialize encodes e using the binary-packed wire format.
func (e *BlockEntry) Serialize(w io.Writer) error {
	if err := wire.WriteVarInt(w, blockEntryVersion); err != nil {
		return err
	}
	if err := e.Block.Serialize(w); err != nil {
		return err
	}
	if err := wire.WriteVarInt(w, e.CumulativeDifficulty); err != nil {
		return err
	}
	if err := wire.WriteVarInt(w, e.AlreadyGeneratedCoins); err != nil {
		return err
	}
	if err := wire.WriteVarInt(w, e.CumulativeSize); err != nil {
		return err
	}
	if err := wire.WriteVarInt(w, uint64(len(e.Transactions))); err != nil {
		return err
	}
	for i := range e.Transactions {
		if err := e.Transactions[i].Serialize(w); err != nil {
			return err
		}
		idxs := e.GlobalIndexes[i]
		if err := wire.WriteVarInt(w, uint64(len(idxs))); err != nil {
			return err
		}
		for _, gi := range idxs {
			if err := wire.WriteVarInt(w, gi); err != nil {
				return err
			}
		}
	}
	return nil
}

// Deserialize decodes a BlockEntry from the binary-packed wire format.
func (e *BlockEntry) Deserialize(r io.Reader) error {
	version, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	if version != blockEntryVersion {
		return cnerrors.New(cnerrors.StorageCorrupt, "database: unsupported BlockEntry version %d", version)
	}
	if err := e.Block.Deserialize(r); err != nil {
		return err
	}
	e.CumulativeDifficulty, err = wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	e.AlreadyGeneratedCoins, err = wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	e.CumulativeSize, err = wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	numTx, err := wire.ReadVarInt(r)
	if err != nil {
		return err
	}
	if numTx > wire.MaxTxHashesPerBlock {
		return cnerrors.New(cnerrors.StorageCorrupt, "database: too many stored transactions %d", numTx)
	}
	e.Transactions = make([]wire.Transaction, numTx)
	e.GlobalIndexes = make([][]uint64, numTx)
	for i := range e.Transactions {
		if err := e.Transactions[i].Deserialize(r); err != nil {
			return err
		}
		n, err := wire.ReadVarInt(r)
		if err != nil {
			return err
		}
		idxs := make([]uint64, n)
		for j := range idxs {
			idxs[j], err = wire.ReadVarInt(r)
			if err != nil {
				return err
			}
		}
		e.GlobalIndexes[i] = idxs
	}
	return nil
}

// Bytes returns the binary-packed serialized form of e.
func (e *BlockEntry) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Serialize(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeBlockEntry decodes a BlockEntry previously produced by Bytes.
func DecodeBlockEntry(data []byte) (*BlockEntry, error) {
	e := &BlockEntry{}
	if err := e.Deserialize(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return e, nil
}
