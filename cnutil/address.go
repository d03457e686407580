package cnutil

import (
	"bytes"

	"github.com/decred/base58"

	"github.com/ccoincore/cnode/chaincfg"
	"github.com/ccoincore/cnode/chainhash"
	"github.com/ccoincore/cnode/cnerrors"
	"github.com/ccoincore/cnode/wire"
)

// addressChecksumSize is the number of leading bytes of the Keccak-256
// hash of the address payload appended as its integrity checksum. This is
// the reference coin's own address framing, not Base58Check: a plain
// base58 alphabet over prefix||payload||checksum.
const addressChecksumSize = 4

// Address is a decoded standard public address: a spend key and a view
// key, the two public keys a CryntoNote output target and a received-funds
// scan derive from.
type Address struct {
	SpendKey chainhash.Hash
	ViewKey  chainhash.Hash
}

// IntegratedAddress is a standard Address plus an 8-byte payment id baked
// into the encoded form, letting a single address disambiguate payments to
// a shared account without an out-of-band payment-id field.
type IntegratedAddress struct {
	Address
	PaymentID [8]byte
}

func addressChecksum(prefix byte, payload []byte) [addressChecksumSize]byte {
	h := chainhash.HashH(append([]byte{prefix}, payload...))
	var sum [addressChecksumSize]byte
	copy(sum[:], h[:addressChecksumSize])
	return sum
}

// EncodeAddress renders addr as a base58 string using p's AddressPrefix.
func EncodeAddress(p *chaincfg.Params, addr Address) string {
	payload := make([]byte, 0, 64)
	payload = append(payload, addr.SpendKey[:]...)
	payload = append(payload, addr.ViewKey[:]...)
	sum := addressChecksum(p.AddressPrefix, payload)

	full := make([]byte, 0, 1+len(payload)+addressChecksumSize)
	full = append(full, p.AddressPrefix)
	full = append(full, payload...)
	full = append(full, sum[:]...)
	return base58.Encode(full)
}

// DecodeAddress parses a base58 address string, verifying its prefix byte
// against p.AddressPrefix and its checksum.
func DecodeAddress(p *chaincfg.Params, s string) (Address, error) {
	raw := base58.Decode(s)
	const wantLen = 1 + 32 + 32 + addressChecksumSize
	if len(raw) != wantLen {
		return Address{}, cnerrors.New(cnerrors.ParseError, "address: bad length %d, want %d", len(raw), wantLen)
	}
	if raw[0] != p.AddressPrefix {
		return Address{}, cnerrors.New(cnerrors.ParseError, "address: wrong network prefix 0x%x, want 0x%x", raw[0], p.AddressPrefix)
	}
	payload := raw[1 : 1+64]
	wantSum := addressChecksum(p.AddressPrefix, payload)
	gotSum := raw[1+64:]
	if !bytes.Equal(wantSum[:], gotSum) {
		return Address{}, cnerrors.New(cnerrors.ParseError, "address: checksum mismatch")
	}
	var addr Address
	copy(addr.SpendKey[:], payload[:32])
	copy(addr.ViewKey[:], payload[32:64])
	return addr, nil
}

// EncodeIntegratedAddress renders addr as a base58 string using p's
// IntegratedAddressPrefix, with the 8-byte payment id woven into the
// checksummed payload.
func EncodeIntegratedAddress(p *chaincfg.Params, addr IntegratedAddress) string {
	payload := make([]byte, 0, 72)
	payload = append(payload, addr.SpendKey[:]...)
	payload = append(payload, addr.ViewKey[:]...)
	payload = append(payload, addr.PaymentID[:]...)
	sum := addressChecksum(p.IntegratedAddressPrefix, payload)

	full := make([]byte, 0, 1+len(payload)+addressChecksumSize)
	full = append(full, p.IntegratedAddressPrefix)
	full = append(full, payload...)
	full = append(full, sum[:]...)
	return base58.Encode(full)
}

// DecodeIntegratedAddress parses a base58 integrated address string.
func DecodeIntegratedAddress(p *chaincfg.Params, s string) (IntegratedAddress, error) {
	raw := base58.Decode(s)
	const wantLen = 1 + 32 + 32 + 8 + addressChecksumSize
	if len(raw) != wantLen {
		return IntegratedAddress{}, cnerrors.New(cnerrors.ParseError, "integrated address: bad length %d, want %d", len(raw), wantLen)
	}
	if raw[0] != p.IntegratedAddressPrefix {
		return IntegratedAddress{}, cnerrors.New(cnerrors.ParseError, "integrated address: wrong network prefix")
	}
	payload := raw[1 : 1+72]
	wantSum := addressChecksum(p.IntegratedAddressPrefix, payload)
	gotSum := raw[1+72:]
	if !bytes.Equal(wantSum[:], gotSum) {
		return IntegratedAddress{}, cnerrors.New(cnerrors.ParseError, "integrated address: checksum mismatch")
	}
	var out IntegratedAddress
	copy(out.SpendKey[:], payload[:32])
	copy(out.ViewKey[:], payload[32:64])
	copy(out.PaymentID[:], payload[64:72])
	return out, nil
}

// IsUnlocked reports whether an output with the given unlockTime is
// spendable at chain height h / wall-clock time t: below
// p.UnlockTimeHeightSwitch the value is interpreted as a block height and
// compared against h; at or above it, as a Unix timestamp compared against
// t.
func IsUnlocked(p *chaincfg.Params, unlockTime uint64, h uint64, t int64) bool {
	if unlockTime < p.UnlockTimeHeightSwitch {
		return unlockTime <= h
	}
	return unlockTime <= uint64(t)
}

// ValidateCoinbaseShape reports whether tx is a well-formed coinbase (miner)
// transaction at the given height: exactly one coinbase input whose height
// matches, at least one output, and unlock time no earlier than height
// plus the network's unlock window.
func ValidateCoinbaseShape(p *chaincfg.Params, tx *wire.Transaction, height uint64) error {
	if len(tx.Inputs) != 1 || tx.Inputs[0].Kind != wire.InputKindCoinbase {
		return cnerrors.New(cnerrors.ConsensusViolation, "coinbase tx must have exactly one coinbase input")
	}
	if tx.Inputs[0].Coinbase.Height != height {
		return cnerrors.New(cnerrors.ConsensusViolation, "coinbase height %d does not match block height %d",
			tx.Inputs[0].Coinbase.Height, height)
	}
	if len(tx.Outputs) == 0 {
		return cnerrors.New(cnerrors.ConsensusViolation, "coinbase tx must have at least one output")
	}
	minUnlock := height + p.MinedMoneyUnlockWindow
	if tx.UnlockTime < minUnlock {
		return cnerrors.New(cnerrors.ConsensusViolation, "coinbase unlock time %d below minimum %d",
			tx.UnlockTime, minUnlock)
	}
	return nil
}
