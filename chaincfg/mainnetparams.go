package chaincfg

import (
	"math/big"

	"github.com/ccoincore/cnode/chainhash"
	"github.com/ccoincore/cnode/wire"
)

// MainNetParams returns the consensus parameters for the main network.
func MainNetParams() *Params {
	genesis := wire.Block{
		Header: wire.BlockHeader{
			MajorVersion: 1,
			MinorVersion: 0,
			Timestamp:    1341378000,
			PrevBlock:    chainhash.Hash{},
			Nonce:        70,
		},
		MinerTransaction: wire.Transaction{
			Version:    1,
			UnlockTime: 60,
			Inputs: []wire.TxIn{{
				Kind:     wire.InputKindCoinbase,
				Coinbase: &wire.TxInCoinbase{Height: 0},
			}},
			Outputs: []wire.TxOut{{
				Amount: 0,
				Kind:   wire.OutputTargetKey,
				Key:    &wire.TxOutKey{Key: chainhash.Hash{}},
			}},
			Extra: []byte{0x01},
		},
	}
	genesisHash, err := wire.BlockHash(&genesis)
	if err != nil {
		panic(err)
	}

	moneySupply := new(big.Int).Lsh(big.NewInt(1), 63)

	return &Params{
		Name:        "mainnet",
		Net:         0xc0bec0be,
		GenesisBlock: genesis,
		GenesisHash: genesisHash,

		MoneySupply:         moneySupply,
		EmissionSpeedFactor: 21,
		GenesisBlockReward:  0,
		MinimumFee:          2000000,

		DifficultyTarget: 120,
		DifficultyWindow: 720,
		DifficultyLag:    15,
		DifficultyCut:    60,

		BlockFutureTimeLimit: 120 * 60,
		TimestampCheckWindow: 60,

		MaxBlockSizeInitial:                100000,
		MaxBlockSizeGrowthSpeedNumerator:   100 * 1024,
		MaxBlockSizeGrowthSpeedDenominator: 365 * 24 * 60 * 60 / 120,

		MaxTxSize:    1000000000,
		MaxExtraSize: 1 << 17,

		MinedMoneyUnlockWindow: 60,
		UnlockTimeHeightSwitch: 500000000,

		MempoolTxLiveTime: 86400,
		ReorgDepthLimit:   60,

		FusionTxMinInputCount:      12,
		FusionTxMinInOutCountRatio: 4,

		AddressPrefix:           0x3d,
		IntegratedAddressPrefix: 0x7c,

		Checkpoints: []Checkpoint{
			{Height: 0, Hash: genesisHash},
		},

		AlgorithmSchedule: []wire.AlgorithmSpec{
			{Height: 0, MajorVersion: 1, HeaderSize: 43, EquihashN: 200, EquihashK: 9},
		},
	}
}

// TestNetParams returns the consensus parameters for the public test
// network: identical emission/size policy to mainnet, but with a distinct
// network magic, address prefix and a checkpoint list holding only genesis
// so that test chains can be reorganized freely above it.
func TestNetParams() *Params {
	p := MainNetParams()
	p.Name = "testnet"
	p.Net = 0x1a2b3c4d
	p.AddressPrefix = 0x9f
	p.IntegratedAddressPrefix = 0xcf
	p.Checkpoints = []Checkpoint{{Height: 0, Hash: p.GenesisHash}}
	return p
}

// SimNetParams returns consensus parameters tuned for local simulation
// networks used by tests and tools: a trivial difficulty target and no
// checkpoints beyond genesis, so a test harness can mine blocks quickly
// and exercise reorganizations without a checkpoint blocking them.
func SimNetParams() *Params {
	p := MainNetParams()
	p.Name = "simnet"
	p.Net = 0x53494d4e
	p.DifficultyTarget = 1
	p.DifficultyWindow = 8
	p.DifficultyLag = 2
	p.DifficultyCut = 0
	p.AddressPrefix = 0x21
	p.IntegratedAddressPrefix = 0x3f
	p.Checkpoints = []Checkpoint{{Height: 0, Hash: p.GenesisHash}}
	p.ReorgDepthLimit = 1000
	return p
}
