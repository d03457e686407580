// cnoded is the storage and validation engine daemon: it owns the paged
// block store, every index, the difficulty oracle and the memory pool,
// and accepts blocks through the blockchain engine's single submission
// entry point. It deliberately carries no peer-to-peer networking and no
// RPC server (spec.md §1 Non-goals) — those surfaces are left to a
// separate process in this design, the same split the reference daemon
// draws between its full node and its wallet.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ccoincore/cnode/blockchain"
)

const appVersion = "0.1.0"

func version() string {
	return appVersion
}

func main() {
	if err := realMain(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func realMain() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := initLogRotator(filepath.Join(cfg.LogDir, defaultLogFilename)); err != nil {
		return err
	}
	if err := setLogLevels(cfg.DebugLevel); err != nil {
		return err
	}

	mainLog.Infof("cnoded %s starting, network %s", version(), cfg.params.Name)

	chain, err := blockchain.Open(cfg.params, cfg.DataDir, cfg.PoolSize)
	if err != nil {
		return fmt.Errorf("failed to open blockchain engine: %w", err)
	}

	if err := seedGenesis(chain, cfg); err != nil {
		return fmt.Errorf("failed to seed genesis block: %w", err)
	}

	height, _ := chain.Height()
	mainLog.Infof("chain opened at height %d", height)

	go dispatchEvents(chain)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt

	mainLog.Infof("shutdown signal received, closing")
	return nil
}

// seedGenesis pushes the network's genesis block as the first entry of an
// empty chain. A non-empty chain already has it (or something went
// seriously wrong with the on-disk state, which is surfaced separately by
// the engine's own internal-consistency errors on the first real submit).
func seedGenesis(chain *blockchain.Chain, cfg *config) error {
	if _, ok := chain.Height(); ok {
		return nil
	}
	genesis := cfg.params.GenesisBlock
	_, err := chain.AddNewBlock(&genesis, nil, int64(genesis.Header.Timestamp))
	return err
}

// dispatchEvents drains the engine's notification channel for the
// lifetime of the process, logging each event — the flattened
// observer-notification sink described in spec.md §9 Design Notes. A real
// deployment would fan these out to a ZeroMQ publisher or RPC
// subscription list; cnoded's scope ends at the engine boundary, so
// logging is the whole sink.
func dispatchEvents(chain *blockchain.Chain) {
	for ev := range chain.Events() {
		switch ev.Kind {
		case blockchain.EventNewBlock:
			chainLog.Infof("new block %s at height %d", ev.BlockHash, ev.Height)
		case blockchain.EventChainSwitched:
			chainLog.Infof("chain switched to %s at height %d, forked at %d", ev.BlockHash, ev.Height, ev.ForkPoint)
		case blockchain.EventPoolUpdated:
			poolLog.Debugf("pool updated")
		}
	}
}
