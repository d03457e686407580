package main

import (
	"fmt"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"

	"github.com/ccoincore/cnode/chaincfg"
)

const (
	defaultDataDirname    = "data"
	defaultLogFilename    = "cnoded.log"
	defaultLogLevel       = "info"
	defaultPoolSize       = 256
	defaultMaxBlockBudget = 1 << 20
)

// config holds every flag cnoded accepts, following the reference
// daemon's single-struct-plus-go-flags convention.
type config struct {
	DataDir     string `short:"b" long:"datadir" description:"Directory to store block and index data"`
	LogDir      string `long:"logdir" description:"Directory to log output"`
	DebugLevel  string `short:"d" long:"debuglevel" description:"Logging level: trace, debug, info, warn, error, critical"`
	TestNet     bool   `long:"testnet" description:"Use the test network"`
	SimNet      bool   `long:"simnet" description:"Use the simulation test network"`
	PoolSize    int    `long:"blockpoolsize" description:"Number of decoded blocks to keep cached in memory"`
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`

	params *chaincfg.Params
}

// defaultHomeDir is the application's default base directory, following
// the teacher's XDG-ish convention of a dotted directory under $HOME.
func defaultHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".cnoded")
}

// loadConfig parses command-line flags into a config, applying defaults and
// selecting the active network's chaincfg.Params. It is intentionally much
// smaller than the reference daemon's loadConfig: cnoded has no wallet,
// peer-to-peer or RPC configuration surface (spec.md §1 Non-goals), so
// there is nothing here beyond storage location, logging and network
// selection.
func loadConfig() (*config, error) {
	homeDir := defaultHomeDir()
	cfg := &config{
		DataDir:    filepath.Join(homeDir, defaultDataDirname),
		LogDir:     homeDir,
		DebugLevel: defaultLogLevel,
		PoolSize:   defaultPoolSize,
	}

	parser := flags.NewParser(cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, err
	}

	if cfg.ShowVersion {
		fmt.Println("cnoded version", version())
		os.Exit(0)
	}

	if cfg.TestNet && cfg.SimNet {
		return nil, fmt.Errorf("the testnet and simnet flags can not be used together")
	}

	switch {
	case cfg.SimNet:
		cfg.params = chaincfg.SimNetParams()
	case cfg.TestNet:
		cfg.params = chaincfg.TestNetParams()
	default:
		cfg.params = chaincfg.MainNetParams()
	}

	cfg.DataDir = filepath.Join(cfg.DataDir, netName(cfg.params))
	cfg.LogDir = filepath.Join(cfg.LogDir, netName(cfg.params), "logs")

	if cfg.PoolSize < 1 {
		cfg.PoolSize = defaultPoolSize
	}

	return cfg, nil
}

// netName returns the network's directory-safe name.
func netName(p *chaincfg.Params) string {
	return p.Name
}
