package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"
)

// logWriter implements io.Writer, tee-ing every write to stdout and to the
// rotating log file once it has been initialized.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	os.Stdout.Write(p)
	if logRotator != nil {
		logRotator.Write(p)
	}
	return len(p), nil
}

var (
	backendLog = slog.NewBackend(logWriter{})
	logRotator *rotator.Rotator

	mainLog  = backendLog.Logger("MAIN")
	chainLog = backendLog.Logger("CHAN")
	poolLog  = backendLog.Logger("TXMP")
)

// subsystemLoggers maps a subsystem tag to its logger, used by
// setLogLevels to apply a single --debuglevel flag across every subsystem.
var subsystemLoggers = map[string]slog.Logger{
	"MAIN": mainLog,
	"CHAN": chainLog,
	"TXMP": poolLog,
}

// initLogRotator opens a rotating log file at logFile; from then on
// logWriter tees every subsystem logger's output into it as well as
// stdout.
func initLogRotator(logFile string) error {
	logDir := filepath.Dir(logFile)
	if err := os.MkdirAll(logDir, 0o700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return fmt.Errorf("failed to create log rotator: %w", err)
	}
	logRotator = r
	return nil
}

// setLogLevels applies levelStr (e.g. "info", "debug") to every registered
// subsystem logger.
func setLogLevels(levelStr string) error {
	level, ok := slog.LevelFromString(levelStr)
	if !ok {
		return fmt.Errorf("unknown log level %q", levelStr)
	}
	for _, logger := range subsystemLoggers {
		logger.SetLevel(level)
	}
	return nil
}
