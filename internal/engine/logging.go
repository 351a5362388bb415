package engine

import "go.uber.org/zap"

// NewLogger builds a structured logger writing to stderr, leaving
// stdout free for the UCI protocol stream. Debug-level logging is
// enabled only when debug is true (the -debug command-line flag).
func NewLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}
