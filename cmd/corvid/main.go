package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/corvidchess/corvid/internal/engine"
	"github.com/corvidchess/corvid/internal/perftcache"
	"github.com/corvidchess/corvid/internal/uci"
)

var (
	configPath = flag.String("config", "corvid.toml", "path to a TOML configuration file (silently skipped if absent)")
	perftDB    = flag.String("perftcache", "", "directory for the perft regression cache (opt-in, test tooling only)")
	debugLog   = flag.Bool("debug", false, "enable debug-level logging")
)

func main() {
	flag.Parse()

	cfg := engine.DefaultConfig()
	if *configPath != "" {
		loaded, err := engine.LoadConfig(*configPath)
		switch {
		case err == nil:
			cfg = loaded
		case os.IsNotExist(err):
			// No config file at the default (or given) path: keep defaults.
		default:
			fmt.Fprintf(os.Stderr, "corvid: failed to load config %s: %v\n", *configPath, err)
			os.Exit(1)
		}
	}

	log, err := engine.NewLogger(*debugLog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "corvid: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if dbPath := *perftDB; dbPath == "" {
		if env := os.Getenv("PERFT_CACHE_DB"); env != "" {
			*perftDB = env
		}
	}
	var cache *perftcache.Cache
	if *perftDB != "" {
		opened, err := perftcache.Open(*perftDB)
		if err != nil {
			log.Sugar().Warnf("perft cache unavailable at %s: %v", *perftDB, err)
		} else {
			defer opened.Close()
			cache = opened
			log.Sugar().Infof("perft regression cache open at %s", *perftDB)
		}
	}

	eng := engine.New(cfg, log)
	protocol := uci.New(eng, cfg, log, cache)
	protocol.Run()
}
