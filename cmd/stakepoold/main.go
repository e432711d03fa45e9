package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"liquidstake/config"
	"liquidstake/core/state"
	"liquidstake/native/stakepool"
	"liquidstake/observability"
	"liquidstake/observability/logging"
	"liquidstake/rpc"
	"liquidstake/storage"
)

func main() {
	configFile := flag.String("config", "./config.toml", "Path to the configuration file")
	flag.Parse()

	env := strings.TrimSpace(os.Getenv("STAKEPOOL_ENV"))
	logger := logging.Setup("stakepoold", env)

	cfg, err := config.Load(*configFile)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := storage.NewLevelDB(filepath.Join(cfg.DataDir, "state"))
	if err != nil {
		panic(fmt.Sprintf("Failed to open database: %v", err))
	}
	defer db.Close()

	engine := stakepool.NewEngine(state.NewManager(db))
	engine.SetEmitter(observability.NewLogEmitter(logger))

	if err := engine.Initialize(cfg.OwnerAddress()); err != nil {
		if !errors.Is(err, stakepool.ErrAlreadyInitialized) {
			panic(fmt.Sprintf("Failed to initialize pool: %v", err))
		}
		logger.Info("Pool state already initialized, resuming")
	} else {
		logger.Info("Pool initialized", "owner", cfg.OwnerAddress().Hex())
	}

	mux := http.NewServeMux()
	mux.Handle("/", rpc.NewServer(engine, logger))
	mux.Handle("/metrics", promhttp.Handler())

	logger.Info("RPC listening", "address", cfg.RPCAddress)
	if err := http.ListenAndServe(cfg.RPCAddress, mux); err != nil {
		logger.Error("RPC server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
