package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"sharenav"
	"sharenav/config"
	"sharenav/internal/metrics"
	"sharenav/internal/transport"
	"sharenav/internal/util"
)

func main() {
	var (
		configPath string
		token      string
		root       string
		mode       string
		admins     string
		userID     int64
		verbose    int
	)
	flag.StringVar(&configPath, "config", "", "Path to config file (yaml or json)")
	flag.StringVar(&configPath, "c", "", "--config (shorthand)")
	flag.StringVar(&token, "token", "", "Bot API token")
	flag.StringVar(&root, "root", "", "Shared folder to browse")
	flag.StringVar(&mode, "mode", "", "Security mode: open or restricted")
	flag.StringVar(&admins, "admins", "", "Comma-separated authorized user ids (restricted mode)")
	flag.Int64Var(&userID, "user", 1, "Caller id for the local console session")
	flag.IntVar(&verbose, "verbose", 3, "Log verbosity level between 1 (error) and 5 (trace). Default is 3 (info).")
	flag.IntVar(&verbose, "v", 3, "--verbose (shorthand)")
	flag.Parse()

	// Initialize logger
	if verbose < 1 {
		verbose = 1
	}
	if verbose > 5 {
		verbose = 5
	}
	logLvls := [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}
	util.InitializeLogger(logLvls[verbose-1])
	logger := util.GetLogger("main")

	// Config file first, flags override.
	cfg := config.NewDefaultConfig()
	if configPath != "" {
		fileCfg, err := config.NewConfigFromFile(configPath)
		if err != nil {
			logger.Fatal().Err(err).Str("config", configPath).Msg("Failed to load config file")
		}
		cfg = fileCfg
	}
	if token != "" {
		cfg.Token = token
	}
	if root != "" {
		cfg.Root = root
	}
	if mode != "" {
		cfg.SecurityMode = mode
	}
	if admins != "" {
		ids, err := config.ParseAdminIDs(admins)
		if err != nil {
			logger.Fatal().Err(err).Msg("Invalid admin id list")
		}
		cfg.AdminIDs = ids
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}
	logger.Info().Str("root", cfg.Root).Str("mode", cfg.SecurityMode).Int("admins", len(cfg.AdminIDs)).Msg("Configuration loaded")

	if cfg.MetricsAddr != "" {
		go func() {
			logger.Info().Str("addr", cfg.MetricsAddr).Msg("Serving metrics")
			if err := http.ListenAndServe(cfg.MetricsAddr, metrics.Handler()); err != nil {
				logger.Error().Err(err).Msg("Metrics listener stopped")
			}
		}()
	}

	console := transport.NewConsole(os.Stdout)
	b, err := sharenav.New(cfg, console)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to start navigation core")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		sig := <-signalChan
		logger.Info().Str("signal", sig.String()).Msg("Received signal, shutting down")
		cancel()
	}()

	logger.Info().Int64("user", userID).Msg("Console session ready; type 'start'")
	if err := transport.RunConsole(ctx, b, os.Stdin, userID); err != nil && err != context.Canceled {
		logger.Error().Err(err).Msg("Console session ended")
	}
}
