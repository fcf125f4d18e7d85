package main

import (
	"context"
	"fmt"
	"os"

	"codeberg.org/mutker/deepcoolctl/internal/config"
	"codeberg.org/mutker/deepcoolctl/internal/errors"
	"codeberg.org/mutker/deepcoolctl/internal/logger"
	"codeberg.org/mutker/deepcoolctl/internal/pid"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load(args)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	logger.Init(cfg.LogLevel, logger.IsService())
	logger.Debug().Str("file", cfg.ConfigFile).Msg("Config loaded")

	pidFile := pid.Default()
	if err := pidFile.Write(); err != nil {
		logError(err, "Failed to acquire PID file")
		return 1
	}
	defer func() {
		if err := pidFile.Remove(); err != nil {
			logError(err, "Failed to remove PID file")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := newSignalRouter(cancel)
	stop := signals.watch()
	defer stop()

	a, err := newApp(ctx, cfg, signals)
	if err != nil {
		logError(err, "Failed to start")
		return 1
	}
	defer a.close()

	if err := a.run(ctx); err != nil {
		logError(err, "Error in main loop")
		return 1
	}

	logger.Info().Msg("Goodbye!")

	return 0
}

func logError(err error, msg string) {
	var coded errors.Error
	if errors.As(err, &coded) {
		logger.ErrorWithCode(coded).Msg(msg)
		return
	}

	logger.Error().Err(err).Msg(msg)
}
