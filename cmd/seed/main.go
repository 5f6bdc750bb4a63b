package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/chestboard/internal/seed"
	"github.com/okian/chestboard/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumPlayers = 500
	defaultTimeout    = 2 * time.Minute
)

func main() {
	var (
		numPlayers = flag.Int("players", defaultNumPlayers, "Number of players to generate")
		outputFile = flag.String("output", "data/players.json", "Output file for the generated dataset")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	players, err := seed.Generate(ctx, *numPlayers)
	if err != nil {
		logger.Get().Error(ctx, "generation failed", logger.Error(err))
		os.Exit(1)
	}

	path, err := seed.Write(ctx, players, *outputFile)
	if err != nil {
		logger.Get().Error(ctx, "write failed", logger.Error(err))
		os.Exit(1)
	}

	logger.Get().Info(ctx, "dataset ready", logger.String("path", path))
}
