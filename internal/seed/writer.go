package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/chestboard/internal/domain/model"
	"github.com/okian/chestboard/pkg/logger"
)

// File permission constants.
const (
	dataFilePermission = 0600
	dataDirPermission  = 0750
)

// document is the on-disk dataset shape consumed by the service.
type document struct {
	Players []model.Player `json:"players"`
}

// Write stores the players as a JSON dataset at path. If path is empty, a
// timestamped filename is generated in the working directory.
func Write(ctx context.Context, players []model.Player, path string) (string, error) {
	if path == "" {
		timestamp := time.Now().Format("20060102_150405")
		path = "players_" + timestamp + ".json"
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dataDirPermission); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(document{Players: players}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal dataset: %w", err)
	}

	if err := os.WriteFile(path, data, dataFilePermission); err != nil {
		return "", fmt.Errorf("failed to write dataset: %w", err)
	}

	logger.Get().Info(ctx, "wrote dataset",
		logger.String("path", path),
		logger.Int("players", len(players)),
		logger.Int("bytes", len(data)))
	return path, nil
}
