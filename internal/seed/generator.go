// Package seed generates synthetic player datasets for local development
// and load testing.
package seed

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"

	"github.com/okian/chestboard/internal/domain/model"
	"github.com/okian/chestboard/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	profileDivisor     = 8
)

// Constants for score generation ranges.
const (
	casualScoreMin     = 0.0
	casualScoreRange   = 5000.0
	activeScoreMin     = 5000.0
	activeScoreRange   = 45000.0
	veteranScoreMin    = 50000.0
	veteranScoreRange  = 150000.0
	whaleScoreMin      = 200000.0
	whaleScoreRange    = 1300000.0
	dormantScoreMin    = 0.0
	dormantScoreRange  = 500.0
	grinderScoreMin    = 20000.0
	grinderScoreRange  = 80000.0
	hoarderScoreMin    = 1000.0
	hoarderScoreRange  = 9000.0
	wideScoreMin       = 0.0
	wideScoreRange     = 1000000.0
	chestsPerScoreUnit = 120.0
	chestJitterRange   = 0.6
	chestJitterFloor   = 0.7
	noChestChance      = 0.08
)

// Constants for player profile cases.
const (
	caseCasual  = 0
	caseActive  = 1
	caseVeteran = 2
	caseWhale   = 3
	caseDormant = 4
	caseGrinder = 5
	caseHoarder = 6
	caseWide    = 7
)

var namePool = []string{
	"Ragnar", "Astrid", "Bjorn", "Freya", "Leif", "Sigrid", "Erik", "Helga",
	"Ivar", "Thora", "Gunnar", "Ingrid", "Sven", "Runa", "Olaf", "Estrid",
	"Harald", "Liv", "Knut", "Solveig", "Torsten", "Yrsa", "Ulf", "Gudrun",
}

var alliancePool = []string{
	"Iron Wolves", "Storm Bears", "Night Ravens", "Gold Serpents",
	"Frost Giants", "Ember Lions", "Shadow Foxes",
}

var serverPool = []string{"EU-1", "EU-2", "US-1", "US-2", "ASIA-1"}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// pick returns a random element from the pool.
func pick(pool []string) string {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(pool))))
	return pool[n.Int64()]
}

// Generate creates count synthetic players with unique IDs and a varied
// score distribution. A small share of players belongs to no alliance.
func Generate(ctx context.Context, count int) ([]model.Player, error) {
	if count <= 0 {
		return nil, fmt.Errorf("player count must be positive, got %d", count)
	}
	logger.Get().Info(ctx, "generating players", logger.Int("count", count))

	players := make([]model.Player, count)
	for i := range players {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("generation cancelled: %w", ctx.Err())
		default:
		}
		players[i] = generateSinglePlayer(i)
	}

	logger.Get().Info(ctx, "generated players successfully", logger.Int("count", len(players)))
	return players, nil
}

// generateSinglePlayer creates one player with a profile-driven score.
func generateSinglePlayer(index int) model.Player {
	score := generateVariedScore()
	chests := generateChests(score)

	name := fmt.Sprintf("%s%d", pick(namePool), index)
	alliance := pick(alliancePool)
	// Roughly one in ten players is unaffiliated.
	if getRandomFloat() < 0.1 {
		alliance = ""
	}

	return model.Player{
		ID:       uuid.New().String(),
		Name:     name,
		Alliance: alliance,
		Server:   pick(serverPool),
		Score:    score,
		Chests:   chests,
		Ratio:    model.SafeRatio(score, chests),
	}
}

// generateVariedScore creates a score with a varied distribution.
func generateVariedScore() float64 {
	randNum, _ := rand.Int(rand.Reader, big.NewInt(profileDivisor))
	switch randNum.Int64() {
	case caseCasual:
		// Casual players (0 - 5K) - most common
		return casualScoreMin + getRandomFloat()*casualScoreRange
	case caseActive:
		// Active players (5K - 50K)
		return activeScoreMin + getRandomFloat()*activeScoreRange
	case caseVeteran:
		// Veterans (50K - 200K)
		return veteranScoreMin + getRandomFloat()*veteranScoreRange
	case caseWhale:
		// Top spenders (200K - 1.5M) - rare
		return whaleScoreMin + getRandomFloat()*whaleScoreRange
	case caseDormant:
		// Dormant accounts (0 - 500) - rare
		return dormantScoreMin + getRandomFloat()*dormantScoreRange
	case caseGrinder:
		// Steady grinders (20K - 100K)
		return grinderScoreMin + getRandomFloat()*grinderScoreRange
	case caseHoarder:
		// Chest hoarders with modest scores (1K - 10K)
		return hoarderScoreMin + getRandomFloat()*hoarderScoreRange
	case caseWide:
		// Random across the full range (0 - 1M)
		return wideScoreMin + getRandomFloat()*wideScoreRange
	default:
		return wideScoreMin + getRandomFloat()*wideScoreRange
	}
}

// generateChests derives a chest count loosely proportional to the score,
// with jitter. A small share of players has opened no chests at all.
func generateChests(score float64) float64 {
	if getRandomFloat() < noChestChance {
		return 0
	}
	jitter := chestJitterFloor + getRandomFloat()*chestJitterRange
	chests := score / chestsPerScoreUnit * jitter
	return float64(int(chests))
}
