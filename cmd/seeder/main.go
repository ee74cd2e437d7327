package main

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/heonampyo/TennisTracker/internal/club"
	"github.com/heonampyo/TennisTracker/internal/config"
	"github.com/heonampyo/TennisTracker/internal/database"
	"github.com/heonampyo/TennisTracker/internal/ledger"
)

const matchCount = 60

var demoPlayers = []string{"Minjun", "Seoyeon", "Jiho", "Hayoon", "Doyun", "Jiwoo"}

// backdatedClock hands out timestamps spread over the last two years so the
// year filter has something to show.
type backdatedClock struct {
	next time.Time
	step time.Duration
}

func (c *backdatedClock) Now() time.Time {
	t := c.next
	c.next = c.next.Add(c.step)
	return t
}

func main() {
	log.Info("Starting database seeder...")
	cfg := config.Load()

	db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	store := club.New(db)
	span := 2 * 365 * 24 * time.Hour
	clock := &backdatedClock{
		next: time.Now().Add(-span),
		step: span / matchCount,
	}
	recorder := ledger.NewRecorder(store, ledger.WithClock(clock))

	ctx := context.Background()
	recorded := 0
	for i := 0; i < matchCount; i++ {
		a := demoPlayers[rand.IntN(len(demoPlayers))]
		b := demoPlayers[rand.IntN(len(demoPlayers))]
		if a == b {
			continue
		}
		outcome := ledger.AWins
		if rand.IntN(2) == 1 {
			outcome = ledger.BWins
		}
		if _, _, err := recorder.RecordResult(ctx, a, b, outcome); err != nil {
			log.Error("Failed to seed match", "error", err, "playerA", a, "playerB", b)
			continue
		}
		recorded++
	}

	log.Info("Seeding complete", "matches", recorded, "players", len(demoPlayers))
}
