// Command main runs the synthetic corpus seeder.
package main

import (
	"flag"
	"log"

	"observatory/internal/config"
	"observatory/internal/database"
	"observatory/internal/seed"
)

func main() {
	humans := flag.Int("humans", 20, "Number of human operator accounts")
	agents := flag.Int("agents", 5, "Number of AI agent accounts")
	bots := flag.Int("bots", 3, "Number of scripted bot accounts")
	mixed := flag.Int("mixed", 2, "Number of mixed (human+assistant) accounts")
	days := flag.Int("days", 30, "Corpus time span in days")
	rngSeed := flag.Int64("seed", 1, "Random seed (same seed, same corpus)")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Corpus Seeder")
	log.Printf("Target: %d humans, %d agents, %d bots, %d mixed over %d days\n",
		*humans, *agents, *bots, *mixed, *days)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *shouldClean {
		if err := seed.ClearAll(db); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := seed.Run(db, seed.Options{
		Humans: *humans,
		Agents: *agents,
		Bots:   *bots,
		Mixed:  *mixed,
		Days:   *days,
		Seed:   *rngSeed,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Done. Run ./cmd/analyze to classify the seeded corpus.")
}
