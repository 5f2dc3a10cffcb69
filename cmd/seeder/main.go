package main

import (
	"errors"
	"flag"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kafein-club/matchnight/internal/database"
	"github.com/kafein-club/matchnight/internal/history"
	"github.com/kafein-club/matchnight/internal/roster"
)

var demoRoster = []string{
	"Ayşe", "Mehmet", "Zeynep", "Can",
	"Elif", "Burak", "Selin", "Emre",
	"Deniz", "Kerem", "İrem", "Ozan",
}

// Simplified config loading for the script
func loadConfig() (dbName, primaryURL, authToken string) {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	dbName, ok := os.LookupEnv("DB_NAME")
	if !ok {
		log.Fatalf("Error: Required environment variable DB_NAME is not set.")
	}
	return dbName, os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN")
}

func main() {
	withHistory := flag.Bool("with-history", false, "also seed a few completed matches")
	flag.Parse()

	log.Info("Starting database seeder...")
	dbName, primaryURL, authToken := loadConfig()

	db, teardown, err := database.InitDB(dbName, primaryURL, authToken, "./migrations")
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	rosterStore := roster.New(db, 0)
	startTime := time.Now()

	added := 0
	for _, name := range demoRoster {
		if _, err := rosterStore.AddPlayer(name); err != nil {
			if errors.Is(err, roster.ErrDuplicateName) {
				log.Debug("Player already seeded", "name", name)
				continue
			}
			log.Fatalf("Failed to seed player %s: %s", name, err)
		}
		added++
	}
	log.Info("Ensured demo players exist.", "added", added, "total", len(demoRoster))

	if *withHistory {
		ledger := history.New(db)
		completedAt := time.Now().Add(-2 * time.Hour)
		demoResults := []history.Entry{
			{
				Round: 1, Court: 1,
				Team1: [2]string{"Ayşe", "Mehmet"}, Team2: [2]string{"Zeynep", "Can"},
				Team1Score: 25, Team2Score: 18, Winner: history.WinnerTeam1,
			},
			{
				Round: 1, Court: 2,
				Team1: [2]string{"Elif", "Burak"}, Team2: [2]string{"Selin", "Emre"},
				Team1Score: 23, Team2Score: 25, Winner: history.WinnerTeam2,
			},
			{
				Round: 2, Court: 1,
				Team1: [2]string{"Ayşe", "Zeynep"}, Team2: [2]string{"Mehmet", "Can"},
				Team1Score: 27, Team2Score: 25, Winner: history.WinnerTeam1,
			},
		}
		for i, entry := range demoResults {
			entry.ID = uuid.New().String()
			entry.CompletedAt = completedAt.Add(time.Duration(i) * 30 * time.Minute)
			if err := ledger.Append(entry); err != nil {
				log.Fatalf("Failed to seed history entry: %s", err)
			}
		}
		log.Info("Seeded demo match history.", "entries", len(demoResults))
	}

	log.Info("Seeding complete.", "duration", time.Since(startTime))
}
