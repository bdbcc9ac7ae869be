package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"huddle-api/config"
	"huddle-api/pkg/database"
	"huddle-api/pkg/logger"
)

const usage = `
Huddle API - Database CLI Tool

Usage:
  migrate [command] [flags]

Commands:
  up          Create tables (postgres) or indexes (mongo) for projects and chatrooms
  status      Show database connection status
  seed        Seed sample projects and chatrooms

Flags:
  -users string   Comma separated owners for seeding (default "alice,bob,charlie")

Examples:
  go run cmd/migrate/main.go up
  STORAGE_DRIVER=postgres go run cmd/migrate/main.go up
  go run cmd/migrate/main.go seed -users alice,bob
`

func main() {
	users := flag.String("users", strings.Join(database.DefaultSeedConfig().Users, ","), "Comma separated owners for seeding")

	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)

	cfg := config.LoadConfig()
	l := logger.New(logger.DevelopmentMode)
	defer l.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := database.OpenStore(ctx, cfg)
	if err != nil {
		l.Logger.Fatal("failed to open store: " + err.Error())
	}
	defer store.Close(context.Background())

	switch command {
	case "up":
		l.Infof("Running migrations on %s...", cfg.StorageDriver)
		if err := store.Migrate(ctx); err != nil {
			l.Logger.Fatal("migration failed: " + err.Error())
		}
		l.Infof("Migrations completed successfully")
	case "status":
		if err := store.Ping(ctx); err != nil {
			l.Logger.Fatal("database connection failed: " + err.Error())
		}
		l.Infof("Database connection (%s): OK", cfg.StorageDriver)
	case "seed":
		result, err := database.Seed(ctx, store, &database.SeedConfig{Users: splitUsers(*users)}, l)
		if err != nil {
			l.Logger.Fatal("seeding failed: " + err.Error())
		}
		for _, p := range result.Projects {
			l.Infof("project %s owned by %s", p.ID, p.Owner)
		}
		for _, c := range result.Chatrooms {
			l.Infof("chatroom %s between %s and %s", c.ID, c.User1, c.User2)
		}
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func splitUsers(raw string) []string {
	var out []string
	for _, u := range strings.Split(raw, ",") {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}
