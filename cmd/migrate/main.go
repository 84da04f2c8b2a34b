package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/osse101/habitquest/internal/config"
	"github.com/osse101/habitquest/internal/database"
	"github.com/osse101/habitquest/internal/logger"
)

const usage = `usage: migrate <command> [args]

commands:
  up            apply every pending migration
  up-to VERSION apply migrations up to VERSION
  down          roll back the latest migration
  down-to VER   roll back to VER
  redo          roll back and re-apply the latest migration
  status        print the state of each migration
  version       print the current schema version
`

var commands = map[string]bool{
	"up": true, "up-to": true, "down": true, "down-to": true,
	"redo": true, "status": true, "version": true,
}

func main() {
	if len(os.Args) < 2 || !commands[os.Args[1]] {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.LoadDatabase()
	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, "habitquest-migrate", config.DefaultVersion, config.DefaultEnvironment, false))

	if err := database.Migrate(context.Background(), cfg.GetDBConnString(), os.Args[1], os.Args[2:]...); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}
