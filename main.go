package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Kabroda-Trading/KTBB-APP/Internal/database"
	"github.com/Kabroda-Trading/KTBB-APP/Internal/logging"
	"github.com/Kabroda-Trading/KTBB-APP/Internal/utils/config"
	"github.com/Kabroda-Trading/KTBB-APP/interactive"
)

func main() {
	config.LoadEnv()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.Component(logging.New(cfg.Logging), "console")

	ctx := context.Background()

	var journal interactive.Journal
	if cfg.Journal.Enabled {
		db, err := database.InitDatabase(ctx, cfg.Database)
		if err != nil {
			logger.Warn().Err(err).Msg("run journal unavailable, continuing without it")
		} else {
			j := database.NewJournal(db)
			defer j.Close()
			journal = j
		}
	}

	console := interactive.NewConsole(os.Stdin, os.Stdout, journal)

	for {
		choice, err := console.ShowMainMenu()
		if err != nil {
			fmt.Println("\nGoodbye!")
			return
		}

		switch choice {
		case 1:
			err = console.RunReviews(ctx)
		case 2:
			err = console.ReviewFile(ctx)
		case 3:
			err = console.ShowRecentRuns(ctx, cfg.Journal.RecentLimit)
		case 4:
			err = config.ConfigureInteractive(cfg, console.Reader(), console.Writer())
		case 5:
			fmt.Println("Goodbye!")
			return
		}

		if err != nil {
			logger.Error().Err(err).Msg("menu action failed")
			return
		}
	}
}
