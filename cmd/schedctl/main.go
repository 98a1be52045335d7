package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/kankrittapon/calendar/internal/config"
	"github.com/kankrittapon/calendar/internal/database"
	"github.com/kankrittapon/calendar/internal/domain/service"
	"github.com/kankrittapon/calendar/internal/logger"
	"github.com/kankrittapon/calendar/migrator/sqlite"
	"github.com/slack-go/slack"
)

var CLI struct {
	Database string `help:"SQLite database path." env:"DATABASE_PATH" default:"./schedule.db"`

	Migrate      MigrateCmd      `cmd:"" help:"Apply database migrations."`
	Seed         SeedCmd         `cmd:"" help:"Seed the fixed categories."`
	Users        UsersCmd        `cmd:"" help:"List registered users."`
	Contacts     ContactsCmd     `cmd:"" help:"List pending contacts."`
	SetBoss      SetBossCmd      `cmd:"" help:"Make a Slack user the boss."`
	AddSecretary AddSecretaryCmd `cmd:"" help:"Register a Slack user as secretary."`
	Promote      PromoteCmd      `cmd:"" help:"Promote a pending contact to a user."`
	Digest       DigestCmd       `cmd:"" help:"Send the daily or tomorrow digest now."`
	Reminders    RemindersCmd    `cmd:"" help:"Send due reminders now."`
	Sent         SentCmd         `cmd:"" help:"List the notification ledger of one day."`
}

func main() {
	_ = godotenv.Load()

	kctx := kong.Parse(&CLI,
		kong.Name("schedctl"),
		kong.Description("Administration tool for the schedule bot"),
		kong.UsageOnError(),
	)

	cfg := config.Load()
	cfg.DatabasePath = CLI.Database

	if err := logger.Init(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := sqlite.Migrate(db.DB()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to run migrations: %v\n", err)
		os.Exit(1)
	}

	appCtx := &Context{
		Config:   cfg,
		Services: service.NewInstance(database.NewInstance(db), slack.New(cfg.SlackBotToken), cfg),
	}

	if err := kctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
