package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mauricejumelet/advisor-cli/cmd"
	"github.com/mauricejumelet/advisor-cli/internal/config"
	"github.com/mauricejumelet/advisor-cli/internal/datastore"
	"github.com/mauricejumelet/advisor-cli/internal/ollama"
)

var version = "1.0.0"

var CLI struct {
	// Global flags
	Config string `short:"c" help:"Path to config file (.env format)" type:"path"`

	// Commands
	Range     cmd.RangeCmd  `cmd:"" help:"Resolve a time phrase to a start/end date range"`
	Scores    cmd.ScoresCmd `cmd:"" help:"Show scores for a time phrase (-j for JSON)"`
	Chat      cmd.ChatCmd   `cmd:"" help:"Ask the advisor a question"`
	Load      cmd.LoadCmd   `cmd:"" help:"Load a Date,Score CSV into the local cache"`
	Serve     cmd.ServeCmd  `cmd:"" help:"Run the web UI (upload + chat)"`
	Configure ConfigureCmd  `cmd:"" help:"Show configuration help and setup instructions"`
}

type ConfigureCmd struct{}

func (c *ConfigureCmd) Run() error {
	config.PrintConfigHelp()
	return nil
}

func main() {
	// Handle version flag early
	for _, arg := range os.Args[1:] {
		if arg == "-v" || arg == "--version" {
			fmt.Printf("adv v%s\n", version)
			return
		}
	}

	ctx := kong.Parse(&CLI,
		kong.Name("adv"),
		kong.Description("Food Score Advisor - chat over your Date,Score data (v"+version+")"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	// Commands that don't need the collaborators
	switch ctx.Command() {
	case "configure":
		err := ctx.Run()
		ctx.FatalIfErrorf(err)
		return
	}

	// Load configuration
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := datastore.New(cfg.CacheDir)
	// Restore the last uploaded CSV, if any; a fresh start is fine too.
	if _, err := store.LoadCached(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring cached CSV: %v\n", err)
	}

	app := &cmd.App{
		Config: cfg,
		Store:  store,
		Ollama: ollama.NewClient(cfg),
	}

	err = ctx.Run(app)
	ctx.FatalIfErrorf(err)
}
