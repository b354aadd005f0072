// RuneMaze is a first-person maze of treasures, runes and secrets.
// Usage: runemaze [--version] [--plain] [--script <file>] [--trace] [--config <file>] [--maze <id>] [--seed <n>] [--log <file>] [game_directory]
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/nathoo/runemaze/cli"
	"github.com/nathoo/runemaze/config"
	"github.com/nathoo/runemaze/engine"
	"github.com/nathoo/runemaze/engine/clock"
	"github.com/nathoo/runemaze/loader"
	"github.com/nathoo/runemaze/logging"
	"github.com/nathoo/runemaze/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	usage      = "Usage: runemaze [--version] [--plain] [--script <file>] [--trace] [--config <file>] [--maze <id>] [--seed <n>] [--log <file>] [game_directory]"
	defaultDir = "mazes/classic"
	tuiLogFile = "runemaze.log"
)

func main() {
	plain := false
	trace := false
	var gameDir, scriptFile, configFile, mazeID, logFile string
	var seed int64

	args := os.Args[1:]
	value := func(i int) string {
		if i+1 >= len(args) {
			fmt.Fprintf(os.Stderr, "%s requires a value\n", args[i])
			os.Exit(1)
		}
		return args[i+1]
	}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("runemaze %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--script":
			scriptFile = value(i)
			i++
		case "--config":
			configFile = value(i)
			i++
		case "--maze":
			mazeID = value(i)
			i++
		case "--log":
			logFile = value(i)
			i++
		case "--seed":
			n, err := strconv.ParseInt(value(i), 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "--seed: %v\n", err)
				os.Exit(1)
			}
			seed = n
			i++
		case "-h", "--help":
			fmt.Println(usage)
			return
		default:
			if gameDir == "" {
				gameDir = args[i]
			}
		}
	}
	if gameDir == "" {
		gameDir = defaultDir
	}

	cfg := config.Default()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	useTUI := scriptFile == "" && !plain && isTerminal()
	if logFile != "" {
		cfg.Log.Output = logFile
	}
	if cfg.Log.Output == "" && !useTUI {
		cfg.Log.Output = "stderr"
		if cfg.Log.Level == "" {
			cfg.Log.Level = "warn"
		}
	}
	// The alternate screen owns the terminal.
	if useTUI && (cfg.Log.Output == "stderr" || cfg.Log.Output == "stdout") {
		cfg.Log.Output = tuiLogFile
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logging: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	// Load and compile Lua maze content.
	defs, err := loader.Load(gameDir, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading game: %v\n", err)
		os.Exit(1)
	}

	opts := []engine.Option{
		engine.WithClock(clock.NewManual(time.Now())),
		engine.WithLogger(log),
	}
	if seed != 0 {
		opts = append(opts, engine.WithSeed(seed))
	}
	eng, err := engine.New(defs, mazeID, cfg, opts...)
	if err != nil {
		log.Error("starting engine", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		fmt.Printf("%s v%s by %s\n\n", defs.Game.Title, defs.Game.Version, defs.Game.Author)
		c := cli.New(eng, defs)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.Run()
		return
	}

	if !useTUI {
		fmt.Printf("%s v%s by %s\n\n", defs.Game.Title, defs.Game.Version, defs.Game.Author)
		c := cli.New(eng, defs)
		c.Trace = trace
		c.Run()
		return
	}

	if err := tui.Run(eng, defs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
