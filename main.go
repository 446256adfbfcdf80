// castle-fight runs a local Castle Fight match in the terminal against the
// bot.
package main

import (
	"castle-fight/internal/arena"
	"castle-fight/internal/config"
	"castle-fight/internal/sim"
	internalssh "castle-fight/internal/ssh"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/user"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfgPath := flag.String("config", "", "Path to a YAML config file")
	logPath := flag.String("log", "", "Write a debug log to this file")
	flag.Parse()

	if err := run(*cfgPath, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath, logPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	// The terminal belongs to the game, so logs only go to a file.
	var logOut io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cat, lvl, err := arena.LoadContent(cfg, logger)
	if err != nil {
		return err
	}
	resultsDir, err := sim.ResultDir()
	if err != nil {
		logger.Warn("results log disabled", "error", err)
		resultsDir = ""
	}
	srv, err := arena.NewServer(cfg, lvl, cat, logger, resultsDir)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	name := "Player"
	if u, err := user.Current(); err == nil {
		if n := internalssh.SanitizeName(u.Username); n != "" {
			name = n
		}
	}
	return srv.PlayBot(arena.NewSession(name, screen))
}
