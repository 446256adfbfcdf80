// castle-fight-server hosts Castle Fight matches over SSH. Build:
//
//	go build -o castle-fight-server ./cmd/server
//
// Usage:
//
//	./castle-fight-server [-config castle-fight.yaml] [-addr :2222] [-key server_host_key]
//
// Connect from two terminals (or one, and press x to play the bot):
//
//	ssh -p 2222 localhost
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"castle-fight/internal/arena"
	"castle-fight/internal/config"
	"castle-fight/internal/sim"
	internalssh "castle-fight/internal/ssh"

	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"
)

// options are the command-line settings layered over the config file.
type options struct {
	cfg        config.Config
	debug      bool
	resultsDir string
}

// parseFlags reads the config file named by -config and applies the other
// flags over it.
func parseFlags(args []string, stderr io.Writer) (options, error) {
	fset := flag.NewFlagSet("castle-fight-server", flag.ContinueOnError)
	fset.SetOutput(stderr)
	cfgPath := fset.String("config", "", "Path to a YAML config file")
	addr := fset.String("addr", "", "SSH listen address (overrides ssh_addr)")
	keyFile := fset.String("key", "", "Path to the PEM-encoded host key, auto-generated if absent (overrides host_key)")
	tickRate := fset.Int("tick-rate", 0, "Simulation ticks per second (overrides tick_rate)")
	perception := fset.String("perception", "", "Perception strategy: radius or sensor (overrides perception)")
	results := fset.String("results", "", "Directory for the match results log (default $XDG_DATA_HOME/castle-fight)")
	debug := fset.Bool("debug", false, "Enable debug logging")
	if err := fset.Parse(args); err != nil {
		return options{}, err
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return options{}, err
	}
	if *addr != "" {
		cfg.SSHAddr = *addr
	}
	if *keyFile != "" {
		cfg.HostKey = *keyFile
	}
	if *tickRate != 0 {
		cfg.TickRate = *tickRate
	}
	if *perception != "" {
		cfg.Perception = *perception
	}
	if err := cfg.Validate(); err != nil {
		return options{}, err
	}
	return options{cfg: cfg, debug: *debug, resultsDir: *results}, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		log.Fatal(err)
	}

	level := slog.LevelInfo
	if opts.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if opts.resultsDir == "" {
		if dir, err := sim.ResultDir(); err == nil {
			opts.resultsDir = dir
		} else {
			logger.Warn("results log disabled", "error", err)
		}
	}

	cat, lvl, err := arena.LoadContent(opts.cfg, logger)
	if err != nil {
		log.Fatal(err)
	}
	srv, err := arena.NewServer(opts.cfg, lvl, cat, logger, opts.resultsDir)
	if err != nil {
		log.Fatal(err)
	}

	sshSrv := &gossh.Server{
		Addr: opts.cfg.SSHAddr,
		Handler: func(s gossh.Session) {
			handleSession(srv, s, logger)
		},
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// Accept any authentication; add gossh.PublicKeyAuth for real auth.
		HostSigners: []gossh.Signer{loadOrCreateHostKey(opts.cfg.HostKey)},
		IdleTimeout: 30 * time.Minute,
	}

	log.Printf("castle-fight SSH server listening on %s", opts.cfg.SSHAddr)
	log.Printf("Connect with:  ssh -p <port> -o StrictHostKeyChecking=no localhost")
	log.Fatal(sshSrv.ListenAndServe())
}

// handleSession is the gliderlabs SSH handler for one connection. It blocks
// for the duration of the connection so the SSH session stays open.
func handleSession(srv *arena.Server, s gossh.Session, logger *slog.Logger) {
	screen, err := internalssh.NewScreen(s)
	if err != nil {
		if err == internalssh.ErrNoPty {
			fmt.Fprintln(s, "Castle Fight needs a terminal. Connect with: ssh -t -p <port> <host>")
			return
		}
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}
	defer screen.Fini()

	name := internalssh.SanitizeName(s.User())
	if name == "" {
		name = "Player"
	}
	sess := arena.NewSession(name, screen)
	logger.Info("player connected", "session", sess.ID, "name", name, "remote", s.RemoteAddr().String())
	srv.Play(sess)
	logger.Info("player disconnected", "session", sess.ID)
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string) gossh.Signer {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.Printf("Loaded host key from %s", path)
			return signer
		}
	}

	log.Printf("Generating new ed25519 host key → %s", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		log.Fatalf("generate host key: %v", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		log.Fatalf("create signer: %v", err)
	}
	// Persist for next run (non-fatal if it fails).
	if pemBlock, err := xssh.MarshalPrivateKey(key, "castle-fight server"); err == nil {
		_ = os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600)
	}
	return signer
}
