package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stairbeat/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stairbeat SSH server",
	Long: `Start an SSH server that lets users connect and climb.

Each SSH connection gets its own session with a start screen and its own
game. All sessions share one scoreboard that lasts as long as the server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.stairbeat/host_key

Examples:
  stairbeat serve                           # Listen on :23234 with auto-generated key
  stairbeat serve --ssh :2222               # Listen on port 2222
  stairbeat serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (0 = from config)")
}

func runServe(_ *cobra.Command, _ []string) (err error) {
	c := appConfig.Config
	cfg := tui.SSHServerConfig{
		Address:     c.Server.Address,
		HostKeyPath: c.Server.HostKeyPath,
		IdleTimeout: c.Server.IdleTimeout(),
		TickRate:    c.Game.TickRate,
		Seed:        flagSeed,
	}
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	logger, closeLog := newLogger(c.Log, os.Stderr, "stairbeat-ssh")
	defer func() {
		err = errors.Join(err, closeLog())
	}()
	logger.Info("config loaded", "source", appConfig.Source)

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting stairbeat SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// port returns the port part of addr for the connect hint.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil && p != "" {
		return p
	}
	return "23234"
}
