package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"postfeed/internal/config"
	"postfeed/internal/core/postlist"
	"postfeed/internal/remote/jsonplaceholder"
	"postfeed/internal/tui"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run returns the process exit code so deferred cleanup always happens
func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("postlist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	baseURL := fs.String("base-url", "", "Override the posts API base URL")
	timeout := fs.Duration("timeout", 0, "Override the request timeout")
	readOnly := fs.Bool("readonly", false, "Hide the create form")
	logFile := fs.String("log-file", "", "Write logs to this file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(stderr, "postlist: failed to load config: %v\n", err)
		return 1
	}
	if *baseURL != "" {
		cfg.BaseURL = strings.TrimRight(*baseURL, "/")
	}
	if *timeout > 0 {
		cfg.Timeout = *timeout
	}
	if *readOnly {
		cfg.ReadOnly = true
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}

	// The terminal belongs to the UI; logs go to a file or nowhere
	var logOut io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(stderr, "postlist: failed to open log file: %v\n", err)
			return 1
		}
		defer func() { _ = f.Close() }()
		logOut = f
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug}))

	client, err := jsonplaceholder.NewClient(cfg.BaseURL,
		jsonplaceholder.WithTimeout(cfg.Timeout),
		jsonplaceholder.WithLogger(logger),
	)
	if err != nil {
		logger.Error("failed to create posts client", "error", err)
		fmt.Fprintf(stderr, "postlist: failed to create posts client: %v\n", err)
		return 1
	}

	presenter := tui.NewPresenter()
	ctrl := postlist.New(client,
		postlist.WithPresenter(presenter),
		postlist.WithSupportsCreate(!cfg.ReadOnly),
		postlist.WithLogger(logger),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("starting postlist", "base_url", client.BaseURL(), "readonly", cfg.ReadOnly, "timeout", cfg.Timeout.String())
	start := time.Now()

	p := tea.NewProgram(tui.NewModel(ctx, ctrl, presenter), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("postlist failed", "error", err)
		fmt.Fprintf(stderr, "postlist: %v\n", err)
		return 1
	}
	logger.Info("postlist exited", "uptime", time.Since(start).String())
	return 0
}
