package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/okian/phonebook/internal/loadgen"
	"github.com/okian/phonebook/pkg/logger"
)

var (
	version = "dev"
	commit  = "unknown"
)

// Exit codes.
const (
	exitFailure      = 1
	exitVerification = 2
)

// CLI is the top-level command structure for loadgen.
type CLI struct {
	Version  kong.VersionFlag `help:"Show version." short:"V"`
	LogLevel string           `help:"Log level (debug, info, warn, error)." default:"info"`
	LogJSON  bool             `help:"Emit JSON logs." name:"log-json"`
	Run      RunCmd           `cmd:"" help:"Add generated contacts to a running phonebook and verify the result."`
}

// RunCmd executes one load run.
type RunCmd struct {
	URL        string        `help:"Base URL of the service." default:"http://localhost:5999"`
	Contacts   int           `help:"Number of distinct contacts to add." default:"1000"`
	Overwrites int           `help:"Number of contacts re-posted with a new number." default:"100"`
	Workers    int           `help:"Number of concurrent workers (default CPU cores * 2)."`
	Timeout    time.Duration `help:"HTTP request timeout." default:"30s"`
	Report     string        `help:"Write a YAML report to this path." type:"path"`
}

// Run executes the run command.
func (r *RunCmd) Run(cli *CLI) error {
	if err := setupLogging(cli); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU() * 2
	}
	cfg := &loadgen.Config{
		BaseURL:     r.URL,
		NumContacts: r.Contacts,
		Overwrites:  r.Overwrites,
		Workers:     workers,
		Timeout:     r.Timeout,
		ReportFile:  r.Report,
	}
	if _, err := loadgen.Run(ctx, cfg); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func setupLogging(cli *CLI) error {
	format := logger.FormatText
	if cli.LogJSON {
		format = logger.FormatJSON
	}
	if err := logger.Init(logger.WithFormat(format)); err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	return logger.SetLevelString(cli.LogLevel)
}

func exitCode(err error) int {
	if errors.Is(err, loadgen.ErrVerification) {
		return exitVerification
	}
	return exitFailure
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("loadgen"),
		kong.Description("Concurrent load generator for the phonebook service."),
		kong.Vars{"version": version + " " + commit},
		kong.Bind(&cli),
	)
	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
