// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

// Package cli implements the dpres-access command-line tool: a thin
// subcommand dispatcher over the adapter and service packages.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/dpres-fi/access-client/internal/adapter"
	"github.com/dpres-fi/access-client/internal/config"
	"github.com/dpres-fi/access-client/internal/logger"
)

// Exit codes: 0 success, 1 operational failure, 2 usage error.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const usageText = `Usage: dpres-access [global flags] <command> [arguments]

Commands:
  write-config                       write a configuration file template
  search                             list and search preserved packages
  dip download AIP_ID                disseminate and download a package
  dip delete DIP_ID                  delete a disseminated package
  upload PATH                        upload a transfer package (tus)
  transfer info TRANSFER_ID          show ingest status of a transfer
  transfer list                      list transfers
  transfer delete TRANSFER_ID        delete a transfer
  transfer get-report TRANSFER_ID    fetch ingest validation reports

Global flags:
`

// usageError marks a command-line mistake; Run maps it to exit code 2.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// App carries the state shared by the subcommands of one invocation.
type App struct {
	cfg    *config.Config
	log    *logger.Logger
	client *adapter.Client

	stdout io.Writer
	stderr io.Writer
}

// Run parses args (program name excluded), executes one subcommand and
// returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("dpres-access", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usageText)
		fs.PrintDefaults()
	}

	flagCfg := config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return exitUsage
	}
	command, rest := rest[0], rest[1:]

	// write-config must work even when the current configuration is
	// broken, so it is dispatched before the config load.
	if command == "write-config" {
		return status(stderr, fs, runWriteConfig(flagCfg, rest, stdout, stderr))
	}

	cfg, err := config.Load(flagCfg)
	if err != nil {
		fmt.Fprintf(stderr, "dpres-access: %v\n", err)
		return exitError
	}

	app := &App{
		cfg:    cfg,
		log:    logger.New("cli", cfg.Verbose),
		stdout: stdout,
		stderr: stderr,
	}

	ctx := context.Background()
	switch command {
	case "search":
		err = app.runSearch(ctx, rest)
	case "dip":
		err = app.runDIP(ctx, rest)
	case "upload":
		err = app.runUpload(ctx, rest)
	case "transfer":
		err = app.runTransfer(ctx, rest)
	default:
		err = usageErrorf("unknown command %q", command)
	}

	return status(stderr, fs, err)
}

func status(stderr io.Writer, fs *flag.FlagSet, err error) int {
	if err == nil {
		return exitOK
	}

	var ue *usageError
	if errors.As(err, &ue) {
		fmt.Fprintf(stderr, "dpres-access: %s\n", ue.msg)
		fs.Usage()
		return exitUsage
	}
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}

	fmt.Fprintf(stderr, "dpres-access: %v\n", err)
	return exitError
}

// connect validates the credentials and builds the REST client. Called by
// every subcommand that talks to the service.
func (a *App) connect() error {
	if err := a.cfg.ValidateCredentials(); err != nil {
		return err
	}

	client, err := adapter.New(adapter.Config{
		Host:       a.cfg.Host,
		Username:   a.cfg.Username,
		Password:   a.cfg.Password,
		ContractID: a.cfg.ContractID,
		VerifySSL:  a.cfg.Verify(),
		Timeout:    a.cfg.Timeout,
	}, a.log)
	if err != nil {
		return err
	}

	a.client = client
	return nil
}

func newSubFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}
