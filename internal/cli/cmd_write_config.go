// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/dpres-fi/access-client/internal/config"
)

func runWriteConfig(flagCfg *config.Config, args []string, stdout, stderr io.Writer) error {
	fs := newSubFlagSet("write-config", stderr)
	force := fs.Bool("force", false, "overwrite an existing configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return usageErrorf("write-config takes no arguments")
	}

	path, err := config.WriteDefault(flagCfg.ConfigPath, *force)
	if errors.Is(err, config.ErrConfigExists) {
		return fmt.Errorf("%w at %s, use -force to overwrite", config.ErrConfigExists, path)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Configuration file written to %s\n", path)
	fmt.Fprintln(stdout, "Fill in the username, password and contract_id fields before use.")
	return nil
}
