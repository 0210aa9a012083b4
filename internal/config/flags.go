// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package config

import (
	"flag"
	"strconv"
)

// RegisterFlags registers the global configuration flags on fs and returns
// the *Config the flag values are bound to. The returned config is only
// meaningful after fs.Parse has run.
//
// Flags:
//
//	-host         DPS service base URL
//	-username     basic auth username
//	-password     basic auth password
//	-contract-id  contract identifier of the organization
//	-timeout      per-request timeout (e.g. "10s", "1m")
//	-verify-ssl   verify the service TLS certificate (true/false)
//	-resume-db    path of the upload resume database
//	-c/-config    configuration file path
//	-verbose      enable debug logging
func RegisterFlags(fs *flag.FlagSet) *Config {
	cfg := &Config{}

	fs.StringVar(&cfg.Host, "host", "", "DPS service base URL")
	fs.StringVar(&cfg.Username, "username", "", "Basic auth username")
	fs.StringVar(&cfg.Password, "password", "", "Basic auth password")
	fs.StringVar(&cfg.ContractID, "contract-id", "", "Contract identifier")
	fs.DurationVar(&cfg.Timeout, "timeout", 0, "Request timeout (e.g. 10s, 1m)")
	fs.StringVar(&cfg.ResumeDB, "resume-db", "", "Upload resume database path")
	fs.StringVar(&cfg.ConfigPath, "c", "", "Configuration file path")
	fs.StringVar(&cfg.ConfigPath, "config", "", "Configuration file path (alias)")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging")
	fs.Func("verify-ssl", "Verify the service TLS certificate (true/false)", func(s string) error {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		cfg.VerifySSL = &v
		return nil
	})

	return cfg
}
