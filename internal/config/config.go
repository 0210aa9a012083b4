// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package config

import (
	"net/url"
	"time"
)

// Config holds every setting the access client needs for one invocation.
// It is assembled once at startup by merging values from command-line
// flags, environment variables and an optional JSON file, and is treated
// as immutable afterwards.
//
// Struct tags:
//   - env  — environment variable name, looked up with the DPRES_ prefix
//     (caarlos0/env).
//   - json — field name in the configuration file.
type Config struct {
	// Host is the base URL of the Digital Preservation Service,
	// e.g. "https://pas.csc.fi". A trailing slash is tolerated.
	// Env: DPRES_HOST
	Host string `env:"HOST" json:"host"`

	// Username and Password are the HTTP basic auth credentials issued
	// for the organization.
	// Env: DPRES_USERNAME / DPRES_PASSWORD
	Username string `env:"USERNAME" json:"username"`
	Password string `env:"PASSWORD" json:"password"`

	// ContractID identifies the organization's contract with the service,
	// e.g. "urn:uuid:12345678-f00d-d00f-a4b7-010a184befdd".
	// Env: DPRES_CONTRACT_ID
	ContractID string `env:"CONTRACT_ID" json:"contract_id"`

	// VerifySSL controls TLS certificate verification of the service.
	// nil means unset; the default is true. Disable only for testing.
	// Env: DPRES_VERIFY_SSL
	VerifySSL *bool `env:"VERIFY_SSL" json:"verify_ssl,omitempty"`

	// Timeout is the per-request timeout for outbound calls (e.g. "10s").
	// Env: DPRES_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT" json:"-"`

	// ResumeDB is the path of the local SQLite database used to resume
	// interrupted uploads. Empty disables upload resumption.
	// Env: DPRES_RESUME_DB
	ResumeDB string `env:"RESUME_DB" json:"resume_db,omitempty"`

	// ConfigPath points at an alternate configuration file. Populated via
	// the DPRES_CONFIG environment variable or the -config flag; never
	// read from the file itself.
	ConfigPath string `env:"CONFIG" json:"-"`

	// Verbose enables debug logging. Flag-only.
	Verbose bool `env:"-" json:"-"`
}

// Verify reports whether TLS certificates of the service should be
// verified. Unset means verify.
func (c *Config) Verify() bool {
	return c.VerifySSL == nil || *c.VerifySSL
}

func (c *Config) validate() error {
	u, err := url.Parse(c.Host)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidHost
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}

// ValidateCredentials checks that every setting needed for an
// authenticated call to the service is present. Commands that talk to the
// service call this after Load; write-config does not.
func (c *Config) ValidateCredentials() error {
	switch {
	case c.Username == "":
		return ErrMissingUsername
	case c.Password == "":
		return ErrMissingPassword
	case c.ContractID == "":
		return ErrMissingContractID
	}
	return nil
}
