// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package config

import "errors"

var (
	ErrInvalidHost       = errors.New("host must be a URL with scheme and host")
	ErrInvalidTimeout    = errors.New("timeout must be positive")
	ErrMissingUsername   = errors.New("username is not configured")
	ErrMissingPassword   = errors.New("password is not configured")
	ErrMissingContractID = errors.New("contract id is not configured")

	// ErrConfigExists is returned by WriteDefault when the target file
	// already exists and force was not requested.
	ErrConfigExists = errors.New("config file already exists")
)
