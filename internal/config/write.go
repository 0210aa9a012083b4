// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// WriteDefault writes a configuration file template to path, creating
// parent directories as needed. An empty path selects the per-user default
// location. An existing file is never overwritten unless force is set;
// instead [ErrConfigExists] is returned. The written path is returned so
// the caller can tell the user where to fill in the credentials.
func WriteDefault(path string, force bool) (string, error) {
	if path == "" {
		p, err := userConfigPath()
		if err != nil {
			return "", fmt.Errorf("error resolving config path: %w", err)
		}
		path = p
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("error creating config dir: %w", err)
	}

	verify := true
	template := fileConfig{
		Host:      "https://pas.csc.fi",
		VerifySSL: &verify,
		Timeout:   Duration(10 * time.Second),
	}

	payload, err := json.MarshalIndent(template, "", "  ")
	if err != nil {
		return "", fmt.Errorf("error encoding config template: %w", err)
	}
	payload = append(payload, '\n')

	// 0600: the file will hold credentials once the user fills it in.
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return "", fmt.Errorf("error writing config file: %w", err)
	}

	return path, nil
}
