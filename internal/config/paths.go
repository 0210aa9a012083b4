// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package config

import (
	"os"
	"path/filepath"
)

const appDirName = "dpres-access-client"

// etcConfigPath is the system-wide configuration file checked first.
const etcConfigPath = "/etc/dpres-access-client/config.json"

// userConfigPath returns the per-user configuration file path following
// os.UserConfigDir (XDG on Linux), usually
// ~/.config/dpres-access-client/config.json.
func userConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, "config.json"), nil
}

// DefaultResumeDBPath returns the default location of the upload resume
// database, or "" when no per-user directory can be determined.
func DefaultResumeDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appDirName, "uploads.db")
}

// resolveFilePath picks the configuration file to read. An explicitly
// requested path (flag or DPRES_CONFIG) is returned as-is so that a missing
// file surfaces as an error. Otherwise the first existing default location
// wins, and "" means no configuration file at all, which is fine.
func resolveFilePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(etcConfigPath); err == nil {
		return etcConfigPath
	}
	if p, err := userConfigPath(); err == nil {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
