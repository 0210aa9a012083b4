// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── parseFile ───────────────────────────────────────────────────────────────

func TestParseFile(t *testing.T) {
	path := writeConfigFile(t, `{
		"host": "https://file.example",
		"username": "fileuser",
		"password": "filepass",
		"contract_id": "urn:uuid:file-contract",
		"verify_ssl": false,
		"timeout": "1m",
		"resume_db": "/var/lib/uploads.db"
	}`)

	cfg, err := parseFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://file.example", cfg.Host)
	assert.Equal(t, "fileuser", cfg.Username)
	assert.Equal(t, "filepass", cfg.Password)
	assert.Equal(t, "urn:uuid:file-contract", cfg.ContractID)
	require.NotNil(t, cfg.VerifySSL)
	assert.False(t, *cfg.VerifySSL)
	assert.Equal(t, time.Minute, cfg.Timeout)
	assert.Equal(t, "/var/lib/uploads.db", cfg.ResumeDB)
}

func TestParseFile_Missing(t *testing.T) {
	_, err := parseFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestParseFile_BadDuration(t *testing.T) {
	path := writeConfigFile(t, `{"timeout": "soonish"}`)
	_, err := parseFile(path)
	require.Error(t, err)
}

// ── Duration ────────────────────────────────────────────────────────────────

func TestDuration_JSON(t *testing.T) {
	var d Duration

	require.NoError(t, json.Unmarshal([]byte(`"90s"`), &d))
	assert.Equal(t, Duration(90*time.Second), d)

	// Plain numbers are nanoseconds.
	require.NoError(t, json.Unmarshal([]byte(`5000000000`), &d))
	assert.Equal(t, Duration(5*time.Second), d)

	out, err := json.Marshal(Duration(10 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, `"10s"`, string(out))
}

// ── WriteDefault ────────────────────────────────────────────────────────────

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.json")

	written, err := WriteDefault(path, false)
	require.NoError(t, err)
	assert.Equal(t, path, written)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// The template must parse back with sensible defaults.
	cfg, err := parseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://pas.csc.fi", cfg.Host)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.True(t, cfg.Verify())
	assert.Empty(t, cfg.Username)
}

func TestWriteDefault_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"username": "precious"}`), 0o600))

	written, err := WriteDefault(path, false)
	require.ErrorIs(t, err, ErrConfigExists)
	assert.Equal(t, path, written)

	// The original content is untouched.
	cfg, err := parseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "precious", cfg.Username)
}

func TestWriteDefault_Force(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"username": "old"}`), 0o600))

	_, err := WriteDefault(path, true)
	require.NoError(t, err)

	cfg, err := parseFile(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Username)
	assert.Equal(t, "https://pas.csc.fi", cfg.Host)
}

func TestWriteDefault_UserDefaultLocation(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	written, err := WriteDefault("", false)
	require.NoError(t, err)
	assert.Contains(t, written, "dpres-access-client")
	assert.FileExists(t, written)
}
