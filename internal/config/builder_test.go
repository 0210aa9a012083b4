// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv points the user config dir into a temp dir and clears every
// DPRES_* variable the tests care about, so host machine state never leaks
// into a test run.
func isolateEnv(t *testing.T) {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{
		"DPRES_HOST", "DPRES_USERNAME", "DPRES_PASSWORD", "DPRES_CONTRACT_ID",
		"DPRES_VERIFY_SSL", "DPRES_TIMEOUT", "DPRES_RESUME_DB", "DPRES_CONFIG",
	} {
		t.Setenv(k, "")
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// ── Load ────────────────────────────────────────────────────────────────────

func TestLoad_Defaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "https://pas.csc.fi", cfg.Host)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.True(t, cfg.Verify())
	assert.Empty(t, cfg.Username)
}

func TestLoad_Precedence(t *testing.T) {
	isolateEnv(t)

	path := writeConfigFile(t, `{
		"host": "https://file.example",
		"username": "fileuser",
		"password": "filepass",
		"contract_id": "urn:uuid:file-contract",
		"timeout": "30s"
	}`)

	t.Setenv("DPRES_USERNAME", "envuser")

	flagCfg := &Config{
		Host:       "https://flag.example",
		ConfigPath: path,
	}

	cfg, err := Load(flagCfg)
	require.NoError(t, err)

	assert.Equal(t, "https://flag.example", cfg.Host, "flag beats file")
	assert.Equal(t, "envuser", cfg.Username, "env beats file")
	assert.Equal(t, "filepass", cfg.Password, "file beats defaults")
	assert.Equal(t, "urn:uuid:file-contract", cfg.ContractID)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	isolateEnv(t)

	path := writeConfigFile(t, `{"host": "https://file.example", "verify_ssl": true}`)
	t.Setenv("DPRES_CONFIG", path)
	t.Setenv("DPRES_HOST", "https://env.example")
	t.Setenv("DPRES_VERIFY_SSL", "false")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example", cfg.Host)
	assert.False(t, cfg.Verify())
}

func TestLoad_VerifySSLPrecedence(t *testing.T) {
	no := false

	tests := []struct {
		name string
		file string
		env  string
		flag *bool
		want bool
	}{
		{name: "flag false beats file true", file: `{"verify_ssl": true}`, flag: &no, want: false},
		{name: "env false beats file true", file: `{"verify_ssl": true}`, env: "false", want: false},
		{name: "file false reaches the result", file: `{"verify_ssl": false}`, want: false},
		{name: "unset everywhere means verify", file: `{}`, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)

			path := writeConfigFile(t, tt.file)
			if tt.env != "" {
				t.Setenv("DPRES_VERIFY_SSL", tt.env)
			}

			cfg, err := Load(&Config{ConfigPath: path, VerifySSL: tt.flag})
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Verify())
		})
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	isolateEnv(t)

	_, err := Load(&Config{ConfigPath: filepath.Join(t.TempDir(), "nope.json")})
	require.Error(t, err)
}

func TestLoad_MalformedFile(t *testing.T) {
	isolateEnv(t)

	path := writeConfigFile(t, `{not json`)
	_, err := Load(&Config{ConfigPath: path})
	require.Error(t, err)
}

func TestLoad_ValidationErrors(t *testing.T) {
	isolateEnv(t)

	_, err := Load(&Config{Timeout: -5 * time.Second})
	assert.ErrorIs(t, err, ErrInvalidTimeout)

	_, err = Load(&Config{Host: "missing-scheme"})
	assert.ErrorIs(t, err, ErrInvalidHost)
}
