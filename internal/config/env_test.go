// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("DPRES_HOST", "https://env.example")
	t.Setenv("DPRES_USERNAME", "envuser")
	t.Setenv("DPRES_PASSWORD", "envpass")
	t.Setenv("DPRES_CONTRACT_ID", "urn:uuid:env-contract")
	t.Setenv("DPRES_VERIFY_SSL", "false")
	t.Setenv("DPRES_TIMEOUT", "15s")
	t.Setenv("DPRES_RESUME_DB", "/tmp/uploads.db")
	t.Setenv("DPRES_CONFIG", "/tmp/config.json")

	cfg := &Config{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "https://env.example", cfg.Host)
	assert.Equal(t, "envuser", cfg.Username)
	assert.Equal(t, "envpass", cfg.Password)
	assert.Equal(t, "urn:uuid:env-contract", cfg.ContractID)
	require.NotNil(t, cfg.VerifySSL)
	assert.False(t, *cfg.VerifySSL)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, "/tmp/uploads.db", cfg.ResumeDB)
	assert.Equal(t, "/tmp/config.json", cfg.ConfigPath)
}

func TestParseEnv_BadValue(t *testing.T) {
	t.Setenv("DPRES_TIMEOUT", "not-a-duration")

	err := parseEnv(&Config{})
	require.Error(t, err)
}

func TestParseEnv_UnsetLeavesZeroValues(t *testing.T) {
	t.Setenv("DPRES_HOST", "")
	t.Setenv("DPRES_VERIFY_SSL", "")

	cfg := &Config{}
	require.NoError(t, parseEnv(cfg))

	assert.Empty(t, cfg.Host)
	assert.Nil(t, cfg.VerifySSL)
}
