// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithOutput_RoleField(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(&buf, "cli", false)

	log.Info().Msg("hello there")

	out := buf.String()
	assert.Contains(t, out, "hello there")
	assert.Contains(t, out, "cli")
}

func TestNewWithOutput_VerboseEnablesDebug(t *testing.T) {
	var quiet, verbose bytes.Buffer

	NewWithOutput(&quiet, "cli", false).Debug().Msg("hidden")
	NewWithOutput(&verbose, "cli", true).Debug().Msg("visible")

	assert.Empty(t, quiet.String())
	assert.Contains(t, verbose.String(), "visible")
}
