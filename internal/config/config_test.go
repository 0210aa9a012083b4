// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Verify(t *testing.T) {
	yes, no := true, false

	assert.True(t, (&Config{}).Verify(), "unset means verify")
	assert.True(t, (&Config{VerifySSL: &yes}).Verify())
	assert.False(t, (&Config{VerifySSL: &no}).Verify())
}

func TestConfig_ValidateCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{
			name: "complete",
			cfg:  Config{Username: "u", Password: "p", ContractID: "urn:c"},
			want: nil,
		},
		{
			name: "no username",
			cfg:  Config{Password: "p", ContractID: "urn:c"},
			want: ErrMissingUsername,
		},
		{
			name: "no password",
			cfg:  Config{Username: "u", ContractID: "urn:c"},
			want: ErrMissingPassword,
		},
		{
			name: "no contract",
			cfg:  Config{Username: "u", Password: "p"},
			want: ErrMissingContractID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ValidateCredentials()
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{Host: "https://pas.csc.fi", Timeout: 10 * time.Second}
	assert.NoError(t, valid.validate())

	noScheme := Config{Host: "pas.csc.fi", Timeout: 10 * time.Second}
	assert.ErrorIs(t, noScheme.validate(), ErrInvalidHost)

	noTimeout := Config{Host: "https://pas.csc.fi"}
	assert.ErrorIs(t, noTimeout.validate(), ErrInvalidTimeout)
}
