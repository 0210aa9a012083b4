// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// fileConfig mirrors [Config] for the JSON configuration file, with a
// string-friendly Duration for the timeout.
type fileConfig struct {
	Host       string   `json:"host"`
	Username   string   `json:"username"`
	Password   string   `json:"password"`
	ContractID string   `json:"contract_id"`
	VerifySSL  *bool    `json:"verify_ssl,omitempty"`
	Timeout    Duration `json:"timeout,omitempty"`
	ResumeDB   string   `json:"resume_db,omitempty"`
}

func parseFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	defer f.Close()

	var fc fileConfig
	if err := json.NewDecoder(f).Decode(&fc); err != nil {
		return nil, fmt.Errorf("error decoding config file %s: %w", path, err)
	}

	return &Config{
		Host:       fc.Host,
		Username:   fc.Username,
		Password:   fc.Password,
		ContractID: fc.ContractID,
		VerifySSL:  fc.VerifySSL,
		Timeout:    time.Duration(fc.Timeout),
		ResumeDB:   fc.ResumeDB,
	}, nil
}

// Duration is a wrapper around time.Duration that supports JSON
// unmarshaling from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
