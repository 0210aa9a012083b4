// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The access-client authors

package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"dario.cat/mergo"
)

// configBuilder collects partial configurations in priority order. build
// merges them with mergo, where an earlier non-zero value wins over a later
// one.
type configBuilder struct {
	configs []*Config
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*Config, 0, 4),
	}
}

func (b *configBuilder) build() (*Config, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(Config)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg, mergo.WithTransformers(boolPtrTransformer{})); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, config.validate()
}

// boolPtrTransformer keeps mergo from dereferencing *bool fields: the
// first non-nil pointer wins, so an explicit false from a higher-priority
// layer is not replaced by true from a lower one.
type boolPtrTransformer struct{}

func (boolPtrTransformer) Transformer(typ reflect.Type) func(dst, src reflect.Value) error {
	if typ != reflect.TypeOf((*bool)(nil)) {
		return nil
	}
	return func(dst, src reflect.Value) error {
		if dst.CanSet() && dst.IsNil() {
			dst.Set(src)
		}
		return nil
	}
}

func (b *configBuilder) withFlags(flagCfg *Config) *configBuilder {
	if flagCfg != nil {
		b.configs = append(b.configs, flagCfg)
	}
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &Config{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFile() *configBuilder {
	// An explicit path may have arrived through the flags or the
	// environment; whichever was collected first wins.
	var explicit string
	for _, cfg := range b.configs {
		if cfg.ConfigPath != "" {
			explicit = cfg.ConfigPath
			break
		}
	}

	path := resolveFilePath(explicit)
	if path == "" {
		return b
	}

	fileCfg, err := parseFile(path)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, fileCfg)
	return b
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, &Config{
		Host:     "https://pas.csc.fi",
		Timeout:  10 * time.Second,
		ResumeDB: DefaultResumeDBPath(),
	})
	return b
}

// Load assembles the effective configuration for one invocation. flagCfg
// holds values bound by [RegisterFlags] (may be nil). Precedence, highest
// first: flags, environment, configuration file, built-in defaults.
func Load(flagCfg *Config) (*Config, error) {
	return newConfigBuilder().
		withFlags(flagCfg).
		withEnv().
		withFile().
		withDefaults().
		build()
}
