//
// Copyright (C) 2022 Charles E. Vejnar
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://www.mozilla.org/MPL/2.0/.
//

// Package config holds the junction annotation settings, unmarshalled from
// Viper (command line flags, config file and CHIMERA_* environment variables).
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	KeyExtend       = "extend"
	KeyAllowSingle  = "allow-single"
	KeyIncludeEdges = "include-edge-boundaries"
	KeyNumWorker    = "num-worker"

	EnvPrefix = "CHIMERA"
)

// Config is the annotation configuration.
type Config struct {
	// radius around exon boundaries still matching the boundary
	Extend int `mapstructure:"extend"`

	// report junctions anchored on a single exon boundary
	AllowSingle bool `mapstructure:"allow-single"`

	// use transcript first start and last end as boundaries
	IncludeEdges bool `mapstructure:"include-edge-boundaries"`

	// number of classification workers
	NumWorker int `mapstructure:"num-worker"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{Extend: 30, NumWorker: 1}
}

// NewViper returns a Viper instance with defaults and environment binding.
// If path is not empty, the config file is read.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	d := Default()
	v.SetDefault(KeyExtend, d.Extend)
	v.SetDefault(KeyAllowSingle, d.AllowSingle)
	v.SetDefault(KeyIncludeEdges, d.IncludeEdges)
	v.SetDefault(KeyNumWorker, d.NumWorker)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config %s", path)
		}
	}
	return v, nil
}

// New decodes and validates the configuration held by v.
func New(v *viper.Viper) (c Config, err error) {
	if err = v.Unmarshal(&c); err != nil {
		return c, errors.Wrap(err, "unable to decode config")
	}
	return c, c.Validate()
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if c.Extend < 0 {
		return errors.Errorf("extend must be positive or zero, got %d", c.Extend)
	}
	if c.NumWorker < 1 {
		return errors.Errorf("num-worker must be at least 1, got %d", c.NumWorker)
	}
	return nil
}
