// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the settings of a pipereport run, populated from flags,
// PIPEREPORT_ environment variables and an optional config file.
type Config struct {
	// the directories holding the pipeline input and output FASTA files
	PreDir  string `mapstructure:"pre-dir" validate:"required,dir"`
	PostDir string `mapstructure:"post-dir" validate:"required,dir"`

	// the directory holding the functional filter reports
	FilterDir string `mapstructure:"filter-dir" validate:"required,dir"`

	// where output is written; created if absent
	OutDir string `mapstructure:"out-dir" validate:"required"`

	RunName         string `mapstructure:"run-name"`
	RunDate         string `mapstructure:"run-date"`
	PipelineVersion string `mapstructure:"pipeline-version"`
	CommitHash      string `mapstructure:"pipeline-commit-hash"`
	NextflowParams  string `mapstructure:"nextflow-params" validate:"omitempty,file"`

	// plot output
	ImageFormat string `mapstructure:"image-format" validate:"oneof=png svg jpg"`
	MSADir      string `mapstructure:"msa-dir" validate:"omitempty,dir"`
	MSAColumns  int    `mapstructure:"msa-columns" validate:"gte=0"`

	// the number of files read concurrently, zero for GOMAXPROCS
	Parallel int `mapstructure:"parallel" validate:"gte=0"`

	IncludeRecords bool `mapstructure:"include-records"`
	Workbook       bool `mapstructure:"workbook"`

	// typeset the report with an external typst binary
	Compile bool   `mapstructure:"compile"`
	Typst   string `mapstructure:"typst"`

	Debug bool `mapstructure:"debug"`
}

var validate = validator.New()

// newConfig returns the Config held by v after validation.
func newConfig(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := validate.Struct(c); err != nil {
		return c, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

var runDateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"}

// runDate returns the parsed run date of c, or the zero time if it is
// unset.
func (c Config) runDate() (time.Time, error) {
	if c.RunDate == "" {
		return time.Time{}, nil
	}
	for _, layout := range runDateLayouts {
		if t, err := time.Parse(layout, c.RunDate); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised run date %q", c.RunDate)
}

// newViper returns a viper instance reading PIPEREPORT_ environment
// variables and, if path is not empty, the config file at path.
func newViper(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("pipereport")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("image-format", "png")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return v, nil
}

// newLogger returns a console logger writing to stderr.
func newLogger(debug bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = true
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}
