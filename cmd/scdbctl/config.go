// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"
)

const (
	defaultConfigFilename = "scdbctl.conf"
	defaultLogLevel       = "info"
)

// config defines the configuration options for scdbctl.
//
// See loadConfig for details on the configuration load process.
type config struct {
	ConfigFile string `short:"C" long:"configfile" description:"Path to configuration file"`
	DataDir    string `short:"b" long:"datadir" description:"Directory to store data"`
	Fixture    string `short:"f" long:"fixture" description:"Path to a JSON block fixture to replay through SCDB" required:"true"`
	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical}"`
	Quiet      bool   `short:"q" long:"quiet" description:"Suppress the per-block ToString() dump, printing only the final hashes"`
}

// scdbctlHomeDir returns the default application data directory, following
// the same $HOME/.appname convention the teacher's own node binaries use.
func scdbctlHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".scdbctl"
	}
	return filepath.Join(home, ".scdbctl")
}

// defaultConfig returns a config populated with scdbctl's default values.
func defaultConfig() config {
	homeDir := scdbctlHomeDir()
	return config{
		ConfigFile: filepath.Join(homeDir, defaultConfigFilename),
		DataDir:    homeDir,
		DebugLevel: defaultLogLevel,
	}
}

// loadConfig initializes and parses the config using a config file and
// command line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Parse the config file, if any, overriding defaults
//  4. Parse the command line, overriding everything set so far
func loadConfig() (*config, []string, error) {
	cfg := defaultConfig()

	preCfg := cfg
	preParser := flags.NewParser(&preCfg, flags.HelpFlag|flags.PassDoubleDash)
	_, err := preParser.Parse()
	if err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, nil, err
	}

	if preCfg.ConfigFile != "" {
		cfg.ConfigFile = preCfg.ConfigFile
	}

	if _, err := os.Stat(cfg.ConfigFile); err == nil {
		parser := flags.NewParser(&cfg, flags.HelpFlag|flags.PassDoubleDash)
		if err := flags.NewIniParser(parser).ParseFile(cfg.ConfigFile); err != nil {
			return nil, nil, fmt.Errorf("failed to parse config file %s: %w", cfg.ConfigFile, err)
		}
	}

	parser := flags.NewParser(&cfg, flags.Default)
	remainingArgs, err := parser.Parse()
	if err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, nil, err
	}

	if cfg.Fixture == "" {
		return nil, nil, fmt.Errorf("the -f/--fixture flag is required")
	}

	return &cfg, remainingArgs, nil
}
