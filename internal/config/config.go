// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/jessevdk/go-flags"
)

const (
	DefaultLogLevel    = "info"
	DefaultAddress     = "127.0.0.1:8080"
	DefaultWaitTimeout = 10 * time.Second

	logLevelEnv = "LOG_LEVEL"
)

var ErrInvalidWaitTimeout = errors.New("wait timeout must be positive")

// Options are the command line options. Empty values are filled from the
// environment, then the config file, then defaults.
type Options struct {
	LogLevel    string        `long:"log-level" description:"Log level (default: info). Can also be set via LOG_LEVEL env."`
	Address     string        `long:"address" description:"Address to accept trigger requests on (default: 127.0.0.1:8080)."`
	WaitTimeout time.Duration `long:"wait-timeout" description:"How long a participant waits for its counterpart (default: 10s)."`
	ConfigFile  string        `long:"config" description:"Path to a TOML config file."`
	NoMetrics   bool          `long:"no-metrics" description:"Do not expose /metrics."`
}

// File is the TOML config file layout.
type File struct {
	LogLevel    string `toml:"log_level"`
	Address     string `toml:"address"`
	WaitTimeout string `toml:"wait_timeout"`
	Metrics     *bool  `toml:"metrics"`
}

// Config is the resolved configuration.
type Config struct {
	LogLevel    string
	Address     netip.AddrPort
	WaitTimeout time.Duration
	Metrics     bool
}

func ParseCLIArgs(args []string) (Options, []string, error) {
	var opts Options
	parser := flags.NewParser(&opts, flags.IgnoreUnknown)
	args, err := parser.ParseArgs(args)
	return opts, args, err
}

// LoadFile decodes the TOML file at path.
func LoadFile(path string) (File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return File{}, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	return f, nil
}

// Load parses args and resolves them against LOG_LEVEL, the optional config
// file and defaults, in that order.
func Load(args []string) (Config, error) {
	opts, _, err := ParseCLIArgs(args)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse command line arguments: %w", err)
	}

	var file File
	if opts.ConfigFile != "" {
		if file, err = LoadFile(opts.ConfigFile); err != nil {
			return Config{}, err
		}
	}

	return Resolve(opts, file)
}

func Resolve(opts Options, file File) (Config, error) {
	cfg := Config{
		LogLevel: firstNonEmpty(opts.LogLevel, os.Getenv(logLevelEnv), file.LogLevel, DefaultLogLevel),
		Metrics:  true,
	}

	if file.Metrics != nil {
		cfg.Metrics = *file.Metrics
	}
	if opts.NoMetrics {
		cfg.Metrics = false
	}

	addr, err := ParseAddr(firstNonEmpty(opts.Address, file.Address), DefaultAddress)
	if err != nil {
		return Config{}, fmt.Errorf("invalid address: %w", err)
	}
	cfg.Address = addr

	cfg.WaitTimeout = opts.WaitTimeout
	if cfg.WaitTimeout == 0 && file.WaitTimeout != "" {
		if cfg.WaitTimeout, err = time.ParseDuration(file.WaitTimeout); err != nil {
			return Config{}, fmt.Errorf("invalid wait_timeout: %w", err)
		}
	}
	if cfg.WaitTimeout == 0 {
		cfg.WaitTimeout = DefaultWaitTimeout
	}
	if cfg.WaitTimeout < 0 {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidWaitTimeout, cfg.WaitTimeout)
	}

	return cfg, nil
}

func ParseAddr(addrStr, defaultAddr string) (netip.AddrPort, error) {
	if addrStr == "" {
		addrStr = defaultAddr
	}

	host, portStr, err := net.SplitHostPort(addrStr)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("invalid address: %w", err)
	}

	port, err := net.LookupPort("tcp", portStr)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("invalid port: %w", err)
	}

	ip, err := netip.ParseAddr(host)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("invalid IP: %w", err)
	}

	return netip.AddrPortFrom(ip, uint16(port)), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
