package main

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/jibbex/rgpio/gpio"
)

const ConfigFileName = "rgpio.toml"

const (
	defaultHold = 500 * time.Millisecond
	defaultHost = "127.0.0.1"
	defaultPort = "3538"
)

// Flags are the command line values that feed into configuration.
type Flags struct {
	ConfigPath string
	Simulate   bool
	Hold       time.Duration
}

type configToml struct {
	SysfsRoot  string `toml:"sysfs_root"`
	HoldMillis int    `toml:"hold_ms"`
	ListenHost string `toml:"listen_host"`
	ListenPort string `toml:"listen_port"`
	Simulate   bool   `toml:"simulate"`
}

// Config resolves settings in order: flag, environment, config file,
// default.
type Config struct {
	toml   configToml
	flags  Flags
	getenv func(string) string
}

// NewConfig loads the config file from the first of: the -config flag,
// $RGPIO_CONFIG, ~/.config/rgpio.toml, /etc/rgpio.toml. No file found
// is not an error unless the path was given explicitly.
func NewConfig(fsys RgpioFS, flags Flags, getenv func(string) string) (*Config, error) {
	c := &Config{
		flags:  flags,
		getenv: getenv,
	}

	path, explicit, err := configFilePath(fsys, flags, getenv)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return c, nil
	}

	buf, err := afero.ReadFile(fsys, path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(buf, &c.toml); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return c, nil
}

// configFilePath picks which file to load. explicit means the caller
// named it (flag or env) and its absence should be an error.
func configFilePath(fsys RgpioFS, flags Flags, getenv func(string) string) (path string, explicit bool, err error) {
	if flags.ConfigPath != "" {
		abs, err := fsys.Abs(flags.ConfigPath)
		return abs, true, err
	}

	if env := getenv("RGPIO_CONFIG"); env != "" {
		return env, true, nil
	}

	home, err := fsys.HomeDir()
	if err == nil {
		candidate := filepath.Join(home, ".config", ConfigFileName)
		if ok, _ := afero.Exists(fsys, candidate); ok {
			return candidate, false, nil
		}
	}

	candidate := filepath.Join("/etc", ConfigFileName)
	if ok, _ := afero.Exists(fsys, candidate); ok {
		return candidate, false, nil
	}

	return "", false, nil
}

// SysfsRoot is the directory pin operations run against.
func (c *Config) SysfsRoot() string {
	if c.toml.SysfsRoot != "" {
		return c.toml.SysfsRoot
	}
	return gpio.SysfsRoot
}

// Hold is how long the toggle driver keeps each level asserted.
func (c *Config) Hold() time.Duration {
	if c.flags.Hold > 0 {
		return c.flags.Hold
	}
	if c.toml.HoldMillis > 0 {
		return time.Duration(c.toml.HoldMillis) * time.Millisecond
	}
	return defaultHold
}

// ListenAddress is the host:port the HTTP surface binds to.
func (c *Config) ListenAddress() string {
	host := c.getenv("HOST")
	if host == "" {
		host = c.toml.ListenHost
	}
	if host == "" {
		host = defaultHost
	}

	port := c.getenv("PORT")
	if port == "" {
		port = c.toml.ListenPort
	}
	if port == "" {
		port = defaultPort
	}

	return net.JoinHostPort(host, port)
}

// Simulate reports whether pin operations should run against the
// in-memory simulator instead of the host's sysfs tree.
func (c *Config) Simulate() bool {
	return c.flags.Simulate || c.toml.Simulate
}
