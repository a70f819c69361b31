package main_test

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rgpio "github.com/jibbex/rgpio"
	"github.com/jibbex/rgpio/gpio"
)

func newTestConfig(t *testing.T, flags rgpio.Flags, env map[string]string, toml string) *rgpio.Config {
	t.Helper()

	fs := rgpio.NewRgpioMemFS()
	if toml != "" {
		if flags.ConfigPath == "" {
			flags.ConfigPath = "/rgpio.toml"
		}
		require.NoError(t, afero.WriteFile(fs, flags.ConfigPath, []byte(toml), 0644))
	}

	c, err := rgpio.NewConfig(fs, flags, func(s string) string { return env[s] })
	require.NoError(t, err)

	return c
}

func TestConfigDefaults(t *testing.T) {
	c := newTestConfig(t, rgpio.Flags{}, nil, "")

	assert.Equal(t, gpio.SysfsRoot, c.SysfsRoot())
	assert.Equal(t, 500*time.Millisecond, c.Hold())
	assert.Equal(t, "127.0.0.1:3538", c.ListenAddress())
	assert.False(t, c.Simulate())
}

func TestConfigFile(t *testing.T) {
	c := newTestConfig(t, rgpio.Flags{}, nil, `
sysfs_root = "/tmp/fakegpio"
hold_ms = 50
listen_host = "0.0.0.0"
listen_port = "8080"
simulate = true
`)

	assert.Equal(t, "/tmp/fakegpio", c.SysfsRoot())
	assert.Equal(t, 50*time.Millisecond, c.Hold())
	assert.Equal(t, "0.0.0.0:8080", c.ListenAddress())
	assert.True(t, c.Simulate())
}

func TestConfigEnvOverridesFile(t *testing.T) {
	c := newTestConfig(t,
		rgpio.Flags{},
		map[string]string{
			"HOST": "10.0.0.1",
			"PORT": "9999",
		},
		`
listen_host = "0.0.0.0"
listen_port = "8080"
`)

	assert.Equal(t, "10.0.0.1:9999", c.ListenAddress())
}

func TestConfigFlagsOverrideFile(t *testing.T) {
	c := newTestConfig(t, rgpio.Flags{Hold: 2 * time.Second, Simulate: true}, nil, `hold_ms = 50`)

	assert.Equal(t, 2*time.Second, c.Hold())
	assert.True(t, c.Simulate())
}

func TestConfigEnvNamesFile(t *testing.T) {
	fs := rgpio.NewRgpioMemFS()
	require.NoError(t, afero.WriteFile(fs, "/opt/rgpio.toml", []byte(`hold_ms = 25`), 0644))

	c, err := rgpio.NewConfig(fs, rgpio.Flags{}, func(s string) string {
		if s == "RGPIO_CONFIG" {
			return "/opt/rgpio.toml"
		}
		return ""
	})
	require.NoError(t, err)

	assert.Equal(t, 25*time.Millisecond, c.Hold())
}

func TestConfigHomeDirLookup(t *testing.T) {
	fs := rgpio.NewRgpioMemFS()
	require.NoError(t, afero.WriteFile(fs, "/.config/rgpio.toml", []byte(`hold_ms = 75`), 0644))

	c, err := rgpio.NewConfig(fs, rgpio.Flags{}, func(string) string { return "" })
	require.NoError(t, err)

	assert.Equal(t, 75*time.Millisecond, c.Hold())
}

func TestConfigExplicitPathMissing(t *testing.T) {
	fs := rgpio.NewRgpioMemFS()

	_, err := rgpio.NewConfig(fs, rgpio.Flags{ConfigPath: "/nope.toml"}, func(string) string { return "" })

	assert.Error(t, err)
}

func TestConfigBadToml(t *testing.T) {
	fs := rgpio.NewRgpioMemFS()
	require.NoError(t, afero.WriteFile(fs, "/rgpio.toml", []byte(`hold_ms = = 50`), 0644))

	_, err := rgpio.NewConfig(fs, rgpio.Flags{ConfigPath: "/rgpio.toml"}, func(string) string { return "" })

	assert.Error(t, err)
}
