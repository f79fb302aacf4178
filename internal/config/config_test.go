package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeybbq/uciconfig/pkg/ucierr"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	cfg, path, err := Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, log.WarnLevel, cfg.LogLevel())
}

func TestLoadFromDirectory(t *testing.T) {
	dir := t.TempDir()
	content := "[sort]\nsection = \"domain\"\noption = \"ip\"\n\n[log]\nlevel = \"debug\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644))

	cfg, path, err := Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), path)
	assert.Equal(t, "domain", cfg.Sort.Section)
	assert.True(t, cfg.Sort.Enabled)
	assert.Equal(t, ".new", cfg.Output.Suffix)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
}

func TestLoadExplicitFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(file, []byte("[output]\nsuffix = \".sorted\"\n[parse]\nstrict = true\n"), 0o644))

	cfg, path, err := Load(context.Background(), LoadOptions{ConfigFilePath: file})
	require.NoError(t, err)
	assert.Equal(t, file, path)
	assert.Equal(t, ".sorted", cfg.Output.Suffix)
	assert.True(t, cfg.Parse.Strict)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, _, err := Load(context.Background(), LoadOptions{ConfigFilePath: filepath.Join(t.TempDir(), "nope.toml")})
	require.Error(t, err)
	assert.True(t, ucierr.Is(err, ucierr.KindIO))
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("UCICONFIG_SORT_OPTION", "mac")
	cfg, _, err := Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "mac", cfg.Sort.Option)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[log]\nlevel = \"loud\"\n"), 0o644))

	_, _, err := Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	require.Error(t, err)
	assert.True(t, ucierr.Is(err, ucierr.KindValidation))
}

func TestLoadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Load(ctx, LoadOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", AppName), dir)
}
