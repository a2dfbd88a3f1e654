package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigWritesDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")

	v, err := loadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", v.GetString(cfgKeyBackend))
	assert.Equal(t, defaultLogLevel, v.GetString(cfgKeyLogLevel))
	assert.Empty(t, v.GetString(cfgKeyDataDir))
	assert.FileExists(t, filepath.Join(dir, configFileExt))
}

func TestLoadConfigReadsFile(t *testing.T) {
	dir := t.TempDir()
	content := "backend: sqlite\ndata_dir: /srv/phonebook\nlog_level: debug\nlog_file: /var/log/phonebook.log\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileExt), []byte(content), 0o644))

	v, err := loadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "/srv/phonebook", v.GetString(cfgKeyDataDir))
	assert.Equal(t, "debug", v.GetString(cfgKeyLogLevel))
	assert.Equal(t, "/var/log/phonebook.log", v.GetString(cfgKeyLogFile))
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PHONEBOOK_LOG_LEVEL", "error")

	v, err := loadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "error", v.GetString(cfgKeyLogLevel))
}

func TestLoadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileExt), []byte("backend: [unclosed\n"), 0o644))

	_, err := loadConfig(dir)
	assert.Error(t, err)
}
