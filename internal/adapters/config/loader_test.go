package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/obslog/internal/adapters/config"
	"go.trai.ch/obslog/internal/core/domain"
	"go.trai.ch/obslog/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "obslog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoad_Success(t *testing.T) {
	path := writeConfig(t, `
version: "1"
document: logs/2024.xml
backup: false
indent: 4
recentLimit: 3
stateDir: /var/lib/obslog
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(filepath.Dir(path), "logs", "2024.xml"), cfg.Document)
	assert.False(t, cfg.Backup)
	assert.Equal(t, "    ", cfg.Indent)
	assert.Equal(t, 3, cfg.RecentLimit)
	assert.Equal(t, "/var/lib/obslog", cfg.StateDir)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `version: "1"`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	def := domain.DefaultConfig()
	assert.Equal(t, def.Backup, cfg.Backup)
	assert.Equal(t, def.Indent, cfg.Indent)
	assert.Equal(t, def.RecentLimit, cfg.RecentLimit)
	assert.Empty(t, cfg.Document)
}

func TestLoad_InvalidIndent(t *testing.T) {
	path := writeConfig(t, "indent: 12\n")

	_, err := config.Load(path)
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, 12, zErr.Metadata()["indent"])
}

func TestLoad_UnsupportedVersion(t *testing.T) {
	path := writeConfig(t, "version: \"2\"\nindent: 4\n")

	_, err := config.Load(path)
	require.ErrorIs(t, err, config.ErrUnsupportedVersion)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "2", zErr.Metadata()["version"])
	assert.Equal(t, path, zErr.Metadata()["path"])
}

func TestLoad_Malformed(t *testing.T) {
	path := writeConfig(t, "indent: [nope\n")

	_, err := config.Load(path)
	require.ErrorContains(t, err, "failed to parse config file")
}

func TestFileConfigLoader_MissingFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("no configuration file, using defaults", "path", gomock.Any()).Times(1)

	t.Setenv(config.EnvDocument, "/tmp/fallback.xml")

	loader := config.NewLoader(mockLogger)
	cfg, err := loader.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/fallback.xml", cfg.Document)
	assert.True(t, cfg.Backup)
}

func TestPath_Env(t *testing.T) {
	t.Setenv(config.EnvConfig, "/etc/obslog.yaml")
	assert.Equal(t, "/etc/obslog.yaml", config.Path())
}
