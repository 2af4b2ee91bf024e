package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/ndarray/internal/npy"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ndarray.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "little", cfg.Write.ByteOrder)
	assert.False(t, cfg.Write.FortranOrder)
	assert.Empty(t, cfg.Write.DType)

	c, err := cfg.Compression()
	require.NoError(t, err)
	assert.Equal(t, npy.CompressionStored, c)

	opts, err := cfg.WriteOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 1)
}

func TestLoad_NoConfig(t *testing.T) {
	t.Setenv(EnvVar, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FromEnvironment(t *testing.T) {
	path := writeConfig(t, `
write:
  dtype: f4
  byte_order: big
  fortran_order: true
archive:
  compression: zstd
log:
  level: debug
  format: json
`)
	t.Setenv(EnvVar, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "f4", cfg.Write.DType)
	assert.Equal(t, "big", cfg.Write.ByteOrder)
	assert.True(t, cfg.Write.FortranOrder)

	c, err := cfg.Compression()
	require.NoError(t, err)
	assert.Equal(t, npy.CompressionZstd, c)

	opts, err := cfg.WriteOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 3)
}

func TestLoad_FlagWinsOverEnvironment(t *testing.T) {
	t.Setenv(EnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	path := writeConfig(t, "archive:\n  compression: deflate\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "deflate", cfg.Archive.Compression)
	// Unset fields keep their defaults
	assert.Equal(t, "little", cfg.Write.ByteOrder)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadFile(writeConfig(t, "write: [not, a, map]\n"))
	assert.Error(t, err)

	_, err = LoadFile(writeConfig(t, "write:\n  dtype: f2\n  byte_order: sideways\nlog:\n  level: loud\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, npy.ErrUnsupportedDType)
	assert.Contains(t, err.Error(), "write.byte_order")
	assert.Contains(t, err.Error(), "log.level")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Archive.Compression = "lzma"
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "archive.compression")
	assert.Contains(t, err.Error(), "log.format")
}

func TestLogger(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "warn"

	var buf bytes.Buffer
	logger, err := cfg.Logger(&buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "file", "a.npy")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "file=a.npy")

	cfg.Log.Format = "json"
	buf.Reset()
	logger, err = cfg.Logger(&buf)
	require.NoError(t, err)
	logger.Error("failed")
	assert.Contains(t, buf.String(), `"msg":"failed"`)
}
