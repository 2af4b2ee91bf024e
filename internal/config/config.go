// Package config provides configuration loading for the ndarray command.
//
// Configuration is loaded from a single file specified by:
//   - the --config flag passed to the command, or
//   - the NDARRAY_CONFIG environment variable.
//
// There is no automatic discovery. Without either, the built-in defaults
// apply: little-endian, row-major output that keeps the source element type,
// stored (uncompressed) archives, and info-level logging.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/ndarray/internal/npy"
	"github.com/born-ml/ndarray/internal/tensor"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "NDARRAY_CONFIG"

// Config is the configuration of the ndarray command.
type Config struct {
	// Write configures how arrays are encoded.
	Write WriteConfig `yaml:"write"`

	// Archive configures .npz output.
	Archive ArchiveConfig `yaml:"archive"`

	// Log configures diagnostic output.
	Log LogConfig `yaml:"log"`
}

// WriteConfig configures array encoding.
type WriteConfig struct {
	// DType is the on-disk element type ("f4", "<i8", "float64").
	// Empty keeps the element type of the source array.
	DType string `yaml:"dtype"`

	// ByteOrder is "little", "big" or "native".
	// Default: little
	ByteOrder string `yaml:"byte_order"`

	// FortranOrder writes elements in column-major order.
	// Default: false
	FortranOrder bool `yaml:"fortran_order"`
}

// ArchiveConfig configures .npz archives.
type ArchiveConfig struct {
	// Compression is "stored", "deflate" or "zstd".
	// Default: stored
	Compression string `yaml:"compression"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is "debug", "info", "warn" or "error".
	// Default: info
	Level string `yaml:"level"`

	// Format is "text" or "json".
	// Default: text
	Format string `yaml:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Write: WriteConfig{
			ByteOrder: "little",
		},
		Archive: ArchiveConfig{
			Compression: "stored",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads the file named by path, or by NDARRAY_CONFIG when path is empty.
// With neither set it returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads and validates configuration from a specific file path.
// Fields missing from the file keep their default values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	//nolint:gosec // G304: Config path comes from the command line or environment
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Write.DType != "" {
		if _, err := npy.ParseDType(c.Write.DType); err != nil {
			errs = append(errs, fmt.Errorf("write.dtype: %w", err))
		}
	}
	if _, err := npy.ParseByteOrder(c.Write.ByteOrder); err != nil {
		errs = append(errs, fmt.Errorf("write.byte_order: %w", err))
	}
	if _, err := npy.ParseCompression(c.Archive.Compression); err != nil {
		errs = append(errs, fmt.Errorf("archive.compression: %w", err))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format: must be text or json, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// WriteOptions converts the write settings into encoder options.
func (c *Config) WriteOptions() ([]npy.Option, error) {
	bo, err := npy.ParseByteOrder(c.Write.ByteOrder)
	if err != nil {
		return nil, err
	}
	opts := []npy.Option{npy.WithByteOrder(bo)}
	if c.Write.FortranOrder {
		opts = append(opts, npy.WithOrder(tensor.ColumnMajor))
	}
	if c.Write.DType != "" {
		dt, err := npy.ParseDType(c.Write.DType)
		if err != nil {
			return nil, err
		}
		opts = append(opts, npy.WithDType(dt))
	}
	return opts, nil
}

// Compression returns the archive compression.
func (c *Config) Compression() (npy.Compression, error) {
	return npy.ParseCompression(c.Archive.Compression)
}

// Logger builds the slog logger described by the log settings.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("unknown level %q", s)
	}
	return level, nil
}
