package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is auto-discovered in the working directory when no
// -config flag is given
const DefaultConfigFile = "wdkres.toml"

// Config represents the helper configuration
type Config struct {
	Manifest   ManifestConfig   `toml:"manifest" yaml:"manifest"`
	Metadata   MetadataConfig   `toml:"metadata" yaml:"metadata"`
	Descriptor DescriptorConfig `toml:"descriptor" yaml:"descriptor"`
	Compiler   CompilerConfig   `toml:"compiler" yaml:"compiler"`
	Logging    LoggingConfig    `toml:"logging" yaml:"logging"`
}

// ManifestConfig locates the package manifest read line by line for version and description
type ManifestConfig struct {
	Path string `toml:"path" yaml:"path" validate:"required"` // default: "Cargo.toml"
}

// MetadataConfig controls the package-manager metadata query
type MetadataConfig struct {
	Command      []string `toml:"command" yaml:"command" validate:"min=1,dive,required"` // e.g. ["cargo", "metadata", "--format-version", "1"]
	Section      string   `toml:"section" yaml:"section" validate:"required"`            // metadata.<section>.* holds companyname/copyright/productname
	Package      string   `toml:"package" yaml:"package"`                                // Explicit package name; empty = manifest [package] name
	PackageIndex int      `toml:"package_index" yaml:"package_index" validate:"gte=0"`   // Positional fallback when no package name is known
}

// DescriptorConfig controls the generated resource descriptor
type DescriptorConfig struct {
	Path             string `toml:"path" yaml:"path" validate:"required"`
	FileType         string `toml:"file_type" yaml:"file_type" validate:"required"`
	FileSubtype      string `toml:"file_subtype" yaml:"file_subtype" validate:"required"`
	InternalName     string `toml:"internal_name" yaml:"internal_name" validate:"required"`
	OriginalFilename string `toml:"original_filename" yaml:"original_filename" validate:"required"`
	CommonHeader     string `toml:"common_header" yaml:"common_header" validate:"required"`
}

// CompilerConfig locates the external resource compiler
type CompilerConfig struct {
	EnvVar      string `toml:"env_var" yaml:"env_var" validate:"required"`           // Environment override, default PATH_TO_RC
	DefaultPath string `toml:"default_path" yaml:"default_path" validate:"required"` // Used when EnvVar is unset
}

type LoggingConfig struct {
	Level      string   `toml:"level" yaml:"level" validate:"oneof=trace debug info warn error"`
	Output     []string `toml:"output" yaml:"output" validate:"dive,oneof=console stdout file"`
	File       string   `toml:"file" yaml:"file"`               // Used when output contains "file"
	TimeFormat string   `toml:"time_format" yaml:"time_format"` // default: "15:04:05"
}

// NewDefaultConfig creates a configuration with default values
func NewDefaultConfig() *Config {
	return &Config{
		Manifest: ManifestConfig{
			Path: "Cargo.toml",
		},
		Metadata: MetadataConfig{
			Command:      []string{"cargo", "metadata", "--format-version", "1"},
			Section:      "wdk",
			PackageIndex: 1,
		},
		Descriptor: DescriptorConfig{
			Path:             "resources.rc",
			FileType:         "VFT_DRV",
			FileSubtype:      "VFT2_DRV_SYSTEM",
			InternalName:     "SurfaceButton.sys",
			OriginalFilename: "VER_INTERNALNAME_STR",
			CommonHeader:     "common.ver",
		},
		Compiler: CompilerConfig{
			EnvVar:      "PATH_TO_RC",
			DefaultPath: "rc.exe",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Output:     []string{"console"},
			File:       filepath.Join("logs", "wdkres.log"),
			TimeFormat: "15:04:05",
		},
	}
}

// DiscoverConfigFiles returns DefaultConfigFile when it exists in dir
func DiscoverConfigFiles(dir string) []string {
	path := filepath.Join(dir, DefaultConfigFile)
	if _, err := os.Stat(path); err == nil {
		return []string{path}
	}
	return nil
}

// LoadFromFiles loads configuration with priority: default -> file1 -> file2 -> ... -> env
// Later files override earlier files. CLI flags are applied afterwards by ApplyFlagOverrides.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := decodeConfig(path, data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

func decodeConfig(path string, data []byte, config *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, config)
	default:
		return toml.Unmarshal(data, config)
	}
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if manifest := os.Getenv("WDKRES_MANIFEST"); manifest != "" {
		config.Manifest.Path = manifest
	}
	if descriptor := os.Getenv("WDKRES_DESCRIPTOR"); descriptor != "" {
		config.Descriptor.Path = descriptor
	}
	if compiler := os.Getenv("WDKRES_COMPILER_DEFAULT"); compiler != "" {
		config.Compiler.DefaultPath = compiler
	}
	if pkg := os.Getenv("WDKRES_METADATA_PACKAGE"); pkg != "" {
		config.Metadata.Package = pkg
	}
	if idx := os.Getenv("WDKRES_METADATA_PACKAGE_INDEX"); idx != "" {
		if i, err := strconv.Atoi(idx); err == nil {
			config.Metadata.PackageIndex = i
		}
	}
	if level := os.Getenv("WDKRES_LOG_LEVEL"); level != "" {
		config.Logging.Level = strings.ToLower(level)
	}
}

// FlagOverrides carries command-line values that take precedence over config
type FlagOverrides struct {
	Manifest   string
	Descriptor string
	LogLevel   string
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, flags FlagOverrides) {
	if flags.Manifest != "" {
		config.Manifest.Path = flags.Manifest
	}
	if flags.Descriptor != "" {
		config.Descriptor.Path = flags.Descriptor
	}
	if flags.LogLevel != "" {
		config.Logging.Level = strings.ToLower(flags.LogLevel)
	}
}

// Validate checks struct constraints on the resolved configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
