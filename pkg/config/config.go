package config

import (
	"os"
	"runtime"

	"github.com/arthur-debert/portico/pkg/errors"
	"github.com/arthur-debert/portico/pkg/logging"
	"github.com/arthur-debert/portico/pkg/paths"
	toml "github.com/pelletier/go-toml/v2"
)

var log = logging.GetLogger("config")

// Config represents tool configuration options from portico.toml
type Config struct {
	// DefaultTriplet is used for package specs that omit a triplet
	DefaultTriplet string `toml:"default_triplet"`

	// OutputDir is where export artifacts are written. Empty means the
	// portico root.
	OutputDir string `toml:"output_dir"`

	// Tools names the external executables invoked during packaging
	Tools ToolsConfig `toml:"tools"`
}

// ToolsConfig names the external tools used by the format packagers
type ToolsConfig struct {
	CMake         string `toml:"cmake"`
	Nuget         string `toml:"nuget"`
	BinaryCreator string `toml:"binarycreator"`
	RepositoryGen string `toml:"repogen"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		DefaultTriplet: defaultTriplet(),
		Tools: ToolsConfig{
			CMake:         "cmake",
			Nuget:         "nuget",
			BinaryCreator: "binarycreator",
			RepositoryGen: "repogen",
		},
	}
}

// Load reads portico.toml from the given path and merges it over the
// defaults. A missing file is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		log.Debug().Str("path", path).Msg("No config file found, using defaults")
	case err != nil:
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read config file %s", path)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config file %s", path)
		}
	}

	applyEnvOverrides(cfg)
	fillDefaults(cfg)

	log.Debug().Str("path", path).Str("default_triplet", cfg.DefaultTriplet).Msg("Loaded config")
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if triplet := os.Getenv(paths.EnvDefaultTriplet); triplet != "" {
		cfg.DefaultTriplet = triplet
	}
}

func fillDefaults(cfg *Config) {
	if cfg.DefaultTriplet == "" {
		cfg.DefaultTriplet = defaultTriplet()
	}
	if cfg.Tools.CMake == "" {
		cfg.Tools.CMake = "cmake"
	}
	if cfg.Tools.Nuget == "" {
		cfg.Tools.Nuget = "nuget"
	}
	if cfg.Tools.BinaryCreator == "" {
		cfg.Tools.BinaryCreator = "binarycreator"
	}
	if cfg.Tools.RepositoryGen == "" {
		cfg.Tools.RepositoryGen = "repogen"
	}
}

// defaultTriplet picks a triplet matching the host platform.
func defaultTriplet() string {
	switch runtime.GOOS {
	case "windows":
		return "x86-windows"
	case "darwin":
		return "x64-osx"
	default:
		return "x64-linux"
	}
}
