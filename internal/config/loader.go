package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	kenv "github.com/knadh/koanf/providers/env"
	kfile "github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	moderr "github.com/lizzyg/envparse/errors"
	"github.com/lizzyg/envparse/internal/output"
)

const (
	// DefaultPath is read when ENVPARSE_CONFIG_PATH is unset. It may be absent.
	DefaultPath = "envparse.yaml"
	PathEnv     = "ENVPARSE_CONFIG_PATH"
	EnvPrefix   = "ENVPARSE__"
)

// Config is the root config structure of the envparse command.
type Config struct {
	Format   string      `koanf:"format" json:"format" jsonschema:"enum=env,enum=json,enum=yaml,default=env"`
	LogLevel string      `koanf:"log_level" json:"log_level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,default=warn"`
	Files    []string    `koanf:"files" json:"files,omitempty" jsonschema:"description=Inputs used when no file arguments are given"`
	Watch    WatchConfig `koanf:"watch" json:"watch"`
	Lint     LintConfig  `koanf:"lint" json:"lint"`
	Run      RunConfig   `koanf:"run" json:"run"`
}

// WatchConfig tunes the watch command.
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce" json:"debounce" jsonschema:"type=string,description=Quiet period before re-reading a changed file"`
}

// LintConfig tunes the lint command.
type LintConfig struct {
	Godotenv bool `koanf:"godotenv" json:"godotenv" jsonschema:"description=Also report lines godotenv would read differently"`
}

// RunConfig tunes the run command.
type RunConfig struct {
	Overwrite bool `koanf:"overwrite" json:"overwrite" jsonschema:"description=Let file values replace variables already in the environment"`
}

// Default returns the settings used for anything the sources leave unset.
func Default() Config {
	return Config{
		Format:   "env",
		LogLevel: "warn",
		Watch:    WatchConfig{Debounce: 250 * time.Millisecond},
		Lint:     LintConfig{Godotenv: true},
	}
}

var (
	loadOnce sync.Once
	loaded   *Config
	loadErr  error
)

// Load loads configuration from path or default locations. Load is safe for repeated calls.
//
// Priority:
// 1. ENVPARSE__ environment variables (ENVPARSE__WATCH__DEBOUNCE=1s)
// 2. ENVPARSE_CONFIG_PATH if set, else ./envparse.yaml when present
// 3. Default()
func Load() (*Config, error) {
	loadOnce.Do(func() {
		loaded, loadErr = load()
	})
	return loaded, loadErr
}

func load() (*Config, error) {
	k := koanf.New(".")

	path := os.Getenv(PathEnv)
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err == nil || explicit {
		if err := k.Load(kfile.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	// Double underscore splits levels.
	if err := k.Load(kenv.Provider(EnvPrefix, "__", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	resolveEnvVars(&cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the command cannot act on.
func Validate(cfg Config) error {
	if !slices.Contains(output.Formats, cfg.Format) {
		return fmt.Errorf("%w: %q", moderr.ErrUnknownFormat, cfg.Format)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", cfg.Watch.Debounce)
	}
	return nil
}

// ParseLevel maps a log_level value onto a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// resolveEnvVars resolves ${VAR} patterns in file paths
func resolveEnvVars(cfg *Config) {
	for i, f := range cfg.Files {
		cfg.Files[i] = resolveEnvString(f)
	}
}

// resolveEnvString replaces ${VAR} with environment variable values.
// References to unset variables are left as written.
func resolveEnvString(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1] // Remove ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match
	})
}
