// Package config resolves crony's settings from defaults, a YAML config file,
// CRONY_* environment variables and command line flags, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable crony reads.
const EnvPrefix = "CRONY"

// Keys shared by flags, the config file and the environment.
const (
	KeyBegin           = "begin"
	KeyEnd             = "end"
	KeyFile            = "file"
	KeyUser            = "user"
	KeyIncludeDisabled = "include-disabled"
	KeyExcludeHeader   = "exclude-header"
	KeyOnlyCommand     = "only-command"
	KeyDetail          = "detail"
	KeyDetailLevel     = "detail-level"
	KeyVerbose         = "verbose"
	KeyOutput          = "output"
)

// Detail levels, from least to most output.
var DetailLevels = []string{"none", "count", "full"}

// Output formats.
var Outputs = []string{"text", "yaml", "json"}

// ErrUsage marks configuration mistakes the user has to fix on the command
// line or in the config file.
var ErrUsage = errors.New("usage error")

// Config is the resolved configuration of one crony run.
type Config struct {
	Begin           string
	End             string
	File            string
	User            string
	IncludeDisabled bool
	ExcludeHeader   bool
	OnlyCommand     bool
	// DetailLevel is one of DetailLevels.
	DetailLevel string
	Verbosity   int
	// Output is one of Outputs.
	Output string
	// ConfigFile is the config file that was read, if any.
	ConfigFile string
}

// New returns a viper instance with crony's defaults and environment
// binding. Flags are bound separately with BindFlags.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyBegin, "now")
	v.SetDefault(KeyEnd, "now")
	v.SetDefault(KeyDetail, 0)
	v.SetDefault(KeyDetailLevel, "")
	v.SetDefault(KeyVerbose, 0)
	v.SetDefault(KeyOutput, "text")
	return v
}

// BindFlags makes every flag in fs visible to v under its own name.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	return v.BindPFlags(fs)
}

// SearchPaths lists the config files tried, in order, when no --config flag
// is given.
func SearchPaths() []string {
	paths := []string{"crony.yaml"}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			configHome = filepath.Join(home, ".config")
		}
	}
	if configHome != "" {
		paths = append(paths, filepath.Join(configHome, "crony", "crony.yaml"))
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".crony.yaml"))
	}
	return paths
}

// ReadFile loads the config file at path into v. With an empty path the
// first existing file of SearchPaths is used, and having none is fine.
// It returns the file read, or "" if none.
func ReadFile(v *viper.Viper, path string) (string, error) {
	if path == "" {
		for _, candidate := range SearchPaths() {
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				path = candidate
				break
			}
		}
		if path == "" {
			return "", nil
		}
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("reading config file %s: %w", path, err)
	}
	return v.ConfigFileUsed(), nil
}

// Load resolves and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Begin:           v.GetString(KeyBegin),
		End:             v.GetString(KeyEnd),
		File:            v.GetString(KeyFile),
		User:            v.GetString(KeyUser),
		IncludeDisabled: v.GetBool(KeyIncludeDisabled),
		ExcludeHeader:   v.GetBool(KeyExcludeHeader),
		OnlyCommand:     v.GetBool(KeyOnlyCommand),
		Verbosity:       v.GetInt(KeyVerbose),
		Output:          strings.ToLower(v.GetString(KeyOutput)),
		ConfigFile:      v.ConfigFileUsed(),
	}

	if cfg.File != "" && cfg.User != "" {
		return nil, fmt.Errorf("%w: --file and --user are mutually exclusive", ErrUsage)
	}

	level, err := detailLevel(v.GetString(KeyDetailLevel), v.GetInt(KeyDetail))
	if err != nil {
		return nil, err
	}
	cfg.DetailLevel = level

	if !slices.Contains(Outputs, cfg.Output) {
		return nil, fmt.Errorf("%w: unknown output %q, want one of %s",
			ErrUsage, cfg.Output, strings.Join(Outputs, ", "))
	}
	if cfg.Verbosity < 0 {
		cfg.Verbosity = 0
	}
	return cfg, nil
}

// detailLevel picks the explicit level name if there is one, else maps the
// -d count onto DetailLevels, saturating at the highest.
func detailLevel(name string, count int) (string, error) {
	if name != "" {
		name = strings.ToLower(name)
		if !slices.Contains(DetailLevels, name) {
			return "", fmt.Errorf("%w: unknown detail level %q, want one of %s",
				ErrUsage, name, strings.Join(DetailLevels, ", "))
		}
		return name, nil
	}
	switch {
	case count <= 0:
		return DetailLevels[0], nil
	case count >= len(DetailLevels):
		return DetailLevels[len(DetailLevels)-1], nil
	default:
		return DetailLevels[count], nil
	}
}
