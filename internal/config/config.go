// SPDX-License-Identifier: MIT

// Package config resolves the uncertainty command's settings from, in
// increasing priority, built-in defaults, an uncertainty.yaml file,
// UNCERTAINTY_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/uncertainty/internal/logger"
	"github.com/katalvlaran/uncertainty/phase"
)

// EnvPrefix is prepended to every environment key, e.g. UNCERTAINTY_MODEL_DIR.
const EnvPrefix = "UNCERTAINTY"

// Keys understood by Load.
const (
	KeyModelDir    = "model_dir"
	KeyPhase       = "phase"
	KeyAttribute   = "attribute"
	KeyLogLevel    = "log.level"
	KeyLogEncoding = "log.encoding"
	KeyLogDev      = "log.development"
	KeyLogOutput   = "log.output"
)

// flagKeys maps command-line flag names onto configuration keys.
var flagKeys = map[string]string{
	"model-dir":    KeyModelDir,
	"phase":        KeyPhase,
	"attribute":    KeyAttribute,
	"log-level":    KeyLogLevel,
	"log-encoding": KeyLogEncoding,
	"log-dev":      KeyLogDev,
	"log-output":   KeyLogOutput,
}

// Config is the resolved configuration.
type Config struct {
	ModelDir  string    `mapstructure:"model_dir"`
	Phase     string    `mapstructure:"phase"`
	Attribute string    `mapstructure:"attribute"`
	Log       LogConfig `mapstructure:"log"`
}

// LogConfig holds the logger settings. Output lists zap sink paths
// ("stderr", "stdout" or files); empty means stderr.
type LogConfig struct {
	Level       string   `mapstructure:"level"`
	Encoding    string   `mapstructure:"encoding"`
	Development bool     `mapstructure:"development"`
	Output      []string `mapstructure:"output"`
}

// Logger converts the log section into a logger.Config.
func (c LogConfig) Logger() logger.Config {
	return logger.Config{
		Level:       c.Level,
		Encoding:    c.Encoding,
		Development: c.Development,
		OutputPaths: c.Output,
	}
}

// Selection parses the configured phase and attribute names.
func (c *Config) Selection() (phase.Phase, phase.Attribute, error) {
	p, err := phase.ParsePhase(c.Phase)
	if err != nil {
		return phase.NoPhase, phase.NoAttribute, err
	}
	a, err := phase.ParseAttribute(c.Attribute)
	if err != nil {
		return phase.NoPhase, phase.NoAttribute, err
	}

	return p, a, nil
}

// RegisterFlags adds the configuration flags to fs. Defaults are left empty
// so that an unset flag never hides a file or environment value.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("model-dir", "", "directory holding Uncertainty_<phase>_<attr>.txt tables")
	fs.String("phase", "", "phase name (Pn, Sn, Pg, Lg)")
	fs.String("attribute", "", "attribute name (TT, SH, AZ)")
	fs.String("log-level", "", "log level (debug, info, warn, error)")
	fs.String("log-encoding", "", "log encoding (console, json)")
	fs.Bool("log-dev", false, "development logging: colored levels, stack traces on errors")
	fs.StringSlice("log-output", nil, "log sinks: stderr, stdout or file paths (comma separated)")
}

// Load resolves the configuration. file names an explicit config file; when
// empty, uncertainty.yaml is searched in the working directory and in
// $HOME/.config/uncertainty, and its absence is not an error. fs may be nil.
func Load(file string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	def := logger.Default()
	v.SetDefault(KeyModelDir, ".")
	v.SetDefault(KeyPhase, phase.Pn.String())
	v.SetDefault(KeyAttribute, phase.TravelTime.String())
	v.SetDefault(KeyLogLevel, def.Level)
	v.SetDefault(KeyLogEncoding, def.Encoding)
	v.SetDefault(KeyLogDev, def.Development)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// log.output has no default; bind it so the env variable is still seen.
	if err := v.BindEnv(KeyLogOutput, EnvPrefix+"_LOG_OUTPUT"); err != nil {
		return nil, fmt.Errorf("config: bind env: %w", err)
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("uncertainty")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "uncertainty"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", describe(file), err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("config: bind --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if _, _, err := cfg.Selection(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &cfg, nil
}

func describe(file string) string {
	if file == "" {
		return "uncertainty.yaml"
	}
	return file
}
