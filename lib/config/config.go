// Package config loads threadhash settings from flags, environment, and config files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/viper"

	"github.com/unclesp1d3r/threadhash/runstate"
)

const (
	// MaxThreads is the largest worker count a run accepts; larger requests are clamped.
	MaxThreads = 24

	defaultThreads   = 1
	defaultNiceValue = 10
	configName       = "threadhash"
	envPrefix        = "THREADHASH"
	configDirPerm    = 0o750
)

var (
	// ErrInvalidConfig wraps every validation failure returned by Load.
	ErrInvalidConfig = errors.New("invalid configuration")

	scope    = gap.NewScope(gap.User, "threadhash") //nolint:gochecknoglobals // Configuration scope
	validate = validator.New()                      //nolint:gochecknoglobals // Validators cache struct metadata
)

// Config is the complete configuration of one run.
type Config struct {
	// PasswordFile is the path or URL of the stored hashes.
	PasswordFile string `validate:"required"`
	// DictionaryFile is the path or URL of the candidate words.
	DictionaryFile string `validate:"required"`
	// OutputFile receives result lines; empty means stdout.
	OutputFile string
	Threads    int `validate:"min=1,max=24"`
	Verbose    bool
	// Nice lowers the scheduling priority by NiceValue before the run.
	Nice      bool
	NiceValue int `validate:"min=0,max=19"`
	// Progress renders a row progress bar on stderr.
	Progress bool
	// StatusAddr enables the live status server when set.
	StatusAddr string `validate:"omitempty,hostname_port"`
	// CachePath holds downloaded remote inputs.
	CachePath string `validate:"required"`
}

// InitConfig points viper at the config file locations and reads the first file found.
// A missing config file is not an error; flags and environment are enough to run.
func InitConfig(cfgFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		viper.AddConfigPath(cwd)

		configDirs, err := scope.ConfigDirs()
		if err != nil {
			return fmt.Errorf("resolve config directories: %w", err)
		}

		for _, dir := range configDirs {
			viper.AddConfigPath(dir)
		}

		if home, err := os.UserConfigDir(); err == nil {
			viper.AddConfigPath(home)
		}

		viper.SetConfigType("yaml")
		viper.SetConfigName(configName)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			runstate.Logger.Debug("No config file found, using flags and environment")

			return nil
		}

		return fmt.Errorf("read config file: %w", err)
	}

	runstate.Logger.Debug("Using config file", "config_file", viper.ConfigFileUsed())

	return nil
}

// SetDefaultConfigValues sets default configuration values.
func SetDefaultConfigValues() {
	viper.SetDefault("threads", defaultThreads)
	viper.SetDefault("verbose", false)
	viper.SetDefault("nice", false)
	viper.SetDefault("nice_value", defaultNiceValue)
	viper.SetDefault("progress", false)
	viper.SetDefault("output_file", "")
	viper.SetDefault("status_addr", "")
	viper.SetDefault("cache_path", defaultCachePath())
}

// Load builds a Config from the current viper state and validates it.
// Thread counts above MaxThreads are clamped with a warning.
func Load() (*Config, error) {
	cfg := &Config{
		PasswordFile:   viper.GetString("password_file"),
		DictionaryFile: viper.GetString("dictionary_file"),
		OutputFile:     viper.GetString("output_file"),
		Threads:        viper.GetInt("threads"),
		Verbose:        viper.GetBool("verbose"),
		Nice:           viper.GetBool("nice"),
		NiceValue:      viper.GetInt("nice_value"),
		Progress:       viper.GetBool("progress"),
		StatusAddr:     viper.GetString("status_addr"),
		CachePath:      viper.GetString("cache_path"),
	}

	if cfg.Threads > MaxThreads {
		runstate.Logger.Warn("Thread count too high, clamping", "requested", cfg.Threads, "threads", MaxThreads)
		cfg.Threads = MaxThreads
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, describe(err))
	}

	return cfg, nil
}

// describe turns validator field errors into flag-oriented messages.
func describe(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Field() {
		case "PasswordFile":
			errs = append(errs, errors.New("must give name for hashed password input file with -i filename"))
		case "DictionaryFile":
			errs = append(errs, errors.New("must give name for dictionary input file with -d filename"))
		case "Threads":
			errs = append(errs, fmt.Errorf("invalid thread count %v", fe.Value()))
		default:
			errs = append(errs, fmt.Errorf("%s: failed %q check (value %v)", fe.Field(), fe.Tag(), fe.Value()))
		}
	}

	return errors.Join(errs...)
}

// DefaultConfigFile returns where init writes the config file when no path is given.
func DefaultConfigFile() (string, error) {
	path, err := scope.ConfigPath(configName + ".yaml")
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}

	return path, nil
}

// WriteConfig saves the current settings, defaults included, to path as YAML.
// An existing file is kept unless force is set.
func WriteConfig(path string, force bool) error {
	if err := os.MkdirAll(filepath.Dir(path), configDirPerm); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	write := viper.SafeWriteConfigAs
	if force {
		write = viper.WriteConfigAs
	}

	if err := write(path); err != nil {
		return fmt.Errorf("write config file %s: %w", path, err)
	}

	return nil
}

func defaultCachePath() string {
	if dir, err := scope.CacheDir(); err == nil {
		return dir
	}

	return filepath.Join(os.TempDir(), "threadhash-cache")
}
