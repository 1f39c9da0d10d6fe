package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Veraticus/travel-mate/internal/common"
	"github.com/Veraticus/travel-mate/internal/engine"
	"github.com/Veraticus/travel-mate/internal/model"
	"github.com/Veraticus/travel-mate/internal/tui/themes"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Viper keys.
const (
	KeyWorkspacePath   = "workspace.path"
	KeyDefaultCurrency = "defaults.currency"
	KeyDefaultSort     = "defaults.sort"
	KeyLogLevel        = "logging.level"
	KeyLogFormat       = "logging.format"
	KeyTUITheme        = "tui.theme"
)

// EnvPrefix is prepended to environment overrides, e.g. TRAVELMATE_WORKSPACE_PATH.
const EnvPrefix = "TRAVELMATE"

// DefaultWorkspacePath is used when no workspace.path is configured.
const DefaultWorkspacePath = "~/.local/share/travelmate/workspace.json"

// Config is the resolved application configuration.
type Config struct {
	WorkspacePath string
	Currency      model.Currency
	Sort          engine.SortKey
	LogLevel      string
	LogFormat     string
	Theme         string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyWorkspacePath, DefaultWorkspacePath)
	v.SetDefault(KeyDefaultCurrency, string(model.DefaultCurrency))
	v.SetDefault(KeyDefaultSort, string(engine.SortByStart))
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyTUITheme, "default")
}

// Init prepares v for reading: .env is loaded into the environment, env
// overrides are enabled and the config file is read. cfgFile overrides the
// search in $HOME/.config/travelmate and the working directory. A missing
// config file is not an error.
func Init(v *viper.Viper, cfgFile string) error {
	_ = godotenv.Load()

	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(ExpandPath(cfgFile))
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".config", "travelmate"))
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// Load resolves and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		WorkspacePath: ExpandPath(strings.TrimSpace(v.GetString(KeyWorkspacePath))),
		LogLevel:      strings.ToLower(v.GetString(KeyLogLevel)),
		LogFormat:     strings.ToLower(v.GetString(KeyLogFormat)),
		Theme:         strings.ToLower(v.GetString(KeyTUITheme)),
	}

	currency, err := model.ParseCurrency(v.GetString(KeyDefaultCurrency))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrInvalidConfig, KeyDefaultCurrency, err)
	}
	cfg.Currency = currency

	sortKey, ok := engine.ParseSortKey(v.GetString(KeyDefaultSort))
	if !ok {
		return nil, fmt.Errorf("%w: %s: unknown sort key %q", common.ErrInvalidConfig, KeyDefaultSort, v.GetString(KeyDefaultSort))
	}
	cfg.Sort = sortKey

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields that are not validated while parsing.
func (c *Config) Validate() error {
	if c.WorkspacePath == "" {
		return fmt.Errorf("%w: %s is empty", common.ErrInvalidConfig, KeyWorkspacePath)
	}
	if _, err := common.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: invalid log format: %s", common.ErrInvalidConfig, c.LogFormat)
	}
	if !slices.Contains(themes.Names(), c.Theme) {
		return fmt.Errorf("%w: unknown theme %q (available: %s)",
			common.ErrInvalidConfig, c.Theme, strings.Join(themes.Names(), ", "))
	}
	return nil
}
