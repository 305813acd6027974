package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration in three layers: built-in defaults, the
// YAML file at path (optional), and BOT_* environment variables, e.g.
// BOT_TELEGRAM_TOKEN overrides telegram.token. The result is validated
// before being returned.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine: env and defaults still apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers every known key so that AutomaticEnv can bind
// environment variables even for keys absent from the config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.json", true)

	v.SetDefault("vk.base_url", "https://api.vk.com")
	v.SetDefault("vk.owner_id", 0)
	v.SetDefault("vk.token", "")
	v.SetDefault("vk.page_count", 4)
	v.SetDefault("vk.timeout", "30s")

	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.chat_id", "")
	v.SetDefault("telegram.disable_notification", false)

	v.SetDefault("compose.append_text", "")

	v.SetDefault("scheduler.interval", "5m")

	v.SetDefault("server.addr", ":8080")

	v.SetDefault("database.path", "./storage.db")
}
