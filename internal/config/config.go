// Package config manages application configuration loaded from defaults,
// an optional YAML file, and BOT_* environment variables.
package config

import "time"

// Config holds the full application configuration.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	VK        VKConfig        `mapstructure:"vk"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Compose   ComposeConfig   `mapstructure:"compose"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
}

// LoggerConfig controls slog output.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// VKConfig identifies the source wall. OwnerID is negative for communities.
type VKConfig struct {
	BaseURL   string        `mapstructure:"base_url"   validate:"required,url"`
	OwnerID   int64         `mapstructure:"owner_id"   validate:"required"`
	Token     string        `mapstructure:"token"      validate:"required"`
	PageCount int           `mapstructure:"page_count" validate:"min=1,max=100"`
	Timeout   time.Duration `mapstructure:"timeout"    validate:"min=1s,max=5m"`
}

// TelegramConfig identifies the destination channel. ChatID accepts either
// a numeric id or an @channel name.
type TelegramConfig struct {
	Token               string `mapstructure:"token"   validate:"required"`
	ChatID              string `mapstructure:"chat_id" validate:"required"`
	DisableNotification bool   `mapstructure:"disable_notification"`
}

// ComposeConfig tunes the post composer. AppendText, if set, is appended to
// every post's text with {id} expanded to the wall post identifier.
type ComposeConfig struct {
	AppendText string `mapstructure:"append_text"`
}

// SchedulerConfig controls the periodic trigger.
type SchedulerConfig struct {
	Interval time.Duration `mapstructure:"interval" validate:"min=1m"`
}

// ServerConfig controls the on-demand HTTP trigger.
type ServerConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

// DatabaseConfig locates the SQLite file holding the watermark.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}
