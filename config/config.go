package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config is the root application configuration, loaded from config.yaml in
// the working directory with environment variable overrides.
type Config struct {
	Token      string           `mapstructure:"token"`
	Guilds     []string         `mapstructure:"guilds"`
	Admins     []string         `mapstructure:"admins"`
	Moderation ModerationConfig `mapstructure:"moderation"`
	Data       DataConfig       `mapstructure:"data"`
}

// ModerationConfig configures the review channel and the reminder sweep.
type ModerationConfig struct {
	ChannelID           string `mapstructure:"channel_id"`
	RemindAfterHours    int    `mapstructure:"remind_after_hours"`
	SweepIntervalMinute int    `mapstructure:"sweep_interval_minutes"`
}

// DataConfig configures on-disk persistence.
type DataConfig struct {
	Dir          string `mapstructure:"dir"`
	WebappExport bool   `mapstructure:"webapp_export"`
}

var Cfg Config

func LoadConfig() error {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	viper.SetDefault("moderation.remind_after_hours", 48)
	viper.SetDefault("moderation.sweep_interval_minutes", 30)
	viper.SetDefault("data.dir", "./data")
	viper.SetDefault("data.webapp_export", true)

	if err := viper.ReadInConfig(); err != nil {
		return err
	}
	if err := viper.Unmarshal(&Cfg); err != nil {
		return err
	}
	log.Printf("config loaded: moderation channel %s, %d admin(s)",
		Cfg.Moderation.ChannelID, len(Cfg.Admins))
	return nil
}
