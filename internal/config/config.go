package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"github.com/wheelibin/lumos/internal/constants"
)

type Config struct {
	GatewayIP      string        `mapstructure:"gatewayIp"`
	GatewayKey     string        `mapstructure:"gatewayKey"`
	DebounceDelay  time.Duration `mapstructure:"debounceDelay"`
	RequestTimeout time.Duration `mapstructure:"requestTimeout"`
	DatabasePath   string        `mapstructure:"databasePath"`
	LogLevel       string        `mapstructure:"logLevel"`
	MQTT           MQTTConfig    `mapstructure:"mqtt"`
}

// MQTTConfig is the broker change events are published to, publishing is off when
// Broker is empty.
type MQTTConfig struct {
	Broker      string `mapstructure:"broker"`
	ClientID    string `mapstructure:"clientId"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	TopicPrefix string `mapstructure:"topicPrefix"`
}

var defaultConfigPaths = []string{
	"/etc/lumos/",
	"$HOME/.config/lumos/",
	".",
}

// InitialiseConfig reads config.json from the first of the search paths that has one.
// Defaults to /etc/lumos, ~/.config/lumos and the working directory.
func InitialiseConfig(paths ...string) (*Config, error) {
	if len(paths) == 0 {
		paths = defaultConfigPaths
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetDefault("debounceDelay", constants.DefaultDebounceDelay)
	v.SetDefault("requestTimeout", constants.DefaultRequestTimeout)
	v.SetDefault("databasePath", "lumos.db")
	v.SetDefault("logLevel", "info")
	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.clientId", "lumos")
	v.SetDefault("mqtt.username", "")
	v.SetDefault("mqtt.password", "")
	v.SetDefault("mqtt.topicPrefix", "lumos")

	// LUMOS_GATEWAYIP etc.
	v.SetEnvPrefix("lumos")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if cfg.GatewayIP == "" {
		return nil, fmt.Errorf("gatewayIp missing from config (%s)", v.ConfigFileUsed())
	}
	if cfg.DebounceDelay < 0 {
		cfg.DebounceDelay = 0
	}

	return &cfg, nil
}

// Level parses the configured log level, falling back to info.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
