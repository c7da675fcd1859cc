package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	DBDriver      string `mapstructure:"db_driver"`
	DBHost        string `mapstructure:"db_host"`
	DBPort        string `mapstructure:"db_port"`
	DBUser        string `mapstructure:"db_user"`
	DBPassword    string `mapstructure:"db_password"`
	DBName        string `mapstructure:"db_name"`
	DBPath        string `mapstructure:"db_path"`
	RedisHost     string `mapstructure:"redis_host"`
	RedisPort     string `mapstructure:"redis_port"`
	SessionStore  string `mapstructure:"session_store"`
	SessionSecret string `mapstructure:"session_secret"`
	GinMode       string `mapstructure:"gin_mode"`
	LogLevel      string `mapstructure:"log_level"`
	HTTPAddr      string `mapstructure:"http_addr"`
}

// Load reads configuration from an optional config.yaml and the environment.
// Environment variables win over the file, e.g. DB_HOST overrides db_host.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// RedisAddr returns host:port of the session redis.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db_driver", "mysql")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "3306")
	v.SetDefault("db_user", "taskuser")
	v.SetDefault("db_password", "taskpassword")
	v.SetDefault("db_name", "task_management")
	v.SetDefault("db_path", "task_management.db")
	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("session_store", "redis")
	v.SetDefault("session_secret", "default-secret-key-change-me")
	v.SetDefault("gin_mode", "debug")
	v.SetDefault("log_level", "info")
	v.SetDefault("http_addr", ":8080")
}
