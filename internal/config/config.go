package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	APIPort  int `mapstructure:"apiPort"`
	Database struct {
		Type       string `mapstructure:"type"`
		Path       string `mapstructure:"path"`
		WALMode    bool   `mapstructure:"walMode"`
		MaxRetries int    `mapstructure:"maxRetries"`
		RetryDelay int    `mapstructure:"retryDelay"`
		Host       string `mapstructure:"host"`
		Port       string `mapstructure:"port"`
		User       string `mapstructure:"user"`
		Password   string `mapstructure:"password"`
		Name       string `mapstructure:"name"`
		SSLMode    string `mapstructure:"sslMode"`
	} `mapstructure:"database"`
	Auth struct {
		TokenSecret      string        `mapstructure:"tokenSecret"`
		TokenLifetime    time.Duration `mapstructure:"tokenLifetime"`
		LoginWindow      time.Duration `mapstructure:"loginWindow"`
		LoginMaxAttempts int           `mapstructure:"loginMaxAttempts"`
	} `mapstructure:"auth"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowedOrigins"`
	} `mapstructure:"cors"`
	Archive struct {
		Enabled         bool   `mapstructure:"enabled"`
		Endpoint        string `mapstructure:"endpoint"`
		Region          string `mapstructure:"region"`
		Bucket          string `mapstructure:"bucket"`
		AccessKeyID     string `mapstructure:"accessKeyId"`
		SecretAccessKey string `mapstructure:"secretAccessKey"`
	} `mapstructure:"archive"`
}

// LoadConfig loads the configuration from file and environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		log.Printf("Warning: Could not read config file: %s. Using defaults or environment variables.", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg, v)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config, v *viper.Viper) {
	if cfg.APIPort == 0 {
		cfg.APIPort = 5050
		log.Println("APIPort not specified, using default 5050")
	}

	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./data/sunbonsys.db"
		log.Println("Database path not specified, using default ./data/sunbonsys.db")
	}
	if !v.IsSet("database.walMode") {
		cfg.Database.WALMode = true
	}
	if cfg.Database.MaxRetries == 0 {
		cfg.Database.MaxRetries = 5
	}
	if cfg.Database.RetryDelay == 0 {
		cfg.Database.RetryDelay = 5
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}

	if cfg.Auth.TokenLifetime == 0 {
		cfg.Auth.TokenLifetime = 24 * time.Hour
	}
	if cfg.Auth.LoginWindow == 0 {
		cfg.Auth.LoginWindow = 15 * time.Minute
	}
	if cfg.Auth.LoginMaxAttempts == 0 {
		cfg.Auth.LoginMaxAttempts = 5
	}

	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"https://*", "http://localhost:*", "http://127.0.0.1:*"}
	}
}

// validate rejects configurations the server must not start with. A missing
// token secret would make every issued token forgeable, so it is a hard error
// rather than a logged warning.
func validate(cfg *Config) error {
	if cfg.Auth.TokenSecret == "" {
		return errors.New("auth.tokenSecret is required: refusing to start without a token signing secret")
	}
	if cfg.Database.Type != "sqlite" && cfg.Database.Type != "postgres" {
		return errors.New("database.type must be sqlite or postgres")
	}
	return nil
}
