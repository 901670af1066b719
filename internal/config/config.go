package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env                   string        `mapstructure:"ENV"`
	Port                  string        `mapstructure:"PORT"`
	DatabaseURL           string        `mapstructure:"DATABASE_URL"`
	CORSAllowed           string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	LogLevel              string        `mapstructure:"LOG_LEVEL"`
	QueryTimeout          time.Duration `mapstructure:"QUERY_TIMEOUT"`
	ClassifierTimeout     time.Duration `mapstructure:"CLASSIFIER_TIMEOUT"`
	ClassifierConcurrency int           `mapstructure:"CLASSIFIER_CONCURRENCY"`
	OpenAIAPIKey          string        `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel           string        `mapstructure:"OPENAI_MODEL"`
	AuthJWTSecret         string        `mapstructure:"AUTH_JWT_SECRET"`
	AuthAllowedDomain     string        `mapstructure:"AUTH_ALLOWED_DOMAIN"`
	DevMode               bool          `mapstructure:"DEV_MODE"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("QUERY_TIMEOUT", "15s")
	v.SetDefault("CLASSIFIER_TIMEOUT", "60s")
	v.SetDefault("CLASSIFIER_CONCURRENCY", 4)
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("DEV_MODE", false)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
