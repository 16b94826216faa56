package config

import (
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Port           uint     `env:"PORT" envDefault:"8080"`
	IsTestMode     bool     `env:"TEST_MODE" envDefault:"false"`
	Secret         string   `env:"SECRET,required"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	PostgresqlURL  string `env:"POSTGRESQL_URL,required"`
	MigrationsPath string `env:"MIGRATIONS_PATH"`
	RedisURL       string `env:"REDIS_URL,required"`
	RabbitmqURL    string `env:"RABBITMQ_URL,required"`

	BcryptHasherCost int `env:"BCRYPT_HASHER_COST" envDefault:"10"`

	AccessTokenValidDuration   time.Duration `env:"ACCESS_TOKEN_VALID_DURATION" envDefault:"15m"`
	RefreshTokenValidDuration  time.Duration `env:"REFRESH_TOKEN_VALID_DURATION" envDefault:"168h"`
	PasswordResetValidDuration time.Duration `env:"PASSWORD_RESET_VALID_DURATION" envDefault:"10m"`

	RabbitmqPasswordResetEmailQueue string `env:"RABBITMQ_PASSWORD_RESET_EMAIL_QUEUE" envDefault:"password-reset-email"`

	AwsRegion                     string  `env:"AWS_REGION" envDefault:"us-east-1"`
	AwsAccessKey                  string  `env:"AWS_ACCESS_KEY"`
	AwsSecretKey                  string  `env:"AWS_SECRET_KEY"`
	AwsEmailSender                string  `env:"AWS_EMAIL_SENDER"`
	AwsEmailPasswordResetTemplate string  `env:"AWS_EMAIL_PASSWORD_RESET_TEMPLATE" envDefault:"BillstationPasswordReset"`
	PasswordResetBaseUrl          url.URL `env:"PASSWORD_RESET_BASE_URL" envDefault:"https://billstation.app/reset-password"`

	SentryDsn *url.URL `env:"SENTRY_DSN"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	return config, nil
}
