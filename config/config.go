package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Square   SquareConfig
	VideoSDK VideoSDKConfig
	AMQP     AMQPConfig
	Clinic   ClinicConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// SquareConfig configures the payment gateway client. Timeout bounds every
// charge call; a timed-out charge is treated as failed-unconfirmed.
type SquareConfig struct {
	BaseURL     string
	AccessToken string
	Currency    string
	Timeout     time.Duration
}

type VideoSDKConfig struct {
	BaseURL string
	APIKey  string
	Secret  string
}

type AMQPConfig struct {
	URL string
}

// ClinicConfig carries the canonical operating time zone used for all
// shift matching, regardless of the host zone.
type ClinicConfig struct {
	Timezone string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	squareTimeout, err := time.ParseDuration(viper.GetString("SQUARE_TIMEOUT"))
	if err != nil {
		squareTimeout = 15 * time.Second
	}

	timezone := viper.GetString("CLINIC_TIMEZONE")
	if timezone == "" {
		timezone = "Asia/Kolkata"
	}

	currency := viper.GetString("SQUARE_CURRENCY")
	if currency == "" {
		currency = "USD"
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Square: SquareConfig{
			BaseURL:     viper.GetString("SQUARE_BASE_URL"),
			AccessToken: viper.GetString("SQUARE_ACCESS_TOKEN"),
			Currency:    currency,
			Timeout:     squareTimeout,
		},
		VideoSDK: VideoSDKConfig{
			BaseURL: viper.GetString("VIDEOSDK_BASE_URL"),
			APIKey:  viper.GetString("VIDEOSDK_API_KEY"),
			Secret:  viper.GetString("VIDEOSDK_SECRET"),
		},
		AMQP: AMQPConfig{
			URL: viper.GetString("AMQP_URL"),
		},
		Clinic: ClinicConfig{
			Timezone: timezone,
		},
	}

	return config, nil
}
