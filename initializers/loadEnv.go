package initializers

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Kariqs/kartdaily-api/payment"
	"github.com/Kariqs/kartdaily-api/utils"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port          string
	AppEnv        string
	DBDriver      string
	MongoURI      string
	DBName        string
	MySQLDSN      string
	JWTSecret     string
	TokenTTL      time.Duration
	Razorpay      payment.Config
	Mail          utils.MailConfig
	RedisAddr     string
	RedisPassword string
	AWSBucket     string
	CORSOrigins   []string
}

func (c *Config) Production() bool {
	return c.AppEnv == "production"
}

// Validate checks the settings the API server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	switch c.DBDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGO_URI is required for the mongo driver"))
		}
	case DriverMySQL:
		if c.MySQLDSN == "" {
			errs = append(errs, errors.New("MYSQL_DSN is required for the mysql driver"))
		}
	case DriverMemory:
	default:
		errs = append(errs, errors.New("DB_DRIVER must be one of mongo, mysql, memory"))
	}
	return errors.Join(errs...)
}

// LoadEnv reads .env when present, then the process environment. Variables
// already set in the environment win over the file.
func LoadEnv() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Println("Error loading .env file:", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "5000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_DRIVER", DriverMongo)
	v.SetDefault("DB_NAME", "kartdaily")
	v.SetDefault("TOKEN_TTL", "720h")
	v.SetDefault("RAZORPAY_BASE_URL", payment.DefaultBaseURL)
	v.SetDefault("RAZORPAY_TIMEOUT", "30s")
	v.SetDefault("SMTP_PORT", "587")

	return &Config{
		Port:      v.GetString("PORT"),
		AppEnv:    v.GetString("APP_ENV"),
		DBDriver:  strings.ToLower(v.GetString("DB_DRIVER")),
		MongoURI:  v.GetString("MONGO_URI"),
		DBName:    v.GetString("DB_NAME"),
		MySQLDSN:  v.GetString("MYSQL_DSN"),
		JWTSecret: v.GetString("JWT_SECRET"),
		TokenTTL:  v.GetDuration("TOKEN_TTL"),
		Razorpay: payment.Config{
			KeyID:     v.GetString("RAZORPAY_KEY"),
			KeySecret: v.GetString("RAZORPAY_SECRET"),
			BaseURL:   v.GetString("RAZORPAY_BASE_URL"),
			Timeout:   v.GetDuration("RAZORPAY_TIMEOUT"),
		},
		Mail: utils.MailConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetString("SMTP_PORT"),
			From:     v.GetString("FROM_EMAIL"),
			Password: v.GetString("FROM_EMAIL_PASSWORD"),
		},
		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		AWSBucket:     v.GetString("AWS_BUCKET"),
		CORSOrigins:   splitList(v.GetString("CORS_ORIGINS")),
	}
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
