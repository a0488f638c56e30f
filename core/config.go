package core

import (
	"fmt"
	"log"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var Conf *Config

func init() {
	Conf = NewConfig()
}

type (
	Config struct {
		Debug    bool
		TestMode bool
		Env      string // DEV (default), TEST, QA, PROD
		Build    string

		AppName          string
		SecretKey        []byte
		FrontendBaseURL  string
		defaultFromEmail string

		SendgridApiKey string
		RollbarToken   string

		Server   ServerConfig
		Database DatabaseConfig
		Redis    RedisConfig
		Gemini   GeminiConfig

		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
		PasswordResetTimeoutDelta time.Duration
		GuestSessionTTL           time.Duration

		HomeworkDailyLimit        int
		HomeworkDailyLimitPremium int
	}

	ServerConfig struct {
		Host            string
		Port            int
		DebugPort       int
		ShutdownTimeout time.Duration
	}

	DatabaseConfig struct {
		Engine        string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		Host          string
		Port          int
		DisableTLS    bool
	}

	RedisConfig struct {
		Host     string
		Port     int
		Password string
		DB       int
	}

	GeminiConfig struct {
		ApiKey          string
		Model           string
		BaseURL         string
		MaxOutputTokens int
		Temperature     float64
	}
)

// NewConfig loads the app configuration from the environment;
// an optional config/.env.<env> file is loaded first if it exists.
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "Play Learn Spark")
	v.SetDefault("secretKey", "0y+i2jxk(w%p)e5f$8#sparkle!u7_m&qc-4hrzv^3gd*6ab9t")
	v.SetDefault("frontendBaseURL", "http://localhost:5173")
	v.SetDefault("defaultFromEmail", "noreply@playlearnspark.app")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("rollbarToken", "")

	v.SetDefault("serverHost", "0.0.0.0")
	v.SetDefault("serverPort", 8000)
	v.SetDefault("serverDebugPort", 8001)
	v.SetDefault("serverShutdownTimeout", 5*time.Second)

	v.SetDefault("databaseEngine", "postgres")
	v.SetDefault("databaseName", "playlearnspark")
	v.SetDefault("databaseUser", "postgres")
	v.SetDefault("databasePassword", "postgres")
	v.SetDefault("databaseAdminUser", "")
	v.SetDefault("databaseAdminPassword", "")
	v.SetDefault("databaseHost", "localhost")
	v.SetDefault("databasePort", 5432)
	v.SetDefault("databaseDisableTLS", true)

	v.SetDefault("redisHost", "localhost")
	v.SetDefault("redisPort", 6379)
	v.SetDefault("redisPassword", "")
	v.SetDefault("redisDB", 0)

	v.SetDefault("geminiApiKey", "")
	v.SetDefault("geminiModel", "gemini-1.5-flash")
	v.SetDefault("geminiBaseURL", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("geminiMaxOutputTokens", 1024)
	v.SetDefault("geminiTemperature", 0.4)

	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)
	v.SetDefault("passwordResetTimeoutDelta", 3*24*time.Hour)
	v.SetDefault("guestSessionTTL", 24*time.Hour)

	v.SetDefault("homeworkDailyLimit", 5)
	v.SetDefault("homeworkDailyLimitPremium", 50)

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := fmt.Sprintf("config/.env.%s", strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Debug:            v.GetBool("debug"),
		TestMode:         env == "TEST",
		Env:              env,
		Build:            v.GetString("build"),
		AppName:          v.GetString("appName"),
		SecretKey:        []byte(v.GetString("secretKey")),
		FrontendBaseURL:  strings.TrimSuffix(v.GetString("frontendBaseURL"), "/"),
		defaultFromEmail: v.GetString("defaultFromEmail"),
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:            v.GetString("serverHost"),
			Port:            v.GetInt("serverPort"),
			DebugPort:       v.GetInt("serverDebugPort"),
			ShutdownTimeout: v.GetDuration("serverShutdownTimeout"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("databaseEngine"),
			Name:          v.GetString("databaseName"),
			User:          v.GetString("databaseUser"),
			Password:      v.GetString("databasePassword"),
			AdminUser:     v.GetString("databaseAdminUser"),
			AdminPassword: v.GetString("databaseAdminPassword"),
			Host:          v.GetString("databaseHost"),
			Port:          v.GetInt("databasePort"),
			DisableTLS:    v.GetBool("databaseDisableTLS"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redisHost"),
			Port:     v.GetInt("redisPort"),
			Password: v.GetString("redisPassword"),
			DB:       v.GetInt("redisDB"),
		},
		Gemini: GeminiConfig{
			ApiKey:          v.GetString("geminiApiKey"),
			Model:           v.GetString("geminiModel"),
			BaseURL:         strings.TrimSuffix(v.GetString("geminiBaseURL"), "/"),
			MaxOutputTokens: v.GetInt("geminiMaxOutputTokens"),
			Temperature:     v.GetFloat64("geminiTemperature"),
		},
		JWTExpirationDelta:        v.GetDuration("jwtExpirationDelta"),
		JWTRefreshExpirationDelta: v.GetDuration("jwtRefreshExpirationDelta"),
		PasswordResetTimeoutDelta: v.GetDuration("passwordResetTimeoutDelta"),
		GuestSessionTTL:           v.GetDuration("guestSessionTTL"),
		HomeworkDailyLimit:        v.GetInt("homeworkDailyLimit"),
		HomeworkDailyLimitPremium: v.GetInt("homeworkDailyLimitPremium"),
	}
	if env == "TEST" {
		conf.Debug = true
	}
	return conf
}

func (c *Config) DefaultFromEmail() mail.Address {
	return mail.Address{Name: c.AppName, Address: c.defaultFromEmail}
}

func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) DebugServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.DebugPort)
}

func (c *DatabaseConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
