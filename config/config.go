package config

import (
	"strings"
	"time"

	"quickbite-api/models"

	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds all runtime settings. Values come from environment variables
// (or an optional config.yaml), with working defaults for local development.
type Config struct {
	Port             string
	GinMode          string
	DBPath           string
	JWTSecret        string
	JWTRefreshSecret string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	CORSOrigin       string
	RequireApproval  bool
	TaxRate          float64
	OTPTTL           time.Duration
	EchoOTP          bool
}

// C is the active configuration. Load replaces it; tests may tweak fields
// directly.
var C = defaultConfig()

// DB is the shared gorm handle, set by InitDB.
var DB *gorm.DB

func defaultConfig() *Config {
	return &Config{
		Port:             "8080",
		GinMode:          "debug",
		DBPath:           "quickbite.db",
		JWTSecret:        "quickbite_dev_secret_change_me",
		JWTRefreshSecret: "",
		AccessTokenTTL:   7 * 24 * time.Hour,
		RefreshTokenTTL:  30 * 24 * time.Hour,
		CORSOrigin:       "*",
		RequireApproval:  true,
		TaxRate:          0.05,
		OTPTTL:           10 * time.Minute,
		EchoOTP:          true,
	}
}

// Load reads configuration from the environment (and config.yaml if present)
// and installs it as the active config.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := defaultConfig()
	v.SetDefault("PORT", d.Port)
	v.SetDefault("GIN_MODE", d.GinMode)
	v.SetDefault("DB_PATH", d.DBPath)
	v.SetDefault("JWT_SECRET", d.JWTSecret)
	v.SetDefault("JWT_REFRESH_SECRET", "")
	v.SetDefault("ACCESS_TOKEN_TTL", d.AccessTokenTTL)
	v.SetDefault("REFRESH_TOKEN_TTL", d.RefreshTokenTTL)
	v.SetDefault("CORS_ORIGIN", d.CORSOrigin)
	v.SetDefault("REQUIRE_RESTAURANT_APPROVAL", true)
	v.SetDefault("TAX_RATE", d.TaxRate)
	v.SetDefault("OTP_TTL", d.OTPTTL)
	v.SetDefault("ECHO_OTP", d.EchoOTP)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{
		Port:             v.GetString("PORT"),
		GinMode:          v.GetString("GIN_MODE"),
		DBPath:           v.GetString("DB_PATH"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTRefreshSecret: v.GetString("JWT_REFRESH_SECRET"),
		AccessTokenTTL:   v.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL:  v.GetDuration("REFRESH_TOKEN_TTL"),
		CORSOrigin:       v.GetString("CORS_ORIGIN"),
		RequireApproval:  v.GetBool("REQUIRE_RESTAURANT_APPROVAL"),
		TaxRate:          v.GetFloat64("TAX_RATE"),
		OTPTTL:           v.GetDuration("OTP_TTL"),
		EchoOTP:          v.GetBool("ECHO_OTP"),
	}
	C = cfg
	return cfg, nil
}

// AccessSecret returns the key used to sign access tokens.
func AccessSecret() []byte {
	return []byte(C.JWTSecret)
}

// RefreshSecret returns the key used to sign refresh tokens, falling back to
// the access secret when no dedicated one is configured.
func RefreshSecret() []byte {
	if C.JWTRefreshSecret != "" {
		return []byte(C.JWTRefreshSecret)
	}
	return []byte(C.JWTSecret)
}

// NewLogger builds the process logger for the configured gin mode.
func NewLogger() (*zap.Logger, error) {
	if C.GinMode == "release" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// InitDB opens the SQLite database at dsn and migrates all models.
func InitDB(dsn string) error {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.MenuItem{},
		&models.Address{},
		&models.Order{},
		&models.Review{},
	); err != nil {
		return err
	}
	DB = db
	return nil
}
