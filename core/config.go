package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kat-co/vala"
	"github.com/spf13/viper"
)

var Conf *Config

type (
	ServerConfig struct {
		Address         string
		Host            string
		ShutdownTimeout time.Duration
		AllowedOrigins  []string
	}

	DatabaseConfig struct {
		Engine          string
		Host            string
		Port            string
		Name            string
		User            string
		Password        string
		AdminUser       string
		AdminPassword   string
		DisableTLS      bool
		MaxIdleConns    int
		MaxOpenConns    int
		ConnMaxLifetime time.Duration
		LogLevel        string
	}

	SessionConfig struct {
		CookieName       string
		SecureCookieName string
	}

	Config struct {
		Env          string
		Debug        bool
		TestMode     bool
		AppName      string
		Build        string
		RollbarToken string
		LogLevel     string
		MetricsName  string
		WorkDir      string
		Server       ServerConfig
		Database     DatabaseConfig
		Session      SessionConfig
	}
)

func (c DatabaseConfig) Address() string {
	return c.Host + ":" + c.Port
}

func init() {
	Conf = NewConfig()
}

// NewConfig reads the configuration of the current ENV from the environment and the matching .env file.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "Class Gecko")
	v.SetDefault("build", "dev")
	v.SetDefault("rollbar.token", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("metrics.name", "class_gecko")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.shutdownTimeout", 10*time.Second)
	v.SetDefault("server.allowedOrigins", []string{"http://localhost:3000", "http://localhost:3001", "http://localhost:3002"})
	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "classgecko")
	v.SetDefault("database.user", "classgecko")
	v.SetDefault("database.password", "")
	v.SetDefault("database.adminUser", "postgres")
	v.SetDefault("database.adminPassword", "")
	v.SetDefault("database.disableTLS", true)
	v.SetDefault("database.maxIdleConns", 10)
	v.SetDefault("database.maxOpenConns", 100)
	v.SetDefault("database.connMaxLifetime", time.Hour)
	v.SetDefault("database.logLevel", "warn")
	v.SetDefault("session.cookieName", "better-auth.session_token")
	v.SetDefault("session.secureCookieName", "__Secure-better-auth.session_token")

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	case "PROD":
		v.SetDefault("debug", false)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	workDir := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(workDir, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Env:          env,
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		AppName:      v.GetString("appName"),
		Build:        v.GetString("build"),
		RollbarToken: v.GetString("rollbar.token"),
		LogLevel:     v.GetString("log.level"),
		MetricsName:  v.GetString("metrics.name"),
		WorkDir:      workDir,
		Server: ServerConfig{
			Address:         v.GetString("server.address"),
			Host:            v.GetString("server.host"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
			AllowedOrigins:  v.GetStringSlice("server.allowedOrigins"),
		},
		Database: DatabaseConfig{
			Engine:          v.GetString("database.engine"),
			Host:            v.GetString("database.host"),
			Port:            v.GetString("database.port"),
			Name:            v.GetString("database.name"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			AdminUser:       v.GetString("database.adminUser"),
			AdminPassword:   v.GetString("database.adminPassword"),
			DisableTLS:      v.GetBool("database.disableTLS"),
			MaxIdleConns:    v.GetInt("database.maxIdleConns"),
			MaxOpenConns:    v.GetInt("database.maxOpenConns"),
			ConnMaxLifetime: v.GetDuration("database.connMaxLifetime"),
			LogLevel:        v.GetString("database.logLevel"),
		},
		Session: SessionConfig{
			CookieName:       v.GetString("session.cookieName"),
			SecureCookieName: v.GetString("session.secureCookieName"),
		},
	}
}

// Validate checks the values the API and the admin CLI cannot start without.
func (c *Config) Validate() error {
	return vala.BeginValidation().Validate(
		vala.StringNotEmpty(c.Server.Address, "server.address"),
		vala.StringNotEmpty(c.Database.Engine, "database.engine"),
		vala.StringNotEmpty(c.Database.Host, "database.host"),
		vala.StringNotEmpty(c.Database.Name, "database.name"),
		vala.StringNotEmpty(c.Session.CookieName, "session.cookieName"),
		vala.GreaterThan(int(c.Server.ShutdownTimeout), 0, "server.shutdownTimeout"),
	).Check()
}
