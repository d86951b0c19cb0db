package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env          string
	Build        string
	AppName      string
	Debug        bool
	TestMode     bool
	Locale       string
	RollbarToken string

	API struct {
		BaseURL      string
		Timeout      time.Duration
		MaxRetries   int // loaded for parity with the mobile client, never applied
		DefaultLimit int
	}

	Server struct {
		Host            string
		Address         string
		ShutdownTimeout time.Duration
	}

	Database struct {
		URL string
	}
}

// NewConfig loads the configuration of the current environment (ENV).
// Values come from defaults, then `config/.env.<env>` (if present), then the environment
// variables prefixed with the env name (eg: DEV_API_BASEURL).
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Carnet")
	conf.SetDefault("build", "develop")
	conf.SetDefault("locale", "fr")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("api.baseURL", "http://localhost:8000")
	conf.SetDefault("api.timeout", 10*time.Second)
	conf.SetDefault("api.maxRetries", 3)
	conf.SetDefault("api.defaultLimit", 20)
	conf.SetDefault("server.host", "localhost")
	conf.SetDefault("server.address", ":8000")
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)
	conf.SetDefault("database.url", "")

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	c := &Config{
		Env:          env,
		Build:        conf.GetString("build"),
		AppName:      conf.GetString("appName"),
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		Locale:       conf.GetString("locale"),
		RollbarToken: conf.GetString("rollbarToken"),
	}
	c.API.BaseURL = conf.GetString("api.baseURL")
	c.API.Timeout = conf.GetDuration("api.timeout")
	c.API.MaxRetries = conf.GetInt("api.maxRetries")
	c.API.DefaultLimit = conf.GetInt("api.defaultLimit")
	c.Server.Host = conf.GetString("server.host")
	c.Server.Address = conf.GetString("server.address")
	c.Server.ShutdownTimeout = conf.GetDuration("server.shutdownTimeout")
	c.Database.URL = conf.GetString("database.url")
	return c
}
