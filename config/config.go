package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type WebServerConfig struct {
	Port            string `mapstructure:"port"`
	IP              string `mapstructure:"ip"`
	ReadTimeout     int    `mapstructure:"read_timeout"`
	WriteTimeout    int    `mapstructure:"write_timeout"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

type GoogleConfig struct {
	ServiceAccountEmail string `mapstructure:"service_account_email"`
	PrivateKey          string `mapstructure:"private_key"` // PEM, literal \n escapes allowed
	TokenURL            string `mapstructure:"token_url"`
	AdminBaseURL        string `mapstructure:"admin_base_url"`
	DataBaseURL         string `mapstructure:"data_base_url"`
}

type DashboardConfig struct {
	Password          string `mapstructure:"password"`           // shared Basic Auth password
	AllowedProperties string `mapstructure:"allowed_properties"` // comma-separated property ids
	BlockedProperties string `mapstructure:"blocked_properties"` // comma-separated property ids
	Concurrency       int    `mapstructure:"concurrency"`        // simultaneous GA requests per fan-out stage
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type Config struct {
	WebServer WebServerConfig `mapstructure:"webserver"`
	Google    GoogleConfig    `mapstructure:"google"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

func LoadConfig() (Config, error) {
	var config Config

	godotenv.Load()

	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Enable environment variable overrides
	viper.SetEnvPrefix("GA4DASH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Secrets come from well-known env vars rather than the yaml file
	viper.BindEnv("google.service_account_email", "GA_SERVICE_ACCOUNT_EMAIL")
	viper.BindEnv("google.private_key", "GA_PRIVATE_KEY")
	viper.BindEnv("dashboard.password", "DASHBOARD_PASSWORD")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config.yaml is fine, env vars and defaults cover everything
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Error reading config file: %v", err)
			return config, err
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		log.Printf("Unable to decode into struct: %v", err)
		return config, err
	}

	return config, nil
}

func MustLoadConfig() Config {
	config, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	return config
}

func setDefaults() {
	// WebServer defaults
	viper.SetDefault("webserver.port", "8080")
	viper.SetDefault("webserver.ip", "127.0.0.1")
	viper.SetDefault("webserver.read_timeout", 15)
	viper.SetDefault("webserver.write_timeout", 60)
	viper.SetDefault("webserver.shutdown_timeout", 30)

	// Google API defaults
	viper.SetDefault("google.token_url", "https://oauth2.googleapis.com/token")
	viper.SetDefault("google.admin_base_url", "https://analyticsadmin.googleapis.com/v1beta")
	viper.SetDefault("google.data_base_url", "https://analyticsdata.googleapis.com/v1beta")

	// Dashboard defaults
	viper.SetDefault("dashboard.allowed_properties", "")
	viper.SetDefault("dashboard.blocked_properties", "")
	viper.SetDefault("dashboard.concurrency", 5)

	// RateLimit defaults
	viper.SetDefault("ratelimit.requests_per_second", 10.0)
	viper.SetDefault("ratelimit.burst", 20)
}

// SplitIDList parses a comma-separated property id list, trimming whitespace
// and dropping empty entries.
func SplitIDList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if id := strings.TrimSpace(p); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
