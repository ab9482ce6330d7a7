package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`

	GHL struct {
		BaseURL             string `mapstructure:"base_url"`
		LocationID          string `mapstructure:"location_id"`
		APIToken            string `mapstructure:"api_token"`
		TripPipelineID      string `mapstructure:"trip_pipeline_id"`
		PassengerPipelineID string `mapstructure:"passenger_pipeline_id"`
	} `mapstructure:"ghl"`

	S3 struct {
		Bucket    string `mapstructure:"bucket"`
		Region    string `mapstructure:"region"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
	} `mapstructure:"s3"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "tripbuilder_db")
	v.SetDefault("ghl.base_url", "https://services.leadconnectorhq.com")
	v.SetDefault("ghl.trip_pipeline_id", "IlWdPtOpcczLpgsde2KF")
	v.SetDefault("ghl.passenger_pipeline_id", "fnsdpRtY9o83Vr4z15bE")
	v.SetDefault("s3.bucket", "cet-uploads")
	v.SetDefault("s3.region", "us-east-1")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override database settings from DB_* environment variables
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Database.Port = n
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}

	// GHL credentials come from the environment
	if token := os.Getenv("GHL_API_TOKEN"); token != "" {
		cfg.GHL.APIToken = token
	}
	if loc := os.Getenv("GHL_LOCATION_ID"); loc != "" {
		cfg.GHL.LocationID = loc
	}
	if cfg.GHL.APIToken == "" || cfg.GHL.LocationID == "" {
		log.Printf("[Config] GHL_API_TOKEN or GHL_LOCATION_ID not set, CRM sync will fail until configured")
	}

	// S3 credentials from environment
	if key := os.Getenv("AWS_ACCESS_KEY_ID"); key != "" {
		cfg.S3.AccessKey = key
	}
	if secret := os.Getenv("AWS_SECRET_ACCESS_KEY"); secret != "" {
		cfg.S3.SecretKey = secret
	}
	if bucket := os.Getenv("S3_BUCKET"); bucket != "" {
		cfg.S3.Bucket = bucket
	}
	if region := os.Getenv("AWS_REGION"); region != "" {
		cfg.S3.Region = region
	}

	return &cfg
}
