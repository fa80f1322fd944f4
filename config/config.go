package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		URI  string `yaml:"uri"`
		Name string `yaml:"name"`
	} `yaml:"database"`

	Clerk struct {
		SecretKey string `yaml:"secretKey"`
		APIBase   string `yaml:"apiBase"`
		// JWTPublicKey is the instance's PEM-encoded RSA public key used
		// for networkless session token verification.
		JWTPublicKey string `yaml:"jwtPublicKey"`
	} `yaml:"clerk"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"cors"`
}

// LoadConfig reads the YAML configuration file and applies environment
// overrides. A missing file is not an error so deployments can run on
// environment variables alone.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyEnvOverrides(&cfg)

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "quizarena"
	}
	if cfg.Clerk.APIBase == "" {
		cfg.Clerk.APIBase = "https://api.clerk.com"
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"http://localhost:5173"}
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("MONGODB_URI"); v != "" {
		cfg.Database.URI = v
	}
	if v := os.Getenv("MONGODB_DB"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("CLERK_SECRET_KEY"); v != "" {
		cfg.Clerk.SecretKey = v
	}
	if v := os.Getenv("CLERK_JWT_PUBLIC_KEY"); v != "" {
		cfg.Clerk.JWTPublicKey = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.CORS.AllowedOrigins = strings.Split(v, ",")
	}
}
