package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type NotifierConfig struct {
	// Kind selects the delivery mechanism: "sns" or "smtp".
	Kind     string `yaml:"kind"`
	TopicARN string `yaml:"topic_arn"`

	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
}

type S3Config struct {
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Verification struct {
		BaseURL  string `yaml:"base_url"`
		TokenTTL string `yaml:"token_ttl"`
	} `yaml:"verification"`
	Notifier NotifierConfig `yaml:"notifier"`
	S3       S3Config       `yaml:"s3"`
}

// TokenTTL parses the configured token lifetime, defaulting to two minutes.
func (c *Config) TokenTTL() time.Duration {
	if c.Verification.TokenTTL == "" {
		return 2 * time.Minute
	}
	d, err := time.ParseDuration(c.Verification.TokenTTL)
	if err != nil || d <= 0 {
		return 2 * time.Minute
	}
	return d
}

func LoadConfig() *Config {
	path := os.Getenv("WEBAPP_CONFIG")
	if path == "" {
		path = "config/config.yaml"
	}

	f, err := os.Open(path)
	if err != nil {
		panic("Failed to open " + path + ": " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse " + path + ": " + err.Error())
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Notifier.Kind == "" {
		cfg.Notifier.Kind = "sns"
	}
	return &cfg
}
