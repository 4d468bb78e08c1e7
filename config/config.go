package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port          string `envconfig:"PORT" default:"8080"`
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	SessionSecret string `envconfig:"SESSION_SECRET" default:"your_secret_key"`
	SessionTTLMin int    `envconfig:"SESSION_TTL_MINUTES" default:"60"`

	SMTPHost   string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort   string `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser   string `envconfig:"SMTP_USER" default:""`
	SMTPPass   string `envconfig:"SMTP_PASS" default:""`
	MailSender string `envconfig:"MAIL_SENDER" default:"Audiophile <orders@yourdomain.com>"`

	ShippingFlat int     `envconfig:"SHIPPING_FLAT" default:"50"`
	VATRate      float64 `envconfig:"VAT_RATE" default:"0.2"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
