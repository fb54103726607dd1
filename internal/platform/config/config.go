package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	RedisAddr   string `envconfig:"REDIS_ADDR" default:"localhost:6379"`

	MQURL      string `envconfig:"MQ_URL"`
	MQExchange string `envconfig:"MQ_EXCHANGE" default:"notifications"`

	OmisePublicKey string `envconfig:"OMISE_PUBLIC_KEY"`
	OmiseSecretKey string `envconfig:"OMISE_SECRET_KEY"`

	HorizonDays              int `envconfig:"HORIZON_DAYS" default:"30"`
	HoldTTLMinutes           int `envconfig:"HOLD_TTL_MINUTES" default:"15"`
	AbandonAfterMinutes      int `envconfig:"ABANDON_AFTER_MINUTES" default:"15"`
	ClaimWindowHours         int `envconfig:"CLAIM_WINDOW_HOURS" default:"2"`
	ReapIntervalSeconds      int `envconfig:"REAP_INTERVAL_SECONDS" default:"60"`
	MaterializeIntervalHours int `envconfig:"MATERIALIZE_INTERVAL_HOURS" default:"6"`
}

func Load() (*App, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (a *App) HoldTTL() time.Duration      { return time.Duration(a.HoldTTLMinutes) * time.Minute }
func (a *App) AbandonAfter() time.Duration { return time.Duration(a.AbandonAfterMinutes) * time.Minute }
func (a *App) ClaimWindow() time.Duration  { return time.Duration(a.ClaimWindowHours) * time.Hour }
func (a *App) ReapInterval() time.Duration {
	return time.Duration(a.ReapIntervalSeconds) * time.Second
}
func (a *App) MaterializeInterval() time.Duration {
	return time.Duration(a.MaterializeIntervalHours) * time.Hour
}
