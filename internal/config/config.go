// Package config loads the service configuration from the environment.
package config

import (
	"context"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/navikt/dp-behov-journalforing/internal/journalpost"
)

type Config struct {
	KafkaBrokers         []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaRapidTopic      string   `env:"KAFKA_RAPID_TOPIC" envDefault:"teamdagpenger.rapid.v1"`
	KafkaConsumerGroupID string   `env:"KAFKA_CONSUMER_GROUP_ID" envDefault:"dp-behov-journalforing-v1"`
	KafkaRequiredAcks    string   `env:"KAFKA_REQUIRED_ACKS" envDefault:"all"`
	KafkaCompression     string   `env:"KAFKA_COMPRESSION" envDefault:"snappy"`
	KafkaMaxAttempts     int      `env:"KAFKA_MAX_ATTEMPTS" envDefault:"10"`

	DokarkivURL      string `env:"DOKARKIV_URL" envDefault:"https://dokarkiv.dev-fss-pub.nais.io"`
	MellomlagringURL string `env:"MELLOMLAGRING_URL" envDefault:"http://dp-mellomlagring"`
	SoknadURL        string `env:"SOKNAD_URL" envDefault:"http://dp-soknad/arbeid/dagpenger/soknadapi"`

	DokarkivToken      string `env:"DOKARKIV_TOKEN"`
	MellomlagringToken string `env:"MELLOMLAGRING_TOKEN"`
	SoknadToken        string `env:"SOKNAD_TOKEN"`

	// Known-bad behovIds that must not be processed, kept as plain
	// configuration so a stuck message can be skipped without a deploy.
	SkipNyJournalpost []string `env:"SKIP_BEHOV_NY_JOURNALPOST" envDefault:"2402677f-7e8d-41b8-92a7-5853a19a8cab"`
	SkipRapportering  []string `env:"SKIP_BEHOV_RAPPORTERING" envDefault:"739e4bfd-7bda-4b58-88c7-b64cd9896def"`
	SkipVedtaksbrev   []string `env:"SKIP_BEHOV_VEDTAKSBREV" envDefault:"fb4a8b58-3984-431a-811b-ab35b50c0e12"`
	// Behov whose submission failures are swallowed instead of retried.
	SvelgFeilRapportering []string `env:"SVELG_FEIL_RAPPORTERING"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env files when present and then the environment.
func Load() (*Config, error) {
	for _, fil := range []string{".env", ".env.local"} {
		if _, err := os.Stat(fil); err == nil {
			_ = godotenv.Load(fil)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("lesing av miljøvariabler: %w", err)
	}
	return cfg, nil
}

// Logger builds the shared logger. It is injected everywhere instead of
// being reached for globally.
func (c *Config) Logger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// StaticToken adapts a configured token to the provider the clients expect.
// Token exchange and caching run in a sidecar, the service only forwards.
func StaticToken(token string) journalpost.TokenProvider {
	return func(context.Context) (string, error) {
		return token, nil
	}
}
