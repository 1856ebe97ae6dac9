// Package broker constructs the Kafka reader and writer for the rapid.
package broker

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/navikt/dp-behov-journalforing/internal/config"
)

// NewReader builds the consumer-group reader. Offsets are committed
// manually by the dispatch loop, never behind its back.
func NewReader(cfg *config.Config) *kafka.Reader {
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
		DualStack: true,
	}

	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.KafkaBrokers,
		GroupID: cfg.KafkaConsumerGroupID,
		Topic:   cfg.KafkaRapidTopic,
		Dialer:  dialer,

		MinBytes: 1,
		MaxBytes: 10 << 20,
		MaxWait:  500 * time.Millisecond,

		CommitInterval: 0,
	})
}

func NewWriter(cfg *config.Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(cfg.KafkaBrokers...),
		Topic:    cfg.KafkaRapidTopic,
		Balancer: &kafka.Hash{},

		RequiredAcks: parseAcks(cfg.KafkaRequiredAcks),
		MaxAttempts:  cfg.KafkaMaxAttempts,
		Compression:  parseCompression(cfg.KafkaCompression),
	}
}

func parseAcks(s string) kafka.RequiredAcks {
	switch strings.ToLower(s) {
	case "none":
		return kafka.RequireNone
	case "one":
		return kafka.RequireOne
	default:
		return kafka.RequireAll
	}
}

func parseCompression(s string) kafka.Compression {
	switch strings.ToLower(s) {
	case "", "none", "off":
		return kafka.Compression(0)
	case "gzip":
		return kafka.Gzip
	case "lz4":
		return kafka.Lz4
	case "zstd":
		return kafka.Zstd
	default:
		return kafka.Snappy
	}
}
