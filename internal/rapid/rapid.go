package rapid

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Publisher puts events back onto the stream.
type Publisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

// Loser solves one kind of behov. Handle must ignore packets that are not its
// concern and return nil for them; a non-nil error aborts the run so the
// message is redelivered after restart.
type Loser interface {
	Navn() string
	Handle(ctx context.Context, packet *Packet, out Publisher) error
}

// Rapid couples a consumer-group reader with a writer and dispatches every
// event to all registered løsere in registration order. Offsets are committed
// manually, only after every løser has finished the message.
type Rapid struct {
	reader *kafka.Reader
	writer *kafka.Writer
	log    *logrus.Logger
	losere []Loser
}

func New(reader *kafka.Reader, writer *kafka.Writer, log *logrus.Logger) *Rapid {
	return &Rapid{reader: reader, writer: writer, log: log}
}

func (r *Rapid) Register(losere ...Loser) {
	r.losere = append(r.losere, losere...)
}

func (r *Rapid) Publish(ctx context.Context, key string, value []byte) error {
	return r.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	})
}

// Run consumes until the context is cancelled or a løser fails.
func (r *Rapid) Run(ctx context.Context) error {
	for {
		msg, err := r.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("lesing fra rapid: %w", err)
		}

		packet, err := ParsePacket(msg.Value)
		if err != nil {
			// Not every event on the rapid is JSON meant for us.
			r.log.WithField("partition", msg.Partition).Debugf("hopper over melding: %v", err)
			if err := r.reader.CommitMessages(ctx, msg); err != nil {
				return fmt.Errorf("commit av offset: %w", err)
			}
			continue
		}

		msgCtx := MedKorrelasjonsID(ctx, packet.BehovID())
		for _, loser := range r.losere {
			if err := loser.Handle(msgCtx, packet, r); err != nil {
				return fmt.Errorf("løser %s feilet: %w", loser.Navn(), err)
			}
		}

		if err := r.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("commit av offset: %w", err)
		}
	}
}

func (r *Rapid) Close() {
	_ = r.reader.Close()
	_ = r.writer.Close()
}
