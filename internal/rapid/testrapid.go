package rapid

import (
	"context"
	"encoding/json"
)

// TestRapid dispatches test messages to registered løsere and records what
// they publish, without any Kafka underneath.
type TestRapid struct {
	losere    []Loser
	published []json.RawMessage
}

func NewTestRapid() *TestRapid { return &TestRapid{} }

func (t *TestRapid) Register(losere ...Loser) {
	t.losere = append(t.losere, losere...)
}

func (t *TestRapid) Publish(_ context.Context, _ string, value []byte) error {
	t.published = append(t.published, append(json.RawMessage(nil), value...))
	return nil
}

// SendTestMessage runs one raw event through every registered løser,
// returning the first handler error.
func (t *TestRapid) SendTestMessage(raw string) error {
	packet, err := ParsePacket([]byte(raw))
	if err != nil {
		return err
	}
	ctx := MedKorrelasjonsID(context.Background(), packet.BehovID())
	for _, loser := range t.losere {
		if err := loser.Handle(ctx, packet, t); err != nil {
			return err
		}
	}
	return nil
}

// Size is the number of published messages.
func (t *TestRapid) Size() int { return len(t.published) }

// Message decodes published message i into a field map.
func (t *TestRapid) Message(i int) map[string]any {
	var fields map[string]any
	if err := json.Unmarshal(t.published[i], &fields); err != nil {
		panic(err)
	}
	return fields
}

// Field digs a top-level field out of published message i.
func (t *TestRapid) Field(i int, key string) any {
	return t.Message(i)[key]
}
