// Package rapid is the thin dispatch layer between the Kafka stream and the
// behov-løsere: it reads events, hands them to every registered løser and
// publishes whatever the løsere resolve.
package rapid

import (
	"context"
	"encoding/json"
	"fmt"
)

// Packet is one inbound event. The raw field map is kept so a republished
// packet carries every original field unchanged, with only the løsning added.
type Packet struct {
	fields map[string]any
}

// ParsePacket decodes an event. Non-object payloads are rejected.
func ParsePacket(data []byte) (*Packet, error) {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("melding er ikke gyldig json: %w", err)
	}
	return &Packet{fields: fields}, nil
}

// EventName returns @event_name, or "" when absent.
func (p *Packet) EventName() string { return p.String("@event_name") }

// BehovID is the correlation id of the behov.
func (p *Packet) BehovID() string { return p.String("@behovId") }

// Ident is the subject's fødselsnummer.
func (p *Packet) Ident() string { return p.String("ident") }

// HarBehov reports whether navn is among the requested @behov capabilities.
func (p *Packet) HarBehov(navn string) bool {
	liste, ok := p.fields["@behov"].([]any)
	if !ok {
		return false
	}
	for _, b := range liste {
		if s, ok := b.(string); ok && s == navn {
			return true
		}
	}
	return false
}

// HarLosning reports whether the packet already carries a solution. Such
// packets are someone else's finished work and must not be reprocessed.
func (p *Packet) HarLosning() bool {
	_, ok := p.fields["@løsning"]
	return ok
}

// Har reports whether a top-level key is present and non-null.
func (p *Packet) Har(key string) bool {
	v, ok := p.fields[key]
	return ok && v != nil
}

// String returns a top-level field as text, or "" when absent or not a string.
func (p *Packet) String(key string) string {
	s, _ := p.fields[key].(string)
	return s
}

// Felt returns a raw top-level field.
func (p *Packet) Felt(key string) any { return p.fields[key] }

// BehovFelt digs into the payload object keyed by the behov name.
func (p *Packet) BehovFelt(behov, key string) any {
	payload, ok := p.fields[behov].(map[string]any)
	if !ok {
		return nil
	}
	return payload[key]
}

// Dekod unmarshals the whole packet into a typed per-kind structure.
func (p *Packet) Dekod(v any) error {
	data, err := json.Marshal(p.fields)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// SettLosning writes the solution for the given behov onto the packet.
func (p *Packet) SettLosning(behov string, losning any) {
	p.fields["@løsning"] = map[string]any{behov: losning}
}

// JSON serializes the packet for publishing.
func (p *Packet) JSON() ([]byte, error) {
	return json.Marshal(p.fields)
}

type korrelasjonsIDKey struct{}

// MedKorrelasjonsID tags the processing context with the behovId so outbound
// clients can propagate it as X-Correlation-Id.
func MedKorrelasjonsID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, korrelasjonsIDKey{}, id)
}

// KorrelasjonsID returns the correlation id for the current message, or "".
func KorrelasjonsID(ctx context.Context) string {
	id, _ := ctx.Value(korrelasjonsIDKey{}).(string)
	return id
}
