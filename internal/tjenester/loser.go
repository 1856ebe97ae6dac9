// Package tjenester contains the behov-løsere: one per request kind, all
// built over the same validate→assemble→submit→resolve skeleton.
package tjenester

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/navikt/dp-behov-journalforing/internal/journalpost"
	"github.com/navikt/dp-behov-journalforing/internal/rapid"
)

// Definisjon is the per-kind configuration of the shared skeleton.
type Definisjon struct {
	// Behov is the capability this løser answers.
	Behov string
	// KrevEventName additionally requires @event_name == "behov".
	KrevEventName bool
	// NokkelKrav are required top-level keys.
	NokkelKrav []string
	// BehovNokkelKrav are required keys inside the behov payload object.
	BehovNokkelKrav []string
	// SkipBehovID drops known-bad messages before processing. Manual
	// override for stuck messages, not a general policy.
	SkipBehovID map[string]bool
	// SvelgFeilBehovID swallows submission errors for listed behovIds.
	SvelgFeilBehovID map[string]bool
	// FeilEvent, when set, names the event published for operator
	// visibility when the archive service answers 500 or 404.
	FeilEvent string
}

// innsending is what a kind's assemble step produces: either the structured
// create request, or a fully built envelope for the outbound kinds.
type innsending struct {
	opprettelse *journalpost.Opprettelse
	envelope    *journalpost.Journalpost
}

// Loser runs the uniform state machine for one request kind. The kind
// supplies its field requirements through Definisjon and its behavior
// through the assemble, løsning and feilFelter strategies.
type Loser struct {
	def        Definisjon
	api        journalpost.API
	log        *logrus.Logger
	assemble   func(ctx context.Context, p *rapid.Packet) (*innsending, error)
	losning    func(p *rapid.Packet, resultat *journalpost.Resultat) any
	feilFelter func(p *rapid.Packet) map[string]any
}

func (l *Loser) Navn() string { return l.def.Behov }

func (l *Loser) Handle(ctx context.Context, p *rapid.Packet, out rapid.Publisher) error {
	if !l.gjelder(p) {
		return nil
	}

	behovID := p.BehovID()
	logg := l.log.WithFields(logrus.Fields{
		"behov":   l.def.Behov,
		"behovId": behovID,
	})

	if l.def.SkipBehovID[behovID] {
		logg.Warn("hopper over manuelt ekskludert behov")
		return nil
	}

	logg.Info("mottok behov for ny journalpost")

	ins, err := l.assemble(ctx, p)
	if err != nil {
		return fmt.Errorf("behovId %s: %w", behovID, err)
	}

	var resultat *journalpost.Resultat
	if ins.envelope != nil {
		resultat, err = l.api.OpprettJournalpost(ctx, true, *ins.envelope)
	} else {
		resultat, err = l.api.Opprett(ctx, *ins.opprettelse)
	}
	if err != nil {
		l.rapporterFeil(ctx, p, out, logg, err)
		if l.def.SvelgFeilBehovID[behovID] {
			logg.Errorf("svelger feil for manuelt ekskludert behovId: %v", err)
			return nil
		}
		return fmt.Errorf("behovId %s: %w", behovID, err)
	}

	if !resultat.Ferdigstilt {
		logg.Errorf("journalpost %s ble ikke ferdigstilt: %s", resultat.JournalpostID, resultat.Melding)
		return fmt.Errorf("behovId %s, journalpostId %s: %w",
			behovID, resultat.JournalpostID, journalpost.ErrIkkeFerdigstilt)
	}

	p.SettLosning(l.def.Behov, l.losning(p, resultat))
	melding, err := p.JSON()
	if err != nil {
		return fmt.Errorf("serialisering av løsning for behovId %s: %w", behovID, err)
	}
	if err := out.Publish(ctx, behovID, melding); err != nil {
		return fmt.Errorf("publisering av løsning for behovId %s: %w", behovID, err)
	}

	logg.Infof("løste behov med journalpostId=%s", resultat.JournalpostID)
	return nil
}

// gjelder is the structural filter: right behov, no existing løsning,
// required fields present. A mismatch is not an error, the packet is simply
// not this løser's concern.
func (l *Loser) gjelder(p *rapid.Packet) bool {
	if !p.HarBehov(l.def.Behov) {
		return false
	}
	if p.HarLosning() {
		return false
	}
	if l.def.KrevEventName && p.EventName() != "behov" {
		return false
	}
	for _, nokkel := range l.def.NokkelKrav {
		if !p.Har(nokkel) {
			return false
		}
	}
	for _, nokkel := range l.def.BehovNokkelKrav {
		if p.BehovFelt(l.def.Behov, nokkel) == nil {
			return false
		}
	}
	return true
}

// rapporterFeil publishes the kind's failure event when the archive service
// answered 500 or 404. In dev those statuses usually mean the ident has gone
// stale downstream, so operators want a signal; other client errors are
// caller bugs and only propagate.
func (l *Loser) rapporterFeil(ctx context.Context, p *rapid.Packet, out rapid.Publisher, logg *logrus.Entry, err error) {
	if l.def.FeilEvent == "" {
		return
	}
	var statusErr *journalpost.StatusError
	if !errors.As(err, &statusErr) {
		return
	}
	if statusErr.StatusCode != http.StatusInternalServerError && statusErr.StatusCode != http.StatusNotFound {
		return
	}

	event := map[string]any{
		"@event_name": l.def.FeilEvent,
		"@id":         uuid.NewString(),
		"@opprettet":  time.Now().Format(time.RFC3339Nano),
	}
	for nokkel, verdi := range l.feilFelter(p) {
		event[nokkel] = verdi
	}

	melding, marshalErr := json.Marshal(event)
	if marshalErr != nil {
		logg.Errorf("kunne ikke serialisere feilmelding: %v", marshalErr)
		return
	}
	if pubErr := out.Publish(ctx, p.BehovID(), melding); pubErr != nil {
		logg.Errorf("kunne ikke publisere feilmelding: %v", pubErr)
		return
	}
	logg.Warnf("publiserte %s etter status %d fra journalpostapi", l.def.FeilEvent, statusErr.StatusCode)
}
