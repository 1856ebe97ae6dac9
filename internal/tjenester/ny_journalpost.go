package tjenester

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/navikt/dp-behov-journalforing/internal/fillager"
	"github.com/navikt/dp-behov-journalforing/internal/journalpost"
	"github.com/navikt/dp-behov-journalforing/internal/rapid"
	"github.com/navikt/dp-behov-journalforing/internal/soknad"
)

// BehovNyJournalpost archives a finished søknad: the main document's
// variants, the canonical JSON facts from dp-soknad, and any additional
// documents sent along.
const BehovNyJournalpost = "NyJournalpost"

type nyJournalpostBehov struct {
	SoknadID string `json:"søknad_uuid"`
	Ident    string `json:"ident"`
	Type     string `json:"type"`
	Behov    struct {
		HovedDokument dokumentJSON   `json:"hovedDokument"`
		Dokumenter    []dokumentJSON `json:"dokumenter"`
	} `json:"NyJournalpost"`
}

// NyJournalpost builds the løser for nye søknadsinnsendinger.
func NyJournalpost(api journalpost.API, lager fillager.Fillager, fakta *soknad.Client, skip []string, log *logrus.Logger) *Loser {
	l := &Loser{
		def: Definisjon{
			Behov:       BehovNyJournalpost,
			NokkelKrav:  []string{"@behovId", "søknad_uuid", "ident", "type", BehovNyJournalpost},
			SkipBehovID: skipSett(skip),
			FeilEvent:   "opprett_journalpost_feilet",
		},
		api: api,
		log: log,
	}
	l.assemble = func(ctx context.Context, p *rapid.Packet) (*innsending, error) {
		var behov nyJournalpostBehov
		if err := p.Dekod(&behov); err != nil {
			return nil, fmt.Errorf("lesing av behov: %w", err)
		}

		brevkode, err := brevkodeFor(behov.Type, behov.Behov.HovedDokument.Skjemakode)
		if err != nil {
			return nil, err
		}
		hovedDokument, err := hentDokument(ctx, lager, behov.Ident, behov.Behov.HovedDokument, brevkode)
		if err != nil {
			return nil, err
		}
		faktaVariant, err := fakta.HentJSONSoknad(ctx, behov.SoknadID)
		if err != nil {
			return nil, err
		}
		hovedDokument.Varianter = append(hovedDokument.Varianter, faktaVariant)

		dokumenter := []journalpost.Dokument{hovedDokument}
		for _, dok := range behov.Behov.Dokumenter {
			dokument, err := hentDokument(ctx, lager, behov.Ident, dok, dok.Skjemakode)
			if err != nil {
				return nil, err
			}
			dokumenter = append(dokumenter, dokument)
		}

		return &innsending{opprettelse: &journalpost.Opprettelse{
			Ident:              behov.Ident,
			Dokumenter:         dokumenter,
			EksternReferanseID: p.BehovID(),
			ForsokFerdigstill:  true,
		}}, nil
	}
	l.losning = func(_ *rapid.Packet, resultat *journalpost.Resultat) any {
		return resultat.JournalpostID
	}
	l.feilFelter = func(p *rapid.Packet) map[string]any {
		return map[string]any{
			"behovId":  p.BehovID(),
			"søknadId": p.String("søknad_uuid"),
			"type":     p.String("type"),
		}
	}
	return l
}
