package tjenester

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/navikt/dp-behov-journalforing/internal/fillager"
	"github.com/navikt/dp-behov-journalforing/internal/journalpost"
	"github.com/navikt/dp-behov-journalforing/internal/rapid"
)

// BehovSoknadPdfOgVedlegg archives an already-rendered søknad pdf with its
// vedlegg. The json facts come inline on the variants here, there is no
// fakta lookup.
const BehovSoknadPdfOgVedlegg = "journalfør_søknad_pdf_og_vedlegg"

type soknadPdfBehov struct {
	SoknadID string `json:"søknadId"`
	Ident    string `json:"ident"`
	Type     string `json:"type"`
	Behov    struct {
		HovedDokument dokumentJSON   `json:"hovedDokument"`
		Dokumenter    []dokumentJSON `json:"dokumenter"`
	} `json:"journalfør_søknad_pdf_og_vedlegg"`
}

// SoknadPdfOgVedlegg builds the løser for ferdig renderte søknader.
func SoknadPdfOgVedlegg(api journalpost.API, lager fillager.Fillager, skip []string, log *logrus.Logger) *Loser {
	l := &Loser{
		def: Definisjon{
			Behov:         BehovSoknadPdfOgVedlegg,
			KrevEventName: true,
			NokkelKrav:    []string{"@behovId", "søknadId", "ident", "type", BehovSoknadPdfOgVedlegg},
			SkipBehovID:   skipSett(skip),
			FeilEvent:     "journalfør_søknad_pdf_og_vedlegg_feilet",
		},
		api: api,
		log: log,
	}
	l.assemble = func(ctx context.Context, p *rapid.Packet) (*innsending, error) {
		var behov soknadPdfBehov
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
		return map[string]any{
			"journalpostId":        resultat.JournalpostID,
			"journalførtTidspunkt": time.Now().Format(time.RFC3339Nano),
		}
	}
	l.feilFelter = func(p *rapid.Packet) map[string]any {
		return map[string]any{
			"behovId":  p.BehovID(),
			"søknadId": p.String("søknadId"),
			"type":     p.String("type"),
		}
	}
	return l
}
