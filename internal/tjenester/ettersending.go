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

// BehovEttersending archives documentation sent in after the søknad itself.
const BehovEttersending = "journalfør_ettersending_av_dokumentasjon"

type ettersendingBehov struct {
	SoknadID string `json:"søknadId"`
	Ident    string `json:"ident"`
	Behov    struct {
		Dokumenter            []dokumentJSON `json:"dokumenter"`
		DokumentasjonskravJSON string        `json:"dokumentasjonskravJson"`
		SeksjonID             string         `json:"seksjonId"`
	} `json:"journalfør_ettersending_av_dokumentasjon"`
}

// Ettersending builds the løser for ettersendt dokumentasjon.
func Ettersending(api journalpost.API, lager fillager.Fillager, skip []string, log *logrus.Logger) *Loser {
	l := &Loser{
		def: Definisjon{
			Behov:           BehovEttersending,
			KrevEventName:   true,
			NokkelKrav:      []string{"@behovId", "søknadId", "ident"},
			BehovNokkelKrav: []string{"dokumenter"},
			SkipBehovID:     skipSett(skip),
			FeilEvent:       "journalfør_ettersending_av_dokumentasjon_feilet",
		},
		api: api,
		log: log,
	}
	l.assemble = func(ctx context.Context, p *rapid.Packet) (*innsending, error) {
		var behov ettersendingBehov
		if err := p.Dekod(&behov); err != nil {
			return nil, fmt.Errorf("lesing av behov: %w", err)
		}

		dokumenter := make([]journalpost.Dokument, 0, len(behov.Behov.Dokumenter))
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
	l.losning = func(p *rapid.Packet, resultat *journalpost.Resultat) any {
		return map[string]any{
			"journalpostId":          resultat.JournalpostID,
			"journalførtTidspunkt":   time.Now().Format(time.RFC3339Nano),
			"dokumentasjonskravJson": p.BehovFelt(BehovEttersending, "dokumentasjonskravJson"),
			"seksjonId":              p.BehovFelt(BehovEttersending, "seksjonId"),
		}
	}
	l.feilFelter = func(p *rapid.Packet) map[string]any {
		return map[string]any{
			"behovId":  p.BehovID(),
			"søknadId": p.String("søknadId"),
		}
	}
	return l
}
