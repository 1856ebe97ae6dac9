package tjenester

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/navikt/dp-behov-journalforing/internal/fillager"
	"github.com/navikt/dp-behov-journalforing/internal/journalpost"
	"github.com/navikt/dp-behov-journalforing/internal/rapid"
)

// BehovVedtaksbrev archives an outbound vedtaksbrev. Unlike the inbound
// kinds this builds the envelope itself: the journalpost goes out from NAV,
// not in from the bruker.
const BehovVedtaksbrev = "JournalføringBehov"

type vedtaksbrevBehov struct {
	Ident      string `json:"ident"`
	PdfURN     string `json:"pdfUrn"`
	SkjemaKode string `json:"skjemaKode"`
	Tittel     string `json:"tittel"`
	Sak        struct {
		ID       string `json:"id"`
		Kontekst string `json:"kontekst"`
	} `json:"sak"`
}

// Vedtaksbrev builds the løser for utgående vedtaksbrev.
func Vedtaksbrev(api journalpost.API, lager fillager.Fillager, skip []string, log *logrus.Logger) *Loser {
	l := &Loser{
		def: Definisjon{
			Behov:         BehovVedtaksbrev,
			KrevEventName: true,
			NokkelKrav:    []string{"@behovId", "ident", "sak", "pdfUrn"},
			SkipBehovID:   skipSett(skip),
		},
		api: api,
		log: log,
	}
	l.assemble = func(ctx context.Context, p *rapid.Packet) (*innsending, error) {
		var behov vedtaksbrevBehov
		if err := p.Dekod(&behov); err != nil {
			return nil, fmt.Errorf("lesing av behov: %w", err)
		}

		ref, err := fillager.ParseFilURN(behov.PdfURN)
		if err != nil {
			return nil, err
		}
		fil, err := lager.HentFil(ctx, ref, behov.Ident)
		if err != nil {
			return nil, err
		}

		tittel := behov.Tittel
		if tittel == "" {
			tittel = "Vedtak om dagpenger"
		}
		skjemaKode := behov.SkjemaKode
		if skjemaKode == "" {
			skjemaKode = "NAV-DAGPENGER-VEDTAK"
		}
		fagsaksystem := "DAGPENGER"
		if behov.Sak.Kontekst == "Arena" {
			fagsaksystem = "AO01"
		}

		bruker := journalpost.Bruker{ID: behov.Ident, IDType: "FNR"}
		return &innsending{envelope: &journalpost.Journalpost{
			Journalposttype:     "UTGAAENDE",
			AvsenderMottaker:    bruker,
			Bruker:              bruker,
			Tema:                "DAG",
			Kanal:               "NAV_NO",
			Tittel:              tittel,
			JournalforendeEnhet: "9999",
			EksternReferanseID:  p.BehovID(),
			Sak: &journalpost.Sak{
				Sakstype:     "FAGSAK",
				FagsakID:     behov.Sak.ID,
				Fagsaksystem: fagsaksystem,
			},
			Dokumenter: []journalpost.Dokumentpost{{
				Brevkode: skjemaKode,
				Tittel:   tittel,
				Dokumentvarianter: []journalpost.Dokumentvariant{{
					Filtype:        journalpost.FiltypePDFA,
					Variantformat:  journalpost.FormatArkiv,
					FysiskDokument: base64.StdEncoding.EncodeToString(fil),
				}},
			}},
		}}, nil
	}
	l.losning = func(_ *rapid.Packet, resultat *journalpost.Resultat) any {
		return map[string]any{
			"journalpostId":        resultat.JournalpostID,
			"journalførtTidspunkt": time.Now().Format(time.RFC3339Nano),
		}
	}
	return l
}
