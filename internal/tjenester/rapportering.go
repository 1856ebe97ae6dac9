package tjenester

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/navikt/dp-behov-journalforing/internal/journalpost"
	"github.com/navikt/dp-behov-journalforing/internal/rapid"
)

// BehovRapportering archives one rapporteringsperiode on a generell sak.
const BehovRapportering = "JournalføreRapportering"

type rapporteringBehov struct {
	Ident string `json:"ident"`
	Behov struct {
		PeriodeID            string      `json:"periodeId"`
		Brevkode             string      `json:"brevkode"`
		Tittel               string      `json:"tittel"`
		JSON                 string      `json:"json"`
		PDF                  string      `json:"pdf"`
		Tilleggsopplysninger [][2]string `json:"tilleggsopplysninger"`
	} `json:"JournalføreRapportering"`
}

// Rapportering builds the løser for rapporteringsperioder. svelgFeil lists
// behovIds whose submission failures are logged and dropped instead of
// aborting the run.
func Rapportering(api journalpost.API, skip, svelgFeil []string, log *logrus.Logger) *Loser {
	l := &Loser{
		def: Definisjon{
			Behov:            BehovRapportering,
			KrevEventName:    true,
			NokkelKrav:       []string{"@behovId", "ident"},
			BehovNokkelKrav:  []string{"periodeId", "brevkode", "tittel", "json", "pdf", "tilleggsopplysninger"},
			SkipBehovID:      skipSett(skip),
			SvelgFeilBehovID: skipSett(svelgFeil),
		},
		api: api,
		log: log,
	}
	l.assemble = func(ctx context.Context, p *rapid.Packet) (*innsending, error) {
		var behov rapporteringBehov
		if err := p.Dekod(&behov); err != nil {
			return nil, fmt.Errorf("lesing av behov: %w", err)
		}
		opprettelse, err := inlineInnsending(p, behov.Ident, behov.Behov.Brevkode, behov.Behov.Tittel,
			behov.Behov.JSON, behov.Behov.PDF, behov.Behov.Tilleggsopplysninger)
		if err != nil {
			return nil, err
		}
		opprettelse.Sak = &journalpost.Sak{Sakstype: "GENERELL_SAK"}
		return &innsending{opprettelse: opprettelse}, nil
	}
	l.losning = func(_ *rapid.Packet, resultat *journalpost.Resultat) any {
		return resultat.JournalpostID
	}
	return l
}

// inlineInnsending builds the one-document submission shared by the kinds
// that carry json and pdf inline on the behov.
func inlineInnsending(p *rapid.Packet, ident, brevkode, tittel, rawJSON, rawPDF string, tilleggsopplysninger [][2]string) (*journalpost.Opprettelse, error) {
	pdf, err := base64.StdEncoding.DecodeString(rawPDF)
	if err != nil {
		return nil, fmt.Errorf("dekoding av pdf: %w", err)
	}

	opplysninger := make([]journalpost.Tilleggsopplysning, 0, len(tilleggsopplysninger))
	for _, par := range tilleggsopplysninger {
		opplysninger = append(opplysninger, journalpost.Tilleggsopplysning{Nokkel: par[0], Verdi: par[1]})
	}

	dokument := journalpost.Dokument{
		Brevkode: brevkode,
		Tittel:   tittel,
		Varianter: []journalpost.Variant{
			{Filtype: journalpost.FiltypeJSON, Format: journalpost.FormatOriginal, FysiskDokument: []byte(rawJSON)},
			{Filtype: journalpost.FiltypePDFA, Format: journalpost.FormatArkiv, FysiskDokument: pdf},
		},
	}

	return &journalpost.Opprettelse{
		Ident:                ident,
		Dokumenter:           []journalpost.Dokument{dokument},
		EksternReferanseID:   p.BehovID(),
		Tilleggsopplysninger: opplysninger,
		ForsokFerdigstill:    true,
		Tittel:               tittel,
	}, nil
}
