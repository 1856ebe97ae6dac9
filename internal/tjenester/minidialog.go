package tjenester

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/navikt/dp-behov-journalforing/internal/journalpost"
	"github.com/navikt/dp-behov-journalforing/internal/rapid"
)

// BehovMinidialog archives one answered minidialog as a single document
// with the raw json and the rendered pdf as variants.
const BehovMinidialog = "JournalføreMinidialog"

type minidialogBehov struct {
	Ident string `json:"ident"`
	Behov struct {
		Skjemakode string `json:"skjemakode"`
		DialogID   string `json:"dialog_uuid"`
		Tittel     string `json:"tittel"`
		JSON       string `json:"json"`
		PDF        string `json:"pdf"`
	} `json:"JournalføreMinidialog"`
}

// Minidialog builds the løser for minidialoger.
func Minidialog(api journalpost.API, skip []string, log *logrus.Logger) *Loser {
	l := &Loser{
		def: Definisjon{
			Behov:           BehovMinidialog,
			KrevEventName:   true,
			NokkelKrav:      []string{"@behovId", "ident"},
			BehovNokkelKrav: []string{"skjemakode", "dialog_uuid", "tittel", "json", "pdf"},
			SkipBehovID:     skipSett(skip),
		},
		api: api,
		log: log,
	}
	l.assemble = func(ctx context.Context, p *rapid.Packet) (*innsending, error) {
		var behov minidialogBehov
		if err := p.Dekod(&behov); err != nil {
			return nil, fmt.Errorf("lesing av behov: %w", err)
		}

		pdf, err := base64.StdEncoding.DecodeString(behov.Behov.PDF)
		if err != nil {
			return nil, fmt.Errorf("dekoding av pdf: %w", err)
		}

		dokument := journalpost.Dokument{
			Brevkode: behov.Behov.Skjemakode,
			Tittel:   behov.Behov.Tittel,
			Varianter: []journalpost.Variant{
				{Filtype: journalpost.FiltypeJSON, Format: journalpost.FormatOriginal, FysiskDokument: []byte(behov.Behov.JSON)},
				{Filtype: journalpost.FiltypePDFA, Format: journalpost.FormatArkiv, FysiskDokument: pdf},
			},
		}

		return &innsending{opprettelse: &journalpost.Opprettelse{
			Ident:              behov.Ident,
			Dokumenter:         []journalpost.Dokument{dokument},
			EksternReferanseID: p.BehovID(),
			ForsokFerdigstill:  true,
			Tittel:             behov.Behov.Tittel,
		}}, nil
	}
	l.losning = func(_ *rapid.Packet, resultat *journalpost.Resultat) any {
		return resultat.JournalpostID
	}
	return l
}
