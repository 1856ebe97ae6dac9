package tjenester

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/navikt/dp-behov-journalforing/internal/journalpost"
	"github.com/navikt/dp-behov-journalforing/internal/rapid"
)

// BehovMeldekort archives one meldekort on the bruker's dagpenger fagsak.
const BehovMeldekort = "JournalføreMeldekort"

type meldekortBehov struct {
	Ident string `json:"ident"`
	Behov struct {
		MeldekortID          string      `json:"meldekortId"`
		SakID                string      `json:"sakId"`
		Brevkode             string      `json:"brevkode"`
		Tittel               string      `json:"tittel"`
		JSON                 string      `json:"json"`
		PDF                  string      `json:"pdf"`
		Tilleggsopplysninger [][2]string `json:"tilleggsopplysninger"`
	} `json:"JournalføreMeldekort"`
}

// Meldekort builds the løser for meldekort.
func Meldekort(api journalpost.API, skip []string, log *logrus.Logger) *Loser {
	l := &Loser{
		def: Definisjon{
			Behov:           BehovMeldekort,
			KrevEventName:   true,
			NokkelKrav:      []string{"@behovId", "ident"},
			BehovNokkelKrav: []string{"meldekortId", "sakId", "brevkode", "tittel", "json", "pdf", "tilleggsopplysninger"},
			SkipBehovID:     skipSett(skip),
		},
		api: api,
		log: log,
	}
	l.assemble = func(ctx context.Context, p *rapid.Packet) (*innsending, error) {
		var behov meldekortBehov
		if err := p.Dekod(&behov); err != nil {
			return nil, fmt.Errorf("lesing av behov: %w", err)
		}
		opprettelse, err := inlineInnsending(p, behov.Ident, behov.Behov.Brevkode, behov.Behov.Tittel,
			behov.Behov.JSON, behov.Behov.PDF, behov.Behov.Tilleggsopplysninger)
		if err != nil {
			return nil, err
		}
		opprettelse.Sak = &journalpost.Sak{
			Sakstype:     "FAGSAK",
			FagsakID:     behov.Behov.SakID,
			Fagsaksystem: "DAGPENGER",
		}
		return &innsending{opprettelse: opprettelse}, nil
	}
	l.losning = func(_ *rapid.Packet, resultat *journalpost.Resultat) any {
		return resultat.JournalpostID
	}
	return l
}
