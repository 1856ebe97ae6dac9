package tjenester

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/navikt/dp-behov-journalforing/internal/fillager"
	"github.com/navikt/dp-behov-journalforing/internal/journalpost"
)

// dokumentJSON is the inbound shape of one document with its variant
// references.
type dokumentJSON struct {
	Skjemakode string        `json:"skjemakode"`
	Varianter  []variantJSON `json:"varianter"`
}

type variantJSON struct {
	Filnavn string  `json:"filnavn"`
	URN     string  `json:"urn"`
	JSON    *string `json:"json"`
	Variant string  `json:"variant"`
	Type    string  `json:"type"`
}

// hentDokument resolves one document: variants carrying inline json are
// encoded directly, the rest are fetched from the fillager. Fetches for the
// document run concurrently and are all joined before anything is submitted.
func hentDokument(ctx context.Context, lager fillager.Fillager, ident string, dok dokumentJSON, brevkode string) (journalpost.Dokument, error) {
	varianter := make([]journalpost.Variant, len(dok.Varianter))

	g, gctx := errgroup.WithContext(ctx)
	for i, v := range dok.Varianter {
		i, v := i, v
		g.Go(func() error {
			filtype, err := journalpost.ParseFiltype(v.Type)
			if err != nil {
				return err
			}
			format, err := journalpost.ParseFormat(v.Variant)
			if err != nil {
				return err
			}

			var innhold []byte
			if v.JSON != nil {
				innhold, err = json.Marshal(*v.JSON)
				if err != nil {
					return err
				}
			} else {
				ref, err := fillager.ParseFilURN(v.URN)
				if err != nil {
					return err
				}
				innhold, err = lager.HentFil(gctx, ref, ident)
				if err != nil {
					return err
				}
			}

			varianter[i] = journalpost.Variant{
				Filtype:        filtype,
				Format:         format,
				FysiskDokument: innhold,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return journalpost.Dokument{}, err
	}

	return journalpost.Dokument{
		Brevkode:  brevkode,
		Tittel:    journalpost.Tittel(brevkode),
		Varianter: varianter,
	}, nil
}

// brevkodeFor derives the main document's brevkode from the innsending type.
// Generelle innsendinger keep their skjemakode as-is.
func brevkodeFor(innsendingstype, skjemakode string) (string, error) {
	if skjemakode == "GENERELL_INNSENDING" {
		return skjemakode, nil
	}
	switch innsendingstype {
	case "NY_DIALOG":
		return "NAV " + skjemakode, nil
	case "ETTERSENDING_TIL_DIALOG":
		return "NAVe " + skjemakode, nil
	}
	return "", fmt.Errorf("ukjent innsendingstype %q", innsendingstype)
}

func skipSett(behovIDer []string) map[string]bool {
	sett := make(map[string]bool, len(behovIDer))
	for _, id := range behovIDer {
		sett[id] = true
	}
	return sett
}
