package tjenester

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navikt/dp-behov-journalforing/internal/journalpost"
	"github.com/navikt/dp-behov-journalforing/internal/rapid"
)

const soknadPdfMelding = `{
	"@event_name": "behov",
	"@behovId": "behov-1",
	"@behov": ["journalfør_søknad_pdf_og_vedlegg"],
	"søknadId": "soknad-123",
	"ident": "12345678910",
	"type": "NY_DIALOG",
	"journalfør_søknad_pdf_og_vedlegg": {
		"hovedDokument": {
			"skjemakode": "04-01.03",
			"varianter": [
				{"filnavn": "soknad.pdf", "urn": "urn:vedlegg:soknad-123/soknad.pdf", "variant": "ARKIV", "type": "PDF"},
				{"filnavn": "soknad.json", "urn": "", "json": "{\"seksjoner\": []}", "variant": "ORIGINAL", "type": "JSON"}
			]
		},
		"dokumenter": []
	}
}`

func TestSoknadPdfOgVedleggJournalfores(t *testing.T) {
	arkiv := ferdigArkiv()
	lager := &fakeFillager{filer: map[string][]byte{"soknad-123/soknad.pdf": []byte("pdf-innhold")}}

	testRapid := rapid.NewTestRapid()
	testRapid.Register(SoknadPdfOgVedlegg(arkiv, lager, nil, testLogger()))

	require.NoError(t, testRapid.SendTestMessage(soknadPdfMelding))

	require.Len(t, arkiv.opprettelser, 1)
	opprettelse := arkiv.opprettelser[0]
	assert.Equal(t, "behov-1", opprettelse.EksternReferanseID)
	assert.True(t, opprettelse.ForsokFerdigstill)

	require.Len(t, opprettelse.Dokumenter, 1)
	hoved := opprettelse.Dokumenter[0]
	assert.Equal(t, "NAV 04-01.03", hoved.Brevkode)
	require.Len(t, hoved.Varianter, 2)
	assert.True(t, hoved.Varianter[0].Equal(journalpost.Variant{
		Filtype:        journalpost.FiltypePDF,
		Format:         journalpost.FormatArkiv,
		FysiskDokument: []byte("pdf-innhold"),
	}))
	assert.Equal(t, journalpost.FiltypeJSON, hoved.Varianter[1].Filtype)
	assert.Equal(t, journalpost.FormatOriginal, hoved.Varianter[1].Format)
	assert.Equal(t, `"{\"seksjoner\": []}"`, string(hoved.Varianter[1].FysiskDokument),
		"innholdet sendes som json-kodet streng, slik mottaker forventer")

	require.Equal(t, 1, testRapid.Size())
	losning := testRapid.Field(0, "@løsning").(map[string]any)
	svar := losning["journalfør_søknad_pdf_og_vedlegg"].(map[string]any)
	assert.Equal(t, "467010363", svar["journalpostId"])
	assert.NotEmpty(t, svar["journalførtTidspunkt"])
}

func TestSoknadPdfOgVedleggKreverEventName(t *testing.T) {
	arkiv := ferdigArkiv()
	lager := &fakeFillager{}

	testRapid := rapid.NewTestRapid()
	testRapid.Register(SoknadPdfOgVedlegg(arkiv, lager, nil, testLogger()))

	require.NoError(t, testRapid.SendTestMessage(`{
		"@behovId": "behov-1",
		"@behov": ["journalfør_søknad_pdf_og_vedlegg"],
		"søknadId": "soknad-123",
		"ident": "12345678910",
		"type": "NY_DIALOG",
		"journalfør_søknad_pdf_og_vedlegg": {"hovedDokument": {"skjemakode": "04-01.03", "varianter": []}, "dokumenter": []}
	}`))

	assert.Empty(t, arkiv.opprettelser)
}

func TestSoknadPdfOgVedleggUkjentVariant(t *testing.T) {
	arkiv := ferdigArkiv()
	lager := &fakeFillager{filer: map[string][]byte{"soknad-123/soknad.pdf": []byte("pdf")}}

	testRapid := rapid.NewTestRapid()
	testRapid.Register(SoknadPdfOgVedlegg(arkiv, lager, nil, testLogger()))

	err := testRapid.SendTestMessage(`{
		"@event_name": "behov",
		"@behovId": "behov-1",
		"@behov": ["journalfør_søknad_pdf_og_vedlegg"],
		"søknadId": "soknad-123",
		"ident": "12345678910",
		"type": "NY_DIALOG",
		"journalfør_søknad_pdf_og_vedlegg": {
			"hovedDokument": {
				"skjemakode": "04-01.03",
				"varianter": [{"filnavn": "s.pdf", "urn": "urn:vedlegg:soknad-123/soknad.pdf", "variant": "SLADDET", "type": "PDF"}]
			},
			"dokumenter": []
		}
	}`)

	require.Error(t, err)
	assert.Empty(t, arkiv.opprettelser)
}
