package tjenester

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navikt/dp-behov-journalforing/internal/rapid"
)

const ettersendingMelding = `{
	"@event_name": "behov",
	"@behovId": "behov-1",
	"@behov": ["journalfør_ettersending_av_dokumentasjon"],
	"søknadId": "soknad-123",
	"ident": "12345678910",
	"journalfør_ettersending_av_dokumentasjon": {
		"dokumenter": [
			{
				"skjemakode": "O2",
				"varianter": [{"filnavn": "avtale.jpg", "urn": "urn:vedlegg:soknad-123/avtale.jpg", "variant": "ARKIV", "type": "JPEG"}]
			},
			{
				"skjemakode": "T8",
				"varianter": [{"filnavn": "hyre.pdf", "urn": "urn:vedlegg:soknad-123/hyre.pdf", "variant": "ARKIV", "type": "PDF"}]
			}
		],
		"dokumentasjonskravJson": "{\"krav\": [\"O2\"]}",
		"seksjonId": "seksjon-4"
	}
}`

func TestEttersendingJournalfores(t *testing.T) {
	arkiv := ferdigArkiv()
	lager := &fakeFillager{filer: map[string][]byte{
		"soknad-123/avtale.jpg": []byte("jpg-innhold"),
		"soknad-123/hyre.pdf":   []byte("pdf-innhold"),
	}}

	testRapid := rapid.NewTestRapid()
	testRapid.Register(Ettersending(arkiv, lager, nil, testLogger()))

	require.NoError(t, testRapid.SendTestMessage(ettersendingMelding))

	require.Len(t, arkiv.opprettelser, 1)
	opprettelse := arkiv.opprettelser[0]
	assert.True(t, opprettelse.ForsokFerdigstill)
	require.Len(t, opprettelse.Dokumenter, 2)
	assert.Equal(t, "O2", opprettelse.Dokumenter[0].Brevkode)
	assert.Equal(t, "Arbeidsavtale", opprettelse.Dokumenter[0].Tittel)
	assert.Equal(t, "T8", opprettelse.Dokumenter[1].Brevkode)
	assert.Equal(t, "Sjøfartsbok eller hyreavregning", opprettelse.Dokumenter[1].Tittel)

	require.Equal(t, 1, testRapid.Size())
	losning := testRapid.Field(0, "@løsning").(map[string]any)
	svar := losning["journalfør_ettersending_av_dokumentasjon"].(map[string]any)
	assert.Equal(t, "467010363", svar["journalpostId"])
	assert.NotEmpty(t, svar["journalførtTidspunkt"])
	assert.Equal(t, `{"krav": ["O2"]}`, svar["dokumentasjonskravJson"], "kravene sendes tilbake til avsender")
	assert.Equal(t, "seksjon-4", svar["seksjonId"])
}

func TestEttersendingKreverDokumenter(t *testing.T) {
	arkiv := ferdigArkiv()
	testRapid := rapid.NewTestRapid()
	testRapid.Register(Ettersending(arkiv, &fakeFillager{}, nil, testLogger()))

	require.NoError(t, testRapid.SendTestMessage(`{
		"@event_name": "behov",
		"@behovId": "behov-1",
		"@behov": ["journalfør_ettersending_av_dokumentasjon"],
		"søknadId": "soknad-123",
		"ident": "12345678910",
		"journalfør_ettersending_av_dokumentasjon": {"seksjonId": "seksjon-4"}
	}`))

	assert.Empty(t, arkiv.opprettelser)
	assert.Equal(t, 0, testRapid.Size())
}
