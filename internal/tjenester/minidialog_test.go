package tjenester

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navikt/dp-behov-journalforing/internal/journalpost"
	"github.com/navikt/dp-behov-journalforing/internal/rapid"
)

func TestMinidialogJournalfores(t *testing.T) {
	arkiv := ferdigArkiv()
	testRapid := rapid.NewTestRapid()
	testRapid.Register(Minidialog(arkiv, nil, testLogger()))

	require.NoError(t, testRapid.SendTestMessage(minidialogMelding("behov-1")))

	require.Len(t, arkiv.opprettelser, 1)
	opprettelse := arkiv.opprettelser[0]
	assert.Equal(t, "12345678910", opprettelse.Ident)
	assert.Equal(t, "behov-1", opprettelse.EksternReferanseID)
	assert.Equal(t, "Minidialog om arbeidssøk", opprettelse.Tittel)
	assert.True(t, opprettelse.ForsokFerdigstill)

	require.Len(t, opprettelse.Dokumenter, 1)
	dokument := opprettelse.Dokumenter[0]
	assert.Equal(t, "MINI-01", dokument.Brevkode)
	assert.Equal(t, "Minidialog om arbeidssøk", dokument.Tittel)
	require.Len(t, dokument.Varianter, 2)
	assert.True(t, dokument.Varianter[0].Equal(journalpost.Variant{
		Filtype:        journalpost.FiltypeJSON,
		Format:         journalpost.FormatOriginal,
		FysiskDokument: []byte(`{"svar": true}`),
	}))
	assert.True(t, dokument.Varianter[1].Equal(journalpost.Variant{
		Filtype:        journalpost.FiltypePDFA,
		Format:         journalpost.FormatArkiv,
		FysiskDokument: []byte("pdf-innhold"),
	}))

	require.Equal(t, 1, testRapid.Size())
	losning := testRapid.Field(0, "@løsning").(map[string]any)
	assert.Equal(t, "467010363", losning["JournalføreMinidialog"])
	assert.Equal(t, "behov-1", testRapid.Field(0, "@behovId"), "løsningen publiseres på originalmeldingen")
}

func TestMinidialogUgyldigPdf(t *testing.T) {
	arkiv := ferdigArkiv()
	testRapid := rapid.NewTestRapid()
	testRapid.Register(Minidialog(arkiv, nil, testLogger()))

	err := testRapid.SendTestMessage(`{
		"@event_name": "behov",
		"@behovId": "behov-1",
		"@behov": ["JournalføreMinidialog"],
		"ident": "12345678910",
		"JournalføreMinidialog": {"skjemakode": "MINI-01", "dialog_uuid": "d", "tittel": "t", "json": "{}", "pdf": "ikke base64!!"}
	}`)

	require.Error(t, err)
	assert.Empty(t, arkiv.opprettelser)
}
