package journalpost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFiltype(t *testing.T) {
	for _, gyldig := range []string{"PDF", "PDFA", "JPEG", "TIFF", "JSON", "PNG"} {
		filtype, err := ParseFiltype(gyldig)
		require.NoError(t, err)
		assert.Equal(t, Filtype(gyldig), filtype)
	}

	_, err := ParseFiltype("DOCX")
	assert.Error(t, err)
	_, err = ParseFiltype("pdf")
	assert.Error(t, err, "wire values are uppercase")
}

func TestParseFormat(t *testing.T) {
	for _, gyldig := range []string{"ARKIV", "ORIGINAL", "FULLVERSJON"} {
		format, err := ParseFormat(gyldig)
		require.NoError(t, err)
		assert.Equal(t, Format(gyldig), format)
	}

	_, err := ParseFormat("SLADDET")
	assert.Error(t, err)
}

func TestVariantEqual(t *testing.T) {
	a := Variant{Filtype: FiltypePDF, Format: FormatArkiv, FysiskDokument: []byte("innhold")}
	b := Variant{Filtype: FiltypePDF, Format: FormatArkiv, FysiskDokument: []byte("innhold")}
	assert.True(t, a.Equal(b))

	b.FysiskDokument = []byte("annet innhold")
	assert.False(t, a.Equal(b))

	b = a
	b.Format = FormatOriginal
	assert.False(t, a.Equal(b))
}

func TestVariantStringSkjulerInnhold(t *testing.T) {
	v := Variant{Filtype: FiltypePDF, Format: FormatArkiv, FysiskDokument: []byte("sensitivt innhold")}
	s := v.String()
	assert.NotContains(t, s, "sensitivt")
	assert.Contains(t, s, "PDF")
	assert.Contains(t, s, "ARKIV")
}

func TestPrettyFileSize(t *testing.T) {
	assert.Equal(t, "0 B", PrettyFileSize(0))
	assert.Equal(t, "500.0 B", PrettyFileSize(500))
	assert.Equal(t, "1.0 KB", PrettyFileSize(1024))
	assert.Equal(t, "1.5 MB", PrettyFileSize(1572864))
}

func TestTittel(t *testing.T) {
	assert.Equal(t, "Søknad om dagpenger (ikke permittert)", Tittel("NAV 04-01.03"))
	assert.Equal(t, "Ettersendelse til klage", Tittel("NAVe 90-00.08"))
	assert.Equal(t, "Generell innsending", Tittel("GENERELL_INNSENDING"))
	assert.Equal(t, "Arbeidsavtale", Tittel("O2"))
	assert.Equal(t, UkjentTittel, Tittel("NAV 99-99.99"))
}
