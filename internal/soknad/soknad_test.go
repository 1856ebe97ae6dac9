package soknad

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navikt/dp-behov-journalforing/internal/journalpost"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestHentJSONSoknad(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/soknad-123/ferdigstilt/fakta", r.URL.Path)
		assert.Equal(t, "Bearer hunter2", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"fakta": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, func(context.Context) (string, error) { return "hunter2", nil }, testLogger())
	variant, err := client.HentJSONSoknad(context.Background(), "soknad-123")

	require.NoError(t, err)
	assert.Equal(t, journalpost.FiltypeJSON, variant.Filtype)
	assert.Equal(t, journalpost.FormatOriginal, variant.Format)
	assert.Equal(t, []byte(`{"fakta": []}`), variant.FysiskDokument)
}

func TestHentJSONSoknadFeil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "ikke ferdigstilt", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, func(context.Context) (string, error) { return "hunter2", nil }, testLogger())
	_, err := client.HentJSONSoknad(context.Background(), "soknad-123")

	var statusErr *journalpost.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}
