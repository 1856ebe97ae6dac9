// Package soknad retrieves the canonical JSON facts for a finished søknad
// from dp-soknad.
package soknad

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/navikt/dp-behov-journalforing/internal/journalpost"
	"github.com/navikt/dp-behov-journalforing/internal/rapid"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     journalpost.TokenProvider
	log        *logrus.Logger
}

func NewClient(baseURL string, tokens journalpost.TokenProvider, log *logrus.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: time.Minute},
		tokens:     tokens,
		log:        log,
	}
}

// HentJSONSoknad fetches the facts document and wraps it as the original
// JSON variant of the søknad.
func (c *Client) HentJSONSoknad(ctx context.Context, soknadID string) (journalpost.Variant, error) {
	token, err := c.tokens(ctx)
	if err != nil {
		return journalpost.Variant{}, fmt.Errorf("henting av token: %w", err)
	}

	url := fmt.Sprintf("%s/%s/ferdigstilt/fakta", c.baseURL, soknadID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return journalpost.Variant{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if id := rapid.KorrelasjonsID(ctx); id != "" {
		req.Header.Set("X-Correlation-Id", id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return journalpost.Variant{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return journalpost.Variant{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return journalpost.Variant{}, fmt.Errorf("henting av fakta for søknad %s: %w", soknadID,
			&journalpost.StatusError{StatusCode: resp.StatusCode, Body: string(body)})
	}

	return journalpost.Variant{
		Filtype:        journalpost.FiltypeJSON,
		Format:         journalpost.FormatOriginal,
		FysiskDokument: body,
	}, nil
}
