package fillager

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

// HTTPFillager fetches attachments over dp-mellomlagring's REST API. Every
// call is a fresh fetch, nothing is cached.
type HTTPFillager struct {
	baseURL    string
	httpClient *http.Client
	tokens     journalpost.TokenProvider
	log        *logrus.Logger
}

func NewHTTPFillager(baseURL string, tokens journalpost.TokenProvider, log *logrus.Logger) *HTTPFillager {
	return &HTTPFillager{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: time.Minute},
		tokens:     tokens,
		log:        log,
	}
}

func (f *HTTPFillager) HentFil(ctx context.Context, ref FilURN, eier string) ([]byte, error) {
	token, err := f.tokens(ctx)
	if err != nil {
		return nil, fmt.Errorf("henting av token: %w", err)
	}

	url := fmt.Sprintf("%s/v1/mellomlagring/vedlegg/%s", f.baseURL, ref.Fil())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Eier", eier)
	if id := rapid.KorrelasjonsID(ctx); id != "" {
		req.Header.Set("X-Correlation-Id", id)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("henting av fil %s: %w", ref.Fil(),
			&journalpost.StatusError{StatusCode: resp.StatusCode, Body: string(body)})
	}

	f.log.Debugf("hentet fil %s (%s)", ref.Fil(), journalpost.PrettyFileSize(int64(len(body))))
	return body, nil
}
