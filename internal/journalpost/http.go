package journalpost

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// TokenProvider supplies a bearer token for outbound calls.
type TokenProvider func(ctx context.Context) (string, error)

// StatusError is returned for responses the archive service does not count
// as a created journalpost.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("journalpostapi svarte med status %d: %s", e.StatusCode, e.Body)
}

// Bruker identifies a party on the journalpost, always by fødselsnummer.
type Bruker struct {
	ID     string `json:"id"`
	IDType string `json:"idType"`
}

// Journalpost is the create-request envelope for the archive service.
type Journalpost struct {
	Journalposttype      string               `json:"journalposttype"`
	AvsenderMottaker     Bruker               `json:"avsenderMottaker"`
	Bruker               Bruker               `json:"bruker"`
	Tema                 string               `json:"tema"`
	Kanal                string               `json:"kanal"`
	Tittel               string               `json:"tittel,omitempty"`
	JournalforendeEnhet  string               `json:"journalfoerendeEnhet"`
	EksternReferanseID   string               `json:"eksternReferanseId"`
	Tilleggsopplysninger []Tilleggsopplysning `json:"tilleggsopplysninger,omitempty"`
	Sak                  *Sak                 `json:"sak,omitempty"`
	Dokumenter           []Dokumentpost       `json:"dokumenter"`
}

type Dokumentpost struct {
	Brevkode          string            `json:"brevkode,omitempty"`
	Tittel            string            `json:"tittel,omitempty"`
	Dokumentvarianter []Dokumentvariant `json:"dokumentvarianter"`
}

type Dokumentvariant struct {
	Filtype        Filtype `json:"filtype"`
	Variantformat  Format  `json:"variantformat"`
	FysiskDokument string  `json:"fysiskDokument"`
}

const basePath = "/rest/journalpostapi/v1/journalpost"

// Client talks to the dokarkiv journalpost API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
	log        *logrus.Logger
	maxRetries uint64
}

func NewClient(baseURL string, tokens TokenProvider, log *logrus.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		tokens:     tokens,
		log:        log,
		maxRetries: 5,
	}
}

// Opprett builds the standard inbound envelope and submits it. Supplementary
// values with a blank verdi are sent as "UKJENT", which the archive service
// requires.
func (c *Client) Opprett(ctx context.Context, o Opprettelse) (*Resultat, error) {
	tilleggsopplysninger := make([]Tilleggsopplysning, 0, len(o.Tilleggsopplysninger))
	for _, t := range o.Tilleggsopplysninger {
		if t.Verdi == "" {
			t.Verdi = "UKJENT"
		}
		tilleggsopplysninger = append(tilleggsopplysninger, t)
	}

	bruker := Bruker{ID: o.Ident, IDType: "FNR"}
	jp := Journalpost{
		Journalposttype:      "INNGAAENDE",
		AvsenderMottaker:     bruker,
		Bruker:               bruker,
		Tema:                 "DAG",
		Kanal:                "NAV_NO",
		Tittel:               o.Tittel,
		JournalforendeEnhet:  "9999",
		EksternReferanseID:   o.EksternReferanseID,
		Tilleggsopplysninger: tilleggsopplysninger,
		Sak:                  o.Sak,
		Dokumenter:           tilDokumentposter(o.Dokumenter),
	}
	return c.OpprettJournalpost(ctx, o.ForsokFerdigstill, jp)
}

// OpprettJournalpost submits a caller-built envelope. Both 201 and 409 count
// as success: dokarkiv runs duplicate control on eksternReferanseId, so a
// conflict means an earlier attempt already created the journalpost.
func (c *Client) OpprettJournalpost(ctx context.Context, forsokFerdigstill bool, jp Journalpost) (*Resultat, error) {
	body, err := json.Marshal(jp)
	if err != nil {
		return nil, fmt.Errorf("serialisering av journalpost: %w", err)
	}

	url := fmt.Sprintf("%s%s?forsoekFerdigstill=%t", c.baseURL, basePath, forsokFerdigstill)

	var retryCount int
	resultat, err := backoff.RetryWithData(func() (*Resultat, error) {
		res, err := c.post(ctx, url, body, jp.EksternReferanseID, retryCount)
		retryCount++
		if err != nil {
			var statusErr *StatusError
			// Client errors are caller bugs, only transient failures retry.
			if errors.As(err, &statusErr) && statusErr.StatusCode < 500 {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return res, nil
	}, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx))
	if err != nil {
		return nil, err
	}

	c.log.WithField("behovId", jp.EksternReferanseID).
		Infof("opprettet journalpost med id %s", resultat.JournalpostID)
	return resultat, nil
}

func (c *Client) post(ctx context.Context, url string, body []byte, korrelasjonID string, retryCount int) (*Resultat, error) {
	token, err := c.tokens(ctx)
	if err != nil {
		return nil, fmt.Errorf("henting av token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Correlation-Id", korrelasjonID)
	req.Header.Set("X-Nav-Consumer", "dp-behov-journalforing")
	req.Header.Set("x-retry-count", strconv.Itoa(retryCount))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusConflict {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var resultat Resultat
	if err := json.Unmarshal(respBody, &resultat); err != nil {
		return nil, fmt.Errorf("lesing av svar fra journalpostapi: %w", err)
	}
	return &resultat, nil
}

func tilDokumentposter(dokumenter []Dokument) []Dokumentpost {
	poster := make([]Dokumentpost, 0, len(dokumenter))
	for _, d := range dokumenter {
		varianter := make([]Dokumentvariant, 0, len(d.Varianter))
		for _, v := range d.Varianter {
			varianter = append(varianter, Dokumentvariant{
				Filtype:        v.Filtype,
				Variantformat:  v.Format,
				FysiskDokument: base64.StdEncoding.EncodeToString(v.FysiskDokument),
			})
		}
		poster = append(poster, Dokumentpost{
			Brevkode:          d.Brevkode,
			Tittel:            d.Tittel,
			Dokumentvarianter: varianter,
		})
	}
	return poster
}
