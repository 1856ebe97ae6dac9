// Package journalpost holds the document model and the client for the
// dokarkiv journalpost API.
package journalpost

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
)

// Filtype is the physical file format of a document variant.
type Filtype string

const (
	FiltypePDF  Filtype = "PDF"
	FiltypePDFA Filtype = "PDFA"
	FiltypeJPEG Filtype = "JPEG"
	FiltypeTIFF Filtype = "TIFF"
	FiltypeJSON Filtype = "JSON"
	FiltypePNG  Filtype = "PNG"
)

// ParseFiltype maps the wire value to a Filtype, rejecting unknown values.
func ParseFiltype(s string) (Filtype, error) {
	switch Filtype(s) {
	case FiltypePDF, FiltypePDFA, FiltypeJPEG, FiltypeTIFF, FiltypeJSON, FiltypePNG:
		return Filtype(s), nil
	}
	return "", fmt.Errorf("ukjent filtype %q", s)
}

// Format is the archival role of a document variant.
type Format string

const (
	FormatArkiv       Format = "ARKIV"
	FormatOriginal    Format = "ORIGINAL"
	FormatFullversjon Format = "FULLVERSJON"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatArkiv, FormatOriginal, FormatFullversjon:
		return Format(s), nil
	}
	return "", fmt.Errorf("ukjent variantformat %q", s)
}

// Variant is one physical rendition of a document.
type Variant struct {
	Filtype        Filtype
	Format         Format
	FysiskDokument []byte
}

// Equal compares file type, format and byte content.
func (v Variant) Equal(o Variant) bool {
	return v.Filtype == o.Filtype &&
		v.Format == o.Format &&
		bytes.Equal(v.FysiskDokument, o.FysiskDokument)
}

// String leaves the document content out of logs, only its size.
func (v Variant) String() string {
	return fmt.Sprintf("Variant(filtype=%s, format=%s, størrelse=%s)",
		v.Filtype, v.Format, PrettyFileSize(int64(len(v.FysiskDokument))))
}

// Dokument is one logical archival unit with at least one variant.
type Dokument struct {
	Brevkode  string
	Tittel    string
	Varianter []Variant
}

// Sak links a journalpost to a case in a downstream case system.
type Sak struct {
	Sakstype     string `json:"sakstype"`
	FagsakID     string `json:"fagsakId,omitempty"`
	Fagsaksystem string `json:"fagsakSystem,omitempty"`
}

// Tilleggsopplysning is a supplementary key/value attached to a journalpost.
type Tilleggsopplysning struct {
	Nokkel string `json:"nokkel"`
	Verdi  string `json:"verdi"`
}

// Resultat is the archive service's answer to a create request.
type Resultat struct {
	JournalpostID string         `json:"journalpostId"`
	Ferdigstilt   bool           `json:"journalpostferdigstilt"`
	Dokumenter    []DokumentInfo `json:"dokumenter"`
	Melding       string         `json:"melding"`
}

type DokumentInfo struct {
	DokumentInfoID string `json:"dokumentInfoId"`
}

// ErrIkkeFerdigstilt signals that the journalpost was created but not
// finalized. Callers asking for finalization must treat this as failure.
var ErrIkkeFerdigstilt = errors.New("journalpost ble ikke ferdigstilt")

// Opprettelse describes a structured create request for an inbound
// journalpost. The subject is set as both sender and bruker.
type Opprettelse struct {
	Ident                string
	Dokumenter           []Dokument
	EksternReferanseID   string
	Tilleggsopplysninger []Tilleggsopplysning
	ForsokFerdigstill    bool
	Tittel               string
	Sak                  *Sak
}

// API creates journalposter in the archive service. Opprett builds the
// standard inbound envelope; OpprettJournalpost submits a caller-built
// envelope for the cases where direction or routing differs.
type API interface {
	Opprett(ctx context.Context, o Opprettelse) (*Resultat, error)
	OpprettJournalpost(ctx context.Context, forsokFerdigstill bool, jp Journalpost) (*Resultat, error)
}

// PrettyFileSize renders a byte count for logging.
func PrettyFileSize(size int64) string {
	if size <= 0 {
		return "0 B"
	}
	units := []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}
	group := int(math.Log10(float64(size)) / math.Log10(1024))
	if group >= len(units) {
		group = len(units) - 1
	}
	return fmt.Sprintf("%.1f %s", float64(size)/math.Pow(1024, float64(group)), units[group])
}
