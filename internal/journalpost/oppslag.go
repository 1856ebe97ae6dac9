package journalpost

// UkjentTittel is used when a brevkode has no registered title.
const UkjentTittel = "Ukjent dokumentittel"

var titler = map[string]string{
	"NAV 04-01.03":        "Søknad om dagpenger (ikke permittert)",
	"NAVe 04-01.03":       "Ettersendelse til søknad om dagpenger (ikke permittert)",
	"NAV 04-01.04":        "Søknad om dagpenger ved permittering",
	"NAVe 04-01.04":       "Ettersendelse til søknad om dagpenger ved permittering",
	"NAV 04-16.03":        "Søknad om gjenopptak av dagpenger (ikke permittert)",
	"NAVe 04-16.03":       "Ettersendelse til søknad om gjenopptak av dagpenger (ikke permittert)",
	"NAV 04-16.04":        "Søknad om gjenopptak av dagpenger ved permittering",
	"NAVe 04-16.04":       "Ettersendelse til søknad om gjenopptak av dagpenger ved permittering",
	"NAV 04-06.05":        "Søknad om godkjenning av utdanning med rett til dagpenger",
	"NAVe 04-06.05":       "Ettersendelse til søknad om godkjenning av utdanning med rett til dagpenger",
	"NAV 04-06.08":        "Søknad om dagpenger under etablering av egen virksomhet",
	"NAVe 04-06.08":       "Ettersendelse til søknad om dagpenger under etablering av egen virksomhet",
	"NAV 90-00.08":        "Klage",
	"NAVe 90-00.08":       "Ettersendelse til klage",
	"GENERELL_INNSENDING": "Generell innsending",
	"O2":                  "Arbeidsavtale",
	"M6":                  "Timelister",
	"M7":                  "Brev fra bobestyrer eller konkursforvalter",
	"S6":                  "Dokumentasjon av sluttårsak",
	"S7":                  "Kopi av arbeidsavtale eller sluttårsak",
	"T3":                  "Tjenestebevis",
	"T8":                  "Sjøfartsbok eller hyreavregning",
	"V6":                  "Dokumentasjon av andre ytelser",
	"X8":                  "Fødselsattest eller bostedsbevis for barn under 18 år",
	"K1":                  "Uttalelse eller vurdering fra kompetent fagpersonell",
}

// Tittel looks up the display title for a brevkode, falling back to
// UkjentTittel for codes that are not in the table.
func Tittel(brevkode string) string {
	if tittel, ok := titler[brevkode]; ok {
		return tittel
	}
	return UkjentTittel
}
