package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/navikt/dp-behov-journalforing/internal/broker"
	"github.com/navikt/dp-behov-journalforing/internal/config"
	"github.com/navikt/dp-behov-journalforing/internal/fillager"
	"github.com/navikt/dp-behov-journalforing/internal/journalpost"
	"github.com/navikt/dp-behov-journalforing/internal/rapid"
	"github.com/navikt/dp-behov-journalforing/internal/soknad"
	"github.com/navikt/dp-behov-journalforing/internal/tjenester"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logg := cfg.Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupGracefulShutdown(cancel, logg)

	journalpostAPI := journalpost.NewClient(cfg.DokarkivURL, config.StaticToken(cfg.DokarkivToken), logg)
	lager := fillager.NewHTTPFillager(cfg.MellomlagringURL, config.StaticToken(cfg.MellomlagringToken), logg)
	fakta := soknad.NewClient(cfg.SoknadURL, config.StaticToken(cfg.SoknadToken), logg)

	r := rapid.New(broker.NewReader(cfg), broker.NewWriter(cfg), logg)
	defer r.Close()

	r.Register(
		tjenester.NyJournalpost(journalpostAPI, lager, fakta, cfg.SkipNyJournalpost, logg),
		tjenester.SoknadPdfOgVedlegg(journalpostAPI, lager, nil, logg),
		tjenester.Ettersending(journalpostAPI, lager, nil, logg),
		tjenester.Minidialog(journalpostAPI, nil, logg),
		tjenester.Rapportering(journalpostAPI, cfg.SkipRapportering, cfg.SvelgFeilRapportering, logg),
		tjenester.Meldekort(journalpostAPI, nil, logg),
		tjenester.Vedtaksbrev(journalpostAPI, lager, cfg.SkipVedtaksbrev, logg),
	)

	logg.Infof("starter dp-behov-journalforing mot %v", cfg.KafkaBrokers)
	if err := r.Run(ctx); err != nil {
		// Exit and let the platform restart us; the message is redelivered.
		logg.Fatalf("behandling stanset: %v", err)
	}
	logg.Info("dp-behov-journalforing stoppet")
}

func setupGracefulShutdown(cancel context.CancelFunc, logg *logrus.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigCh
		logg.Infof("mottok signal %v, avslutter", s)
		cancel()
	}()
}
