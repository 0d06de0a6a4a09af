package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/steebus/notion-book-fetch/internal/config"
	"github.com/steebus/notion-book-fetch/internal/enrich"
	apphttp "github.com/steebus/notion-book-fetch/internal/http"
	"github.com/steebus/notion-book-fetch/internal/httpx"
	"github.com/steebus/notion-book-fetch/internal/metrics"
	"github.com/steebus/notion-book-fetch/internal/platform/googlebooks"
	"github.com/steebus/notion-book-fetch/internal/platform/notion"
	"github.com/steebus/notion-book-fetch/internal/platform/openlibrary"
	"github.com/steebus/notion-book-fetch/internal/poller"
	"github.com/steebus/notion-book-fetch/internal/resolve"
)

const (
	userAgent    = "notion-book-fetch/1.0"
	providerRPS  = 2
	maxBodyBytes = 1 << 20
	handlerRPS   = 5.0
	handlerBurst = 10
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	m, err := metrics.New()
	if err != nil {
		log.Fatalf("cannot register metrics: %v", err)
	}

	notionClient := notion.NewClient(cfg.NotionAPIKey, cfg.DatabaseID)
	pipeline := resolve.New(
		googlebooks.NewClient(userAgent, providerRPS),
		openlibrary.NewClient(userAgent, providerRPS),
		m,
	)
	service := enrich.NewService(notionClient, pipeline, m)

	if cfg.WebServerMode {
		runServer(cfg, service)
		return
	}
	runPoller(cfg, service, m)
}

func runServer(cfg *config.Config, service *enrich.Service) {
	handler := apphttp.NewEnrichHandler(service, cfg.WebhookSecret)

	router := http.NewServeMux()
	router.HandleFunc("/healthz", apphttp.Healthz)
	router.HandleFunc("/webhook", handler.Webhook)
	router.HandleFunc("/fetch", handler.Fetch)
	metrics.RegisterMetricsHandlers(router)

	rateLimit := httpx.NewRateLimitMiddleware(handlerRPS, handlerBurst)

	var chained http.Handler = router
	chained = httpx.RequestSizeLimitMiddleware(maxBodyBytes)(chained)
	chained = rateLimit.Middleware(chained)
	chained = httpx.SecurityHeadersMiddleware(chained)
	chained = httpx.AccessLogMiddleware(chained)
	chained = httpx.RecoveryMiddleware(chained)
	chained = httpx.RequestIDMiddleware(chained)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: chained,
		// A triggered pass calls out to Notion and two book APIs before
		// the response is written; give it room.
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting server on %s", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func runPoller(cfg *config.Config, service *enrich.Service, m *metrics.Metrics) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := poller.New(service, cfg.CheckInterval, m)
	go func() {
		for err := range p.Errors() {
			log.Printf("pass error: %v", err)
		}
	}()

	p.Start(ctx)
	log.Println("poller stopped")
}
