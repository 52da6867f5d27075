// package main provides the entry point for the correlator-backend
// microservice: feed ingestion, asset correlation, alert dispatch and the
// REST/GraphQL API surface.
package main

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/cybersecalert/correlator-backend/database"
	"github.com/cybersecalert/correlator-backend/engine"
	"github.com/cybersecalert/correlator-backend/enrich"
	"github.com/cybersecalert/correlator-backend/events/modules/alerts"
	"github.com/cybersecalert/correlator-backend/feed"
	"github.com/cybersecalert/correlator-backend/internal/api"
	"github.com/cybersecalert/correlator-backend/internal/scheduler"
	"github.com/cybersecalert/correlator-backend/matcher"
	"github.com/cybersecalert/correlator-backend/notify"
	"github.com/cybersecalert/correlator-backend/util"
)

func main() {
	logger := database.InitLogger()

	// Initialize database connection
	db := database.InitializeDatabase()

	// Feed sources: NVD is always registered, MSRC and an OSV mirror are
	// opt-in via environment
	sources := []feed.Source{feed.NewNVDSource(util.GetEnvDefault("NVD_API_KEY", ""))}
	if util.GetEnvDefault("MSRC_ENABLED", "true") == "true" {
		sources = append(sources, feed.NewMSRCSource())
	}
	if osvURL := util.GetEnvDefault("OSV_MIRROR_URL", ""); osvURL != "" {
		sources = append(sources, feed.NewOSVMirrorSource(osvURL))
	}
	registry := feed.NewRegistry(logger, sources...)

	// Matcher with optional alias overrides
	m := matcher.New()
	if aliasPath := util.GetEnvDefault("ALIAS_FILE", ""); aliasPath != "" {
		if err := m.LoadAliasFile(aliasPath); err != nil {
			logger.Sugar().Warnf("Failed to load alias file %s: %v", aliasPath, err)
		}
	}

	// Notification channel defaults; tenants can override the webhooks
	dispatcher := notify.NewDispatcher(notify.Defaults{
		MailDomain:     util.GetEnvDefault("MAILGUN_DOMAIN", ""),
		MailAPIKey:     util.GetEnvDefault("MAILGUN_API_KEY", ""),
		MailFrom:       util.GetEnvDefault("MAIL_FROM", "alerts@cybersecalert.io"),
		ChatWebhookURL: util.GetEnvDefault("CHAT_WEBHOOK_URL", ""),
		WebhookURL:     util.GetEnvDefault("GENERIC_WEBHOOK_URL", ""),
		SIEMHECURL:     util.GetEnvDefault("SIEM_HEC_URL", ""),
		SIEMHECToken:   util.GetEnvDefault("SIEM_HEC_TOKEN", ""),
	}, logger)

	// Optional Kafka event publisher
	var events engine.EventPublisher
	if brokers := util.GetEnvDefault("KAFKA_BROKERS", ""); brokers != "" {
		topic := util.GetEnvDefault("KAFKA_ALERT_TOPIC", "alert-events")
		producer := alerts.NewAlertProducer(strings.Split(brokers, ","), topic)
		defer producer.Close()
		events = producer
		logger.Sugar().Infof("Kafka alert events enabled on topic %s", topic)
	}

	vulnWindow, _ := strconv.Atoi(util.GetEnvDefault("VULN_WINDOW_HOURS", "6"))
	advisoryWindow, _ := strconv.Atoi(util.GetEnvDefault("ADVISORY_WINDOW_DAYS", "1"))

	eng := engine.New(
		registry,
		m,
		enrich.NewNVDProvider(util.GetEnvDefault("NVD_API_KEY", "")),
		dispatcher,
		database.NewAlertStore(db),
		database.NewAssetInventory(db),
		database.NewAuditSink(db),
		events,
		logger,
		engine.Config{
			VulnWindowHours:    vulnWindow,
			AdvisoryWindowDays: advisoryWindow,
		},
	)

	// Background scheduler
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go scheduler.Run(ctx, eng, scheduler.Interval(), logger)

	// Create Fiber app
	app := api.NewFiberApp(db, eng)

	// Get port from environment or default to 3000
	port := util.GetEnvDefault("MS_PORT", "3000")

	// Start server
	log.Printf("Starting server on port %s", port)
	log.Printf("GraphQL endpoint available at /api/v1/graphql")
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
