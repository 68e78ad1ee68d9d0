package main

import (
	"log"
	"net/http"

	_ "causajusta/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"causajusta/internal/cache"
	"causajusta/internal/config"
	"causajusta/internal/db"
	"causajusta/internal/gate"
	"causajusta/internal/handler"
	"causajusta/internal/model"
	"causajusta/internal/repository"
	"causajusta/internal/router"
	"causajusta/internal/service"
	"causajusta/internal/session"
	"causajusta/internal/upstream"
)

// @title Causa Justa Web API
// @version 1.0
// @description Web tier for the Causa Justa donation platform: session management, campaign creation gating, and proxying to the core REST API.
// @host localhost:5000
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.CampaignDraft{},
		&model.GateEvent{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	client := upstream.New(cfg.APIBaseURL, cfg.UpstreamTimeout)

	sessions := session.NewStore(cacheClient, cfg.SessionTTL)
	cookies := session.NewCookieCodec(cfg.SessionSecret, cfg.SessionTTL, cfg.CookieDomain, cfg.CookieSecure)

	// Repositories
	draftRepo := repository.NewDraftRepository(gormDB)
	gateEventRepo := repository.NewGateEventRepository(gormDB)

	// Services
	draftService := service.NewDraftService(draftRepo)
	auditService := service.NewAuditService(gateEventRepo)
	ratesService := service.NewRatesService(client, cacheClient)

	campaignGate := gate.New(sessions, client, client, auditService)

	// Handlers
	authHandler := handler.NewAuthHandler(client, sessions, cookies)
	gateHandler := handler.NewGateHandler(campaignGate, sessions, cookies)
	campaignHandler := handler.NewCampaignHandler(client, sessions, ratesService)
	draftHandler := handler.NewDraftHandler(draftService)
	paymentHandler := handler.NewPaymentHandler(client, sessions)
	profileHandler := handler.NewProfileHandler(client, sessions)
	dashboardHandler := handler.NewDashboardHandler(client, sessions)
	adminHandler := handler.NewAdminHandler(client, sessions, auditService)

	router.Register(
		e,
		cfg,
		sessions,
		cookies,
		authHandler,
		gateHandler,
		campaignHandler,
		draftHandler,
		paymentHandler,
		profileHandler,
		dashboardHandler,
		adminHandler,
	)

	var swaggerURL string
	if cfg.SwaggerHost != "" {
		if len(cfg.SwaggerHost) >= 7 && cfg.SwaggerHost[:7] == "http://" {
			swaggerURL = cfg.SwaggerHost + "/swagger/index.html"
		} else if len(cfg.SwaggerHost) >= 8 && cfg.SwaggerHost[:8] == "https://" {
			swaggerURL = cfg.SwaggerHost + "/swagger/index.html"
		} else {
			swaggerURL = "http://" + cfg.SwaggerHost + "/swagger/index.html"
		}
	} else {
		swaggerURL = "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	}
	log.Printf("Swagger documentation available at: %s", swaggerURL)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
