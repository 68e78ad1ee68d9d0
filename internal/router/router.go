package router

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"causajusta/internal/config"
	"causajusta/internal/gate"
	"causajusta/internal/handler"
	"causajusta/internal/session"
	"causajusta/internal/upstream"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	sessions *session.Store,
	cookies *session.CookieCodec,
	authHandler *handler.AuthHandler,
	gateHandler *handler.GateHandler,
	campaignHandler *handler.CampaignHandler,
	draftHandler *handler.DraftHandler,
	paymentHandler *handler.PaymentHandler,
	profileHandler *handler.ProfileHandler,
	dashboardHandler *handler.DashboardHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = handler.NewCustomValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/campaigns", campaignHandler.Browse)
	api.GET("/campaigns/fee-breakdown", campaignHandler.FeeBreakdown)
	api.GET("/campaigns/:id", campaignHandler.Get)
	api.GET("/stats/platform", dashboardHandler.PlatformStats)
	api.POST("/gate/start-campaign", gateHandler.StartCampaign)

	// Secured routes. The cookie gate rejects requests whose session
	// cookie is missing or has a bad signature before any Redis work,
	// then Resolve loads the session record behind it.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.SessionSecret),
		TokenLookup: "cookie:" + session.CookieName,
	}), session.Resolve(sessions, cookies))

	secured.GET("/auth/me", authHandler.Me)
	secured.POST("/auth/change-password", authHandler.ChangePassword)
	secured.POST("/auth/update-role", authHandler.UpdateRole)
	secured.POST("/gate/change-role", gateHandler.ChangeRole)

	secured.GET("/profile", profileHandler.Get)
	secured.PATCH("/profile", profileHandler.Update)
	secured.POST("/profile/picture", profileHandler.UploadPicture)

	secured.GET("/payments/status", paymentHandler.Status)
	secured.GET("/payments/connect", paymentHandler.Connect)

	// Beneficiary routes
	beneficiary := secured.Group("", gate.RequireRole(upstream.RoleBeneficiary))
	beneficiary.GET("/campaigns/my", campaignHandler.My)
	beneficiary.POST("/campaigns", campaignHandler.Create)
	beneficiary.PATCH("/campaigns/:id", campaignHandler.Update)
	beneficiary.POST("/campaigns/images/upload", campaignHandler.UploadImages)
	beneficiary.PATCH("/profile/beneficiary", profileHandler.UpdateBeneficiary)
	beneficiary.GET("/donations/received", dashboardHandler.DonationsReceived)
	beneficiary.GET("/stats/beneficiary", dashboardHandler.BeneficiaryStats)
	beneficiary.POST("/drafts", draftHandler.Save)
	beneficiary.GET("/drafts", draftHandler.List)
	beneficiary.GET("/drafts/:id", draftHandler.Get)
	beneficiary.DELETE("/drafts/:id", draftHandler.Delete)

	// Donor routes
	donor := secured.Group("", gate.RequireRole(upstream.RoleDonor))
	donor.PATCH("/profile/donor", profileHandler.UpdateDonor)
	donor.GET("/donations/made", dashboardHandler.DonationsMade)

	// Admin routes
	admin := secured.Group("/admin", gate.RequireRole(upstream.RoleAdmin))
	admin.GET("/campaigns", adminHandler.List)
	admin.GET("/campaigns/:id", adminHandler.Get)
	admin.PATCH("/campaigns/:id/verify", adminHandler.Verify)
	admin.PATCH("/campaigns/:id/reject", adminHandler.Reject)
	admin.GET("/gate-events", adminHandler.GateEvents)
}
