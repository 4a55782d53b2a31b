package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"medoffice-booking/internal/domain/user"
	"medoffice-booking/internal/handler/api"
	"medoffice-booking/internal/handler/middleware"
	"medoffice-booking/internal/pkg/config"
	"medoffice-booking/internal/pkg/metrics"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth     *api.AuthHandler
	Room     *api.RoomHandler
	Booking  *api.BookingHandler
	Payment  *api.PaymentHandler
	Metrics  *api.MetricsHandler
	AuthMw   *middleware.AuthMiddleware
	Recorder *metrics.Metrics
	Logger   *slog.Logger
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers) {
	setupMiddleware(engine, cfg, h)
	setupRoutes(engine, cfg, h)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, h Handlers) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.RequestLogger(h.Logger))
	if cfg.Metrics.Enabled {
		engine.Use(middleware.Metrics(h.Recorder))
	}
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h Handlers) {
	engine.GET("/health", healthCheck)

	if cfg.Metrics.Enabled {
		engine.GET(cfg.Metrics.Path, h.Metrics.Serve)
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := h.AuthMw.RequireAuth()

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(requireAuth)
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		rooms := apiGroup.Group("/rooms")
		{
			addRoutes(rooms, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Room.List, Mw: []gin.HandlerFunc{h.AuthMw.OptionalAuth()}},
				{Method: http.MethodGet, Path: "/availability", Handler: h.Room.Availability},
				{Method: http.MethodGet, Path: "/:id/slots", Handler: h.Room.CheckSlot},
				{Method: http.MethodGet, Path: "/:id/monthly-dates", Handler: h.Room.MonthlyDates},
				{
					Method:  http.MethodPost,
					Path:    "",
					Handler: h.Room.Create,
					Mw:      []gin.HandlerFunc{requireAuth, h.AuthMw.RequireRoleAtLeast(user.RoleAdmin)},
				},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(requireAuth)
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "/quote", Handler: h.Booking.Quote},
				{Method: http.MethodPost, Path: "", Handler: h.Booking.Commit},
				{Method: http.MethodGet, Path: "/history", Handler: h.Booking.History},
				{Method: http.MethodGet, Path: "/draft", Handler: h.Booking.GetDraft},
				{Method: http.MethodPut, Path: "/draft", Handler: h.Booking.SaveDraft},
				{Method: http.MethodDelete, Path: "/draft", Handler: h.Booking.DiscardDraft},
			})
		}

		payments := apiGroup.Group("/payments")
		payments.Use(requireAuth)
		{
			addRoutes(payments, []route{
				{Method: http.MethodPost, Path: "/intent", Handler: h.Payment.CreateIntent},
			})
		}

		// authenticated by signature, not by user token
		webhooks := apiGroup.Group("/webhooks")
		{
			addRoutes(webhooks, []route{
				{Method: http.MethodPost, Path: "/payment", Handler: h.Payment.Webhook},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
