package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"audio-marketplace/internal/apperr"
	"audio-marketplace/internal/config"
	"audio-marketplace/internal/handler"
	"audio-marketplace/internal/middleware"
	"audio-marketplace/internal/service"
)

type Server struct {
	echo               *echo.Echo
	logger             *zap.Logger
	audioHandler       *handler.AudioHandler
	checkoutHandler    *handler.CheckoutHandler
	customAudioHandler *handler.CustomAudioHandler
	taxonomyHandler    *handler.TaxonomyHandler
	reportHandler      *handler.ReportHandler
	authHandler        *handler.AuthHandler
	authService        service.AuthService
}

type Services struct {
	Catalog       service.CatalogService
	Checkout      service.CheckoutService
	CustomRequest service.CustomRequestService
	Taxonomy      service.TaxonomyService
	Report        service.ReportService
	Auth          service.AuthService
}

func NewServer(svcs Services, authCfg *config.Auth, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(requestLogger(logger))

	s := &Server{
		echo:               e,
		logger:             logger,
		audioHandler:       handler.NewAudioHandler(svcs.Catalog),
		checkoutHandler:    handler.NewCheckoutHandler(svcs.Checkout),
		customAudioHandler: handler.NewCustomAudioHandler(svcs.CustomRequest),
		taxonomyHandler:    handler.NewTaxonomyHandler(svcs.Taxonomy),
		reportHandler:      handler.NewReportHandler(svcs.Report),
		authHandler:        handler.NewAuthHandler(svcs.Auth, authCfg),
		authService:        svcs.Auth,
	}

	e.HTTPErrorHandler = s.handleError
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	requireAdmin := []echo.MiddlewareFunc{
		middleware.Authenticate(s.authService),
		middleware.RequireAdmin(),
	}

	// -------- auth --------
	auth := api.Group("/auth")
	auth.POST("/register", s.authHandler.Register)
	auth.POST("/login", s.authHandler.Login)
	auth.POST("/logout", s.authHandler.Logout)
	auth.GET("/verify", s.authHandler.Verify)
	auth.GET("/users", s.authHandler.GetAllUsers, requireAdmin...)
	auth.PUT("/change-password", s.authHandler.ChangePassword, middleware.Authenticate(s.authService))

	// -------- taxonomy --------
	categories := api.Group("/categories")
	categories.GET("", s.taxonomyHandler.GetCategories)
	categories.POST("", s.taxonomyHandler.CreateCategory, requireAdmin...)
	categories.PUT("/:id", s.taxonomyHandler.UpdateCategory, requireAdmin...)
	categories.DELETE("/:id", s.taxonomyHandler.DeleteCategory, requireAdmin...)

	subCategories := api.Group("/subcategories")
	subCategories.GET("", s.taxonomyHandler.GetSubCategories)
	subCategories.GET("/category/:id", s.taxonomyHandler.GetSubCategoriesByCategory)
	subCategories.POST("", s.taxonomyHandler.CreateSubCategory, requireAdmin...)
	subCategories.PUT("/:id", s.taxonomyHandler.UpdateSubCategory, requireAdmin...)
	subCategories.DELETE("/:id", s.taxonomyHandler.DeleteSubCategory, requireAdmin...)

	// -------- free catalog --------
	freeAudio := api.Group("/free-audio")
	freeAudio.GET("", s.audioHandler.GetFreeAudios)
	freeAudio.POST("", s.audioHandler.AddFreeAudio, requireAdmin...)
	freeAudio.PUT("/:id", s.audioHandler.UpdateFreeAudio, requireAdmin...)
	freeAudio.DELETE("/:id", s.audioHandler.DeleteFreeAudio, requireAdmin...)
	freeAudio.POST("/send-free-audio", s.audioHandler.SendFreeAudio)
	freeAudio.GET("/reports", s.reportHandler.FreeAudioReports, requireAdmin...)

	// -------- paid catalog & checkout --------
	paidAudio := api.Group("/paid-audio")
	paidAudio.GET("", s.audioHandler.GetPaidAudios)
	paidAudio.POST("", s.audioHandler.AddPaidAudio, requireAdmin...)
	paidAudio.PUT("/:id", s.audioHandler.UpdatePaidAudio, requireAdmin...)
	paidAudio.DELETE("/:id", s.audioHandler.DeletePaidAudio, requireAdmin...)
	paidAudio.POST("/create-checkout-session", s.checkoutHandler.CreatePaidSession)
	paidAudio.GET("/confirm-payment", s.checkoutHandler.ConfirmPaidPayment)
	paidAudio.GET("/reports", s.reportHandler.PaidAudioReports, requireAdmin...)

	// -------- custom audio requests --------
	customAudio := api.Group("/custom-audio")
	customAudio.POST("", s.customAudioHandler.CreateRequest)
	customAudio.GET("", s.customAudioHandler.ListRequests, requireAdmin...)
	customAudio.PUT("/:id", s.customAudioHandler.UpdateRequest, requireAdmin...)
	customAudio.POST("/create-checkout-session", s.checkoutHandler.CreateCustomSession)
	customAudio.POST("/confirm-payment", s.checkoutHandler.ConfirmCustomPayment)
	customAudio.GET("/reports", s.reportHandler.CustomAudioReports, requireAdmin...)
}

// handleError translates classified service errors into the JSON shape the
// frontend expects. Echo's own HTTPErrors pass through with their status.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	body := map[string]interface{}{"error": "Internal server error"}

	switch e := err.(type) {
	case *echo.HTTPError:
		status = e.Code
		body["error"] = e.Message
	case *apperr.Error:
		status = apperr.HTTPStatus(e)
		body["error"] = e.Message
		if (e.Kind == apperr.KindUpstream || e.Kind == apperr.KindMail) && e.Details() != "" {
			body["details"] = e.Details()
		}
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	if jsonErr := c.JSON(status, body); jsonErr != nil {
		s.logger.Error("error response write failed", zap.Error(jsonErr))
	}
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	})
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
