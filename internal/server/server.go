package server

import (
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"formgate/internal/api/handlers"
	"formgate/internal/api/middleware"
	"formgate/internal/config"
	"formgate/internal/forms"
	"formgate/internal/logging"
	"formgate/internal/mail"
	"formgate/internal/repository"
	"formgate/internal/server/routes"
	"formgate/internal/service"
	"formgate/web"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Server is the HTTP front of the form gateway.
type Server struct {
	router   *gin.Engine
	cfg      *config.Config
	settings repository.SettingsRepository
	mailer   mail.Mailer
}

// NewServer creates a server around an already-initialized settings store and
// mailer. In production mode Gin's own logging is disabled in favor of ours.
func NewServer(cfg *config.Config, settings repository.SettingsRepository, mailer mail.Mailer) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
		gin.DisableConsoleColor()
		gin.DefaultWriter = io.Discard
	}

	router := gin.New()
	router.Use(gin.Recovery())

	return &Server{
		router:   router,
		cfg:      cfg,
		settings: settings,
		mailer:   mailer,
	}
}

// Router exposes the underlying engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start wires middleware, handlers and routes, then listens on the configured
// port.
func (s *Server) Start() error {
	s.Setup()
	return s.router.Run(":" + s.cfg.Port)
}

// Setup registers all middleware and routes without starting the listener.
func (s *Server) Setup() {
	logger := logging.GetGlobalLogger()

	verifier := service.NewRecaptchaService(s.cfg.RecaptchaVerifyURL, s.cfg.RecaptchaMinScore, s.cfg.OutboundTimeout)
	relay := service.NewWebhookService(s.cfg.OutboundTimeout)

	pipelines := make(map[string]*service.Pipeline)
	for _, variant := range forms.All() {
		pipelines[variant.Namespace] = service.NewPipeline(variant, s.settings, verifier, s.mailer, relay)
	}

	h := &routes.Handlers{
		Health:   handlers.NewHealthHandler(s.settings),
		Settings: handlers.NewSettingsHandler(s.settings),
		Forms:    handlers.NewFormsHandler(s.settings),
	}
	for ns, pipeline := range pipelines {
		h.Submissions = append(h.Submissions, routes.SubmissionRoute{
			Namespace: ns,
			Handler:   handlers.NewSubmissionHandler(pipeline),
		})
	}

	m := &routes.Middleware{
		Validation: middleware.NewValidationMiddleware(),
		Admin:      middleware.NewAdminMiddleware(s.cfg.AdminToken),
	}

	s.router.Use(middleware.CORS())
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.RequestLogger())
	if s.cfg.OTLPEndpoint != "" {
		s.router.Use(otelgin.Middleware("formgate"))
	}

	s.setupWebAssets(logger)
	routes.Setup(s.router, h, m)

	logger.Info("Server wired for %d form variants on port %s", len(pipelines), s.cfg.Port)
}

func (s *Server) setupWebAssets(logger *logging.Logger) {
	tmpl, err := template.ParseFS(web.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Error("Failed to parse embedded templates: %v", err)
		return
	}
	s.router.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		logger.Error("Failed to mount static assets: %v", err)
		return
	}
	s.router.StaticFS("/static", http.FS(static))
}
