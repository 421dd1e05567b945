package api

import (
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/zapagente/zapagente/internal/api/handlers"
	"github.com/zapagente/zapagente/internal/api/middleware"
	"github.com/zapagente/zapagente/internal/auth"
	"github.com/zapagente/zapagente/internal/empresa"
	"github.com/zapagente/zapagente/internal/persona"
	"github.com/zapagente/zapagente/internal/relay"
	"gorm.io/gorm"
)

type Router struct {
	chi.Router
}

type RouterConfig struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *slog.Logger
	JWTService     *auth.JWTService
	AuthService    *auth.Service
	EmpresaService *empresa.Service
	PersonaService *persona.Service
	RelayService   *relay.Service
	Templates      *template.Template
	StaticFS       fs.FS
	AsynqClient    *asynq.Client
	AllowedOrigins []string // CORS allowed origins
	RateLimitReqs  int      // Rate limit requests per window
	RateLimitSecs  int      // Rate limit window in seconds
}

func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// Rate limiting - the webhook and auth endpoints are public
	if cfg.RateLimitReqs > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitReqs, cfg.RateLimitSecs))
	}

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:8080"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.Redis)
	authHandler := handlers.NewAuthHandler(cfg.AuthService)
	pageHandler := handlers.NewPageHandler(cfg.AuthService, cfg.EmpresaService, cfg.PersonaService, cfg.Templates)
	personaHandler := handlers.NewPersonaHandler(cfg.EmpresaService, cfg.PersonaService)
	webhookHandler := handlers.NewWebhookHandler(cfg.RelayService, cfg.AsynqClient, cfg.Logger)

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Public pages
	r.Get("/", pageHandler.Home)
	r.Get("/planos", pageHandler.Planos)
	r.Get("/login", pageHandler.LoginPage)
	r.Get("/cadastro", pageHandler.CadastroPage)
	r.Post("/cadastro", pageHandler.CadastroSubmit)

	// Public auth endpoints
	r.Post("/registro", authHandler.Registro)
	r.Post("/login", authHandler.Login)
	r.Post("/login-web", authHandler.LoginWeb)

	// Messaging provider webhook (provider-authenticated externally)
	r.Post("/webhook", webhookHandler.Receive)

	// Session-protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(cfg.JWTService))

		r.Get("/painel", pageHandler.Painel)
		r.Get("/logout", authHandler.Logout)
		r.Get("/treinar_ia", pageHandler.TreinarIA)
		r.Get("/persona_ia", pageHandler.PersonaIA)
		r.Get("/persona_ia/config", personaHandler.Get)
		r.Post("/persona_ia/save", personaHandler.Save)
	})

	// Static files
	if cfg.StaticFS != nil {
		fileServer := http.FileServer(http.FS(cfg.StaticFS))
		r.Handle("/static/*", http.StripPrefix("/static/", fileServer))
	}

	return &Router{r}
}
