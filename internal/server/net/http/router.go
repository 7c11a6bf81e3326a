// Package http реализует маршрутизацию HTTP-слоя сервера AdHub.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - порядок middleware: request id, логирование, recover, CORS, метрики, JWT, rate limit;
//   - публикацию /metrics и /healthz.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Altair788/AdHub/internal/server/api"
	"github.com/Altair788/AdHub/internal/server/config"
	"github.com/Altair788/AdHub/internal/server/metrics"
	"github.com/Altair788/AdHub/internal/server/middleware"
)

// Options: необязательные части роутера. Нулевое значение выключает всё.
type Options struct {
	// TrustProxy включает разбор X-Forwarded-For / X-Real-IP.
	TrustProxy bool
	CORS       config.CORSConfig
	// Metrics и MetricsPath публикуют метрики Prometheus.
	Metrics     *metrics.HTTP
	MetricsPath string
	RateLimiter *middleware.RateLimiter
}

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Публичные маршруты: регистрация, подтверждение почты, сброс пароля, логин,
// refresh и список объявлений. Токен разбирается для всех запросов (Authenticate),
// остальные маршруты требуют его до чтения тела (RequireAuthenticated).
// Права автора и администратора проверяет сервисный слой.
func NewRouter(h *api.Handler, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware(h.Log))
	r.Use(chimw.Recoverer)

	if opts.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORS.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders: []string{"Link"},
			MaxAge:         opts.CORS.MaxAge,
		}))
	}

	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, opts.Metrics.Handler())
	}

	r.Get("/healthz", h.Healthz)

	r.Group(func(r chi.Router) {
		// access токен необязателен, но если есть: должен быть валиден
		r.Use(h.Verifier.Authenticate)
		// rate limit после аутентификации, чтобы ключ "user" видел пользователя
		if opts.RateLimiter != nil {
			r.Use(opts.RateLimiter.Middleware)
		}

		r.Route("/users", func(r chi.Router) {
			// Публичные пути
			r.Post("/register", h.Register)
			r.Get("/email-confirm/{token}", h.ConfirmEmail)
			r.Post("/password-reset", h.PasswordReset)
			r.Post("/password-reset-confirm", h.PasswordResetConfirm)
			r.Post("/password-reset-confirm/{uid}/{token}", h.PasswordResetConfirm)
			r.Post("/login", h.Login)
			r.Post("/token/refresh", h.Refresh)

			// защищённые пути
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuthenticated)
				r.Get("/", h.ListUsers)
				r.Get("/me", h.Me)
				r.Get("/{id}", h.GetUser)
				r.Put("/{id}", h.UpdateUser)
				r.Patch("/{id}", h.UpdateUser)
				r.Delete("/{id}", h.DeleteUser)
			})
		})

		r.Route("/ads", func(r chi.Router) {
			r.Get("/", h.ListAds)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuthenticated)
				r.Post("/", h.CreateAd)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.GetAd)
					r.Put("/", h.ReplaceAd)
					r.Patch("/", h.PatchAd)
					r.Delete("/", h.DeleteAd)
				})
			})
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Use(middleware.RequireAuthenticated)
			r.Get("/", h.ListReviews)
			r.Post("/", h.CreateReview)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetReview)
				r.Put("/", h.ReplaceReview)
				r.Patch("/", h.PatchReview)
				r.Delete("/", h.DeleteReview)
			})
		})
	})

	return r
}
