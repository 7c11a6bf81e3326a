// Package main содержит точку входа серверного приложения AdHub.
//
// Пакет отвечает за инициализацию и жизненный цикл HTTP(S)-сервера, а именно:
//   - загрузку переменных окружения из файла .env (если он присутствует);
//   - загрузку конфигурации сервера (ADHUB_CONFIG или ./configs/server.yaml);
//   - инициализацию подключения к базе данных и применение миграций;
//   - сборку репозиториев, кэша, почты, сервисов, middleware и HTTP-обработчиков;
//   - создание администратора из секции bootstrap;
//   - запуск сервера по HTTP или HTTPS с заданными таймаутами;
//   - обработку системных сигналов завершения (SIGINT, SIGTERM, SIGQUIT);
//   - корректное (graceful) завершение работы сервера с таймаутом.
//
// Пакет не содержит бизнес-логики и не предназначен для unit-тестирования.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Altair788/AdHub/internal/server/api"
	"github.com/Altair788/AdHub/internal/server/cache"
	"github.com/Altair788/AdHub/internal/server/config"
	"github.com/Altair788/AdHub/internal/server/mail"
	"github.com/Altair788/AdHub/internal/server/metrics"
	"github.com/Altair788/AdHub/internal/server/middleware"
	h "github.com/Altair788/AdHub/internal/server/net/http"
	"github.com/Altair788/AdHub/internal/server/repository"
	"github.com/Altair788/AdHub/internal/server/service"
	"github.com/Altair788/AdHub/internal/shared/logger"
)

func main() {
	boot := logger.NewHTTPLogger().Sugar()

	if err := godotenv.Load(); err != nil {
		boot.Warnf("no .env file loaded, error: %v", err)
	}

	cfg, err := config.Load(config.PathFromEnv())
	if err != nil {
		boot.Fatal(err)
	}

	httpLogger := logger.New(logger.Options{
		Dir:         cfg.Log.Dir,
		File:        cfg.Log.File,
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Stdout:      cfg.Log.Stdout,
		Development: cfg.Log.Development,
		Redact:      cfg.Log.Redact.Enabled,
	})
	defer httpLogger.Sync()
	sugar := httpLogger.Sugar()

	// создаём контекст и errgroup
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	// подключаем базу данных
	if err := config.Init(ctx, cfg, httpLogger); err != nil {
		sugar.Fatal(err)
	}
	db := config.GetDB()
	defer db.Close()

	// кэш карточек объявлений: без redis работаем напрямую с БД
	var adCache service.AdCache = cache.Noop{}
	if cfg.Cache.Enabled {
		rc, err := cache.NewRedis(ctx, cfg.Cache)
		if err != nil {
			sugar.Fatal(err)
		}
		defer rc.Close()
		adCache = rc
	}

	// почта
	sender, err := mail.NewSender(ctx, cfg.Mail, httpLogger)
	if err != nil {
		sugar.Fatal(err)
	}
	notifier := mail.NewNotifier(sender, cfg.Mail.From, mail.NewTemplates())

	repos := service.Repositories{
		Users:    repository.NewUsersRepository(db),
		Sessions: repository.NewSessionsRepository(db),
		Ads:      repository.NewAdsRepository(db),
		Reviews:  repository.NewReviewsRepository(db),
		Health:   repository.NewHealthRepository(db),
	}
	svc := service.NewServices(repos, service.Deps{
		Mailer: notifier,
		Cache:  adCache,
		Log:    httpLogger,
	}, cfg)

	if cfg.Bootstrap.AdminEmail != "" {
		admin, err := svc.Auth.EnsureAdmin(ctx, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword)
		if err != nil {
			sugar.Fatalf("bootstrap admin: %v", err)
		}
		httpLogger.Info("admin account ready", zap.Int64("user_id", admin.ID))
	}

	// роль и активность пользователя middleware перечитывает через AccountsService
	verifier := middleware.NewJWTVerifier(
		cfg.Auth.JWT.SigningKey,
		cfg.Auth.Issuer,
		cfg.Auth.Audience,
		svc.Accounts,
	)
	handler := api.NewHandler(svc, httpLogger, verifier, api.Options{
		PublicURL:    cfg.Recovery.PublicURL,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	})

	opts := h.Options{
		TrustProxy: cfg.Server.TrustProxy,
		CORS:       cfg.Security.CORS,
	}
	if cfg.Observability.Metrics.Enabled {
		opts.Metrics = metrics.New()
		opts.MetricsPath = cfg.Observability.Metrics.Path
	}
	if rl := cfg.Security.RateLimit; rl.Enabled {
		opts.RateLimiter = middleware.NewRateLimiter(rl.RPS, rl.Burst, rl.Key, httpLogger)
	}
	router := h.NewRouter(handler, opts)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}
	if cfg.TLS.Enabled {
		server.TLSConfig = &tls.Config{MinVersion: tlsVersion(cfg.TLS.MinVersion)}
	}

	g, ctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		sugar.Infof("server started on %s (tls=%t)", addr, cfg.TLS.Enabled)

		var err error
		if cfg.TLS.Enabled {
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			cfg.Server.ShutdownTimeout,
		)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единая обработка ошибок
	if err := g.Wait(); err != nil {
		sugar.Fatalf("server stopped with error: %v", err)
	}
	sugar.Info("server gracefully stopped")
}

func tlsVersion(v string) uint16 {
	if v == "1.3" {
		return tls.VersionTLS13
	}
	return tls.VersionTLS12
}
