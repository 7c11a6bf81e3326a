package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Altair788/AdHub/internal/server/api"
	"github.com/Altair788/AdHub/internal/server/config"
	"github.com/Altair788/AdHub/internal/server/metrics"
	"github.com/Altair788/AdHub/internal/server/middleware"
	"github.com/Altair788/AdHub/internal/server/models"
	"github.com/Altair788/AdHub/internal/server/service"
	svcmocks "github.com/Altair788/AdHub/internal/server/service/mocks"
	"github.com/Altair788/AdHub/internal/shared/logger"
)

func newRouter(t *testing.T, opts Options) (http.Handler, *svcmocks.MockAdsRepo) {
	t.Helper()

	ctrl := gomock.NewController(t)
	ads := svcmocks.NewMockAdsRepo(ctrl)

	cfg := &config.Config{
		Auth: config.AuthConfig{
			Issuer:     "issuer",
			Audience:   "audience",
			AccessTTL:  time.Minute,
			RefreshTTL: time.Hour,
			JWT:        config.JWTConfig{SigningKey: "supersecretkeysupersecretkey123456"},
		},
		Pagination: config.PaginationConfig{PageSize: 4, MaxPageSize: 4},
	}
	svc := service.NewServices(service.Repositories{
		Users:    svcmocks.NewMockUsersRepo(ctrl),
		Sessions: svcmocks.NewMockSessionsRepo(ctrl),
		Ads:      ads,
		Reviews:  svcmocks.NewMockReviewsRepo(ctrl),
		Health:   svcmocks.NewMockHealthRepo(ctrl),
	}, service.Deps{Mailer: svcmocks.NewMockMailer(ctrl)}, cfg)

	log := logger.NewNop()
	verifier := middleware.NewJWTVerifier(cfg.Auth.JWT.SigningKey, cfg.Auth.Issuer, cfg.Auth.Audience, svc.Accounts)
	return NewRouter(api.NewHandler(svc, log, verifier, api.Options{}), opts), ads
}

func TestRouter_ListAds_WithMetrics(t *testing.T) {
	m := metrics.New()
	r, ads := newRouter(t, Options{Metrics: m, MetricsPath: "/metrics"})

	ads.EXPECT().List(gomock.Any(), gomock.Any(), models.PageRequest{Page: 1, Size: 4}).Return(models.Page[models.Ad]{}, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ads", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `route="/ads`)
}

func TestRouter_UnknownRoute(t *testing.T) {
	r, _ := newRouter(t, Options{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no-such-route", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_BadTokenOnPublicRoute(t *testing.T) {
	r, _ := newRouter(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/ads", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	r, _ := newRouter(t, Options{CORS: config.CORSConfig{
		Enabled:        true,
		AllowedOrigins: []string{"https://adhub.example"},
		MaxAge:         300,
	}})

	req := httptest.NewRequest(http.MethodOptions, "/ads", nil)
	req.Header.Set("Origin", "https://adhub.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, "https://adhub.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_RateLimit(t *testing.T) {
	r, ads := newRouter(t, Options{RateLimiter: middleware.NewRateLimiter(0.001, 1, "ip", nil)})

	ads.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.Page[models.Ad]{}, nil)

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ads", nil))
		require.Equal(t, want, rec.Code, "request %d", i)
	}
}
