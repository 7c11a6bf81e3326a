package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Altair788/AdHub/internal/server/metrics"
)

// Metrics считает запросы и их длительность по шаблону маршрута chi,
// чтобы id из пути не раздували число серий.
func Metrics(m *metrics.HTTP) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wr := &ResponseWriter{ResponseWriter: w}
			next.ServeHTTP(wr, r)

			route := "unmatched"
			if rc := chi.RouteContext(r.Context()); rc != nil {
				if p := rc.RoutePattern(); p != "" {
					route = p
				}
			}
			m.Observe(r.Method, route, strconv.Itoa(wr.statusOrOK()), time.Since(start))
		})
	}
}
