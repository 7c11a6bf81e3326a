// Логирование HTTP-запросов
package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Altair788/AdHub/internal/shared/logger"
)

// ResponseWriter запоминает статус и размер ответа для access-лога и метрик.
type ResponseWriter struct {
	http.ResponseWriter
	Status int
	Size   int
}

func (w *ResponseWriter) WriteHeader(status int) {
	if w.Status == 0 {
		w.Status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if w.Status == 0 {
		w.Status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.Size += n
	return n, err
}

// Unwrap нужен http.ResponseController (Flush, SetWriteDeadline).
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// statusOrOK: обработчик, ничего не записавший, отвечает 200.
func (w *ResponseWriter) statusOrOK() int {
	if w.Status == 0 {
		return http.StatusOK
	}
	return w.Status
}

// LoggerMiddleware пишет access-лог каждого запроса.
//
// К стандартным полям добавляются request_id (если выше стоит chi RequestID),
// шаблон маршрута и адрес клиента. nil-логгер заменяется файловым по умолчанию.
func LoggerMiddleware(loggerHTTP *logger.HTTPLogger) func(http.Handler) http.Handler {
	if loggerHTTP == nil {
		loggerHTTP = logger.NewHTTPLogger()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wr := &ResponseWriter{ResponseWriter: w}
			next.ServeHTTP(wr, r)

			extra := []zap.Field{zap.String("remote_ip", r.RemoteAddr)}
			if id := chimw.GetReqID(r.Context()); id != "" {
				extra = append(extra, zap.String("request_id", id))
			}
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				extra = append(extra, zap.String("route", rc.RoutePattern()))
			}

			duration := float64(time.Since(start).Microseconds()) / 1000
			loggerHTTP.LogRequest(r.Method, r.RequestURI, wr.statusOrOK(), wr.Size, duration, extra...)
		})
	}
}
