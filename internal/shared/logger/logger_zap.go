// Package logger содержит общий логгер для server и agent.
//
// Пакет предоставляет Zap-логгер, настроенный на запись в файл с ротацией
// (lumberjack), и удобный метод для логирования HTTP-запросов.
package logger

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// HTTPLogger представляет обёртку над zap.Logger для логирования HTTP-событий.
//
// Встраивание *zap.Logger позволяет использовать все методы zap напрямую.
// Redact включает маскирование email в полях лога (см. Email).
type HTTPLogger struct {
	*zap.Logger
	Redact bool
}

// Options описывает, куда и в каком виде писать логи.
type Options struct {
	Dir         string // каталог для файла, по умолчанию runtime/logs
	File        string // имя файла, по умолчанию http.log
	Level       string // debug|info|warn|error
	Format      string // console|json
	Stdout      bool   // дублировать ли в stdout
	Development bool
	Redact      bool
}

// NewHTTPLogger создаёт файловый zap-логгер для HTTP-логов с настройками по умолчанию.
//
// Логи записываются в файл runtime/logs/http.log.
// Для файлов включена ротация (MaxSize/MaxBackups/MaxAge) и сжатие архивов.
// Формат времени: "HH:MM:SS DD.MM.YYYY".
func NewHTTPLogger() *HTTPLogger {
	return New(Options{})
}

// New создаёт логгер по опциям из конфига.
func New(opts Options) *HTTPLogger {
	if opts.Dir == "" {
		opts.Dir = filepath.Join("runtime", "logs")
	}
	if opts.File == "" {
		opts.File = "http.log"
	}
	_ = os.MkdirAll(opts.Dir, 0755)

	// lumberjack отвечает за ротацию файлов
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(opts.Dir, opts.File),
		MaxSize:    100, // MB
		MaxBackups: 10,
		MaxAge:     30, // дней
		Compress:   true,
	})
	if opts.Stdout {
		writer = zapcore.NewMultiWriteSyncer(writer, zapcore.AddSync(os.Stdout))
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = customTimeEncoder

	encoder := zapcore.NewConsoleEncoder(encoderCfg)
	if strings.EqualFold(opts.Format, "json") {
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	core := zapcore.NewCore(encoder, writer, parseLevel(opts.Level))

	zopts := []zap.Option{zap.AddCaller()}
	if opts.Development {
		zopts = append(zopts, zap.Development())
	}

	return &HTTPLogger{Logger: zap.New(core, zopts...), Redact: opts.Redact}
}

// NewNop возвращает логгер, который ничего не пишет. Удобно в тестах.
func NewNop() *HTTPLogger {
	return &HTTPLogger{Logger: zap.NewNop()}
}

// LogRequest записывает структурированный лог об HTTP-запросе.
//
// duration: длительность обработки в миллисекундах.
// Уровень зависит от статуса: 5xx пишется как error, 4xx как warn, остальное как info.
// extra добавляется к стандартным полям (request_id, route и т.п.).
func (logger *HTTPLogger) LogRequest(method, uri string, status, responseSize int, duration float64, extra ...zap.Field) {
	fields := append([]zap.Field{
		zap.String("method", method),
		zap.String("uri", uri),
		zap.Int("status", status),
		zap.Int("response_size", responseSize),
		zap.Float64("duration_ms", duration),
	}, extra...)

	switch {
	case status >= 500:
		logger.Error("HTTP request", fields...)
	case status >= 400:
		logger.Warn("HTTP request", fields...)
	default:
		logger.Info("HTTP request", fields...)
	}
}

// Email возвращает zap-поле с адресом почты, замаскированным при включённом Redact.
func (logger *HTTPLogger) Email(email string) zap.Field {
	if logger.Redact {
		return zap.String("email", RedactEmail(email))
	}
	return zap.String("email", email)
}

func parseLevel(s string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(s))); err != nil || s == "" {
		return zap.InfoLevel
	}
	return lvl
}

// customTimeEncoder форматирует время для логов в виде "HH:MM:SS DD.MM.YYYY".
func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05 02.01.2006"))
}
