// Package api реализует HTTP-слой сервера AdHub.
//
// Пакет отвечает за:
//   - разбор и валидацию входящих запросов (JSON, query, параметры пути);
//   - формирование ответов (JSON, статусы, страницы со ссылками next/previous);
//   - маппинг доменных ошибок (service/repository) в HTTP-коды и сообщения.
//
// Маршруты регистрируются в пакете net/http.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"go.uber.org/zap"

	mw "github.com/Altair788/AdHub/internal/server/middleware"
	"github.com/Altair788/AdHub/internal/server/permission"
	"github.com/Altair788/AdHub/internal/server/service"
	serr "github.com/Altair788/AdHub/internal/shared/errors"
	"github.com/Altair788/AdHub/internal/shared/logger"
	"github.com/Altair788/AdHub/internal/shared/models"
)

// Options: параметры HTTP-слоя, не относящиеся к бизнес-логике.
type Options struct {
	// PublicURL: базовый адрес для ссылок next/previous. Пусто: берём из запроса.
	PublicURL string
	// MaxBodyBytes ограничивает размер тела запроса. 0: без ограничения.
	MaxBodyBytes int64
}

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок;
//   - Verifier: компонент проверки JWT и middleware авторизации;
//   - Validate: валидатор тел запросов по тегам validate.
type Handler struct {
	Svc      *service.Services
	Log      *logger.HTTPLogger
	Verifier *mw.JWTVerifier
	Validate *validator.Validate

	publicURL    string
	maxBodyBytes int64
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
func NewHandler(svc *service.Services, log *logger.HTTPLogger, verifier *mw.JWTVerifier, opts Options) *Handler {
	if log == nil {
		log = logger.NewNop()
	}

	v := validator.New()
	// в сообщениях об ошибках используем имена полей из JSON
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	return &Handler{
		Svc:          svc,
		Log:          log,
		Verifier:     verifier,
		Validate:     v,
		publicURL:    strings.TrimRight(opts.PublicURL, "/"),
		maxBodyBytes: opts.MaxBodyBytes,
	}
}

// errorStatuses: соответствие доменных ошибок HTTP-статусам.
// Порядок важен: ErrInvalidPage проверяется раньше общих ошибок.
var errorStatuses = []struct {
	err    error
	status int
}{
	{serr.ErrBadJSON, http.StatusBadRequest},
	{serr.ErrUnknownEmail, http.StatusBadRequest},
	{serr.ErrInvalidIdentifier, http.StatusBadRequest},
	{serr.ErrInvalidToken, http.StatusBadRequest},
	{serr.ErrInactiveAccount, http.StatusBadRequest},
	{serr.ErrAlreadyConfirmed, http.StatusBadRequest},
	{serr.ErrInvalidInput, http.StatusBadRequest},
	{serr.ErrInvalidCredentials, http.StatusUnauthorized},
	{serr.ErrUnauthorized, http.StatusUnauthorized},
	{serr.ErrForbidden, http.StatusForbidden},
	{serr.ErrInvalidPage, http.StatusNotFound},
	{serr.ErrNotFound, http.StatusNotFound},
	{serr.ErrAlreadyExists, http.StatusConflict},
}

// WriteError пишет ошибку в формате ErrorResponse.
func WriteError(w http.ResponseWriter, r *http.Request, status int, resp models.ErrorResponse) {
	render.Status(r, status)
	render.JSON(w, r, resp)
}

// fail маппит ошибку сервиса в ответ. Неизвестные ошибки логируются и отдаются как 500.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	var ve *serr.ValidationError
	if errors.As(err, &ve) {
		WriteError(w, r, http.StatusBadRequest, models.ErrorResponse{Error: serr.ErrInvalidInput.Error(), Fields: ve.Fields})
		return
	}

	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			WriteError(w, r, e.status, models.ErrorResponse{Error: e.err.Error()})
			return
		}
	}

	h.Log.Error(op+" failed",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	)
	WriteError(w, r, http.StatusInternalServerError, models.ErrorResponse{Error: serr.ErrInternal.Error()})
}

// decode читает JSON-тело в dst и проверяет его по тегам validate.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	body := r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return serr.ErrBadJSON
	}

	if err := h.Validate.Struct(dst); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			return validationError(errs)
		}
		return serr.ErrInvalidInput
	}
	return nil
}

// validationError переводит ошибки validator в ValidationError с текстом по каждому полю.
func validationError(errs validator.ValidationErrors) error {
	var v serr.ValidationError
	for _, fe := range errs {
		field := fe.Field()
		isString := fe.Kind() == reflect.String

		switch fe.ActualTag() {
		case "required":
			v.Add(field, "required")
		case "email":
			v.Add(field, "invalid email")
		case "min":
			if isString {
				v.Add(field, fmt.Sprintf("too short (min %s)", fe.Param()))
			} else {
				v.Add(field, "must be >= "+fe.Param())
			}
		case "max":
			if isString {
				v.Add(field, fmt.Sprintf("too long (max %s)", fe.Param()))
			} else {
				v.Add(field, "must be <= "+fe.Param())
			}
		default:
			v.Add(field, "invalid value")
		}
	}
	return v.Err()
}

func principal(r *http.Request) permission.Principal {
	return mw.PrincipalFromContext(r.Context())
}

// pathID разбирает {id} из пути. Нечисловой id означает несуществующий ресурс.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, serr.ErrNotFound
	}
	return id, nil
}
