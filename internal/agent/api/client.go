// Package api содержит HTTP-клиент для взаимодействия с сервером AdHub.
//
// Клиент инкапсулирует базовый URL сервера и настроенный http.Client,
// предоставляя методы для отправки JSON-запросов (GET/POST/PUT/PATCH/DELETE)
// с авторизацией через Bearer токен.
//
// Особенности:
//   - baseURL нормализуется (обрезаются завершающие "/").
//   - По умолчанию добавляется заголовок Accept: application/json.
//   - Заголовок Content-Type: application/json добавляется только при наличии тела запроса.
//   - При ответах 204 No Content тело не читается и это считается успехом.
//   - Пустое тело ответа (EOF при декодировании) не считается ошибкой.
//   - При ошибочных ответах (не 2xx) возвращается *APIError с разобранным телом ошибки.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/Altair788/AdHub/internal/shared/models"
)

// Client реализует HTTP-клиент для общения с сервером AdHub.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient подменяет http.Client (например, в тестах).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithInsecureTLS отключает проверку сертификата сервера.
//
// ВНИМАНИЕ: делает TLS уязвимым для MITM. Только для локальной разработки
// с самоподписанным сертификатом.
func WithInsecureTLS() Option {
	return func(c *Client) {
		c.http.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // только для dev
		}
	}
}

// NewClient создаёт новый HTTP-клиент для общения с сервером.
//
// baseURL: базовый адрес сервера (например: "http://127.0.0.1:8080").
// По умолчанию http.Client с таймаутом 10 секунд.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError: ошибочный ответ сервера.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s (HTTP %d): %s", e.Message, e.Status, strings.Join(parts, "; "))
}

// IsStatus сообщает, что err: ответ сервера с указанным статусом.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// readAPIError читает тело ответа сервера и возвращает *APIError.
//
// Тело в формате ErrorResponse разбирается, иначе текст тела
// (или res.Status, если тело пустое) становится сообщением.
func readAPIError(res *http.Response) error {
	raw, _ := io.ReadAll(res.Body)

	var er models.ErrorResponse
	if err := json.Unmarshal(raw, &er); err == nil && er.Error != "" {
		return &APIError{Status: res.StatusCode, Message: er.Error, Fields: er.Fields}
	}

	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		msg = res.Status
	}
	return &APIError{Status: res.StatusCode, Message: msg}
}

// decodeJSONOrOK декодирует JSON из r в resp.
//
// Если resp == nil: ничего не делает. Пустое тело (io.EOF) ошибкой не считается.
func decodeJSONOrOK(r io.Reader, resp any) error {
	if resp == nil {
		return nil
	}
	err := json.NewDecoder(r).Decode(resp)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// Do выполняет запрос к серверу.
//
// Параметры:
//   - path: путь относительно baseURL, может содержать query (например: "/ads?page=2").
//   - req: объект для сериализации в JSON; nil: запрос без тела.
//   - resp: указатель для декодирования JSON-ответа; nil: тело не декодируется.
//   - authToken: access токен; непустой добавляет Authorization: Bearer <token>.
func (c *Client) Do(ctx context.Context, method, path string, req, resp any, authToken string) error {
	var body io.Reader
	if req != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(req); err != nil {
			return err
		}
		body = &buf
	}

	r, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	r.Header.Set("Accept", "application/json")
	if req != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		r.Header.Set("Authorization", "Bearer "+authToken)
	}

	res, err := c.http.Do(r)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return readAPIError(res)
	}

	// 204/пустое тело: ок
	if res.StatusCode == http.StatusNoContent {
		return nil
	}

	return decodeJSONOrOK(res.Body, resp)
}

// GetJSON выполняет GET-запрос и декодирует JSON-ответ в resp.
func (c *Client) GetJSON(ctx context.Context, path string, resp any, authToken string) error {
	return c.Do(ctx, http.MethodGet, path, nil, resp, authToken)
}

// PostJSON выполняет POST-запрос, сериализуя req в JSON.
func (c *Client) PostJSON(ctx context.Context, path string, req, resp any, authToken string) error {
	return c.Do(ctx, http.MethodPost, path, req, resp, authToken)
}

// PutJSON выполняет PUT-запрос, сериализуя req в JSON.
func (c *Client) PutJSON(ctx context.Context, path string, req, resp any, authToken string) error {
	return c.Do(ctx, http.MethodPut, path, req, resp, authToken)
}

// PatchJSON выполняет PATCH-запрос, сериализуя req в JSON.
func (c *Client) PatchJSON(ctx context.Context, path string, req, resp any, authToken string) error {
	return c.Do(ctx, http.MethodPatch, path, req, resp, authToken)
}

// DeleteJSON выполняет DELETE-запрос. Сервер обычно отвечает 204.
func (c *Client) DeleteJSON(ctx context.Context, path string, authToken string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, authToken)
}
