// Package cli реализует командный интерфейс (CLI) клиента AdHub.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - загрузку и сохранение локальных учётных данных (access/refresh токены);
//   - выполнение запросов к серверу и вывод результата пользователю.
//
// Точка входа пакета: функция Execute.
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/Altair788/AdHub/internal/agent/api"
	"github.com/Altair788/AdHub/internal/agent/config"
)

const defaultServerURL = "https://127.0.0.1:8080"

var errNotLoggedIn = errors.New("not logged in, run: adhub login")

// App содержит состояние CLI-приложения, разделяемое между командами.
type App struct {
	// ServerURL: базовый URL сервера AdHub (например, "https://127.0.0.1:8080").
	ServerURL string
	// Insecure отключает проверку TLS сертификата сервера.
	Insecure bool

	// CredsPath: путь к файлу с сохранёнными учётными данными.
	CredsPath string
	// Creds: загруженные учётные данные. Может быть nil до PersistentPreRunE.
	Creds *config.Credentials
}

func (a *App) client() *api.Client {
	return NewAPIClient(a.ServerURL, a.Insecure)
}

// saveTokens запоминает пару токенов вместе с адресом сервера.
func (a *App) saveTokens(tok tokenPair) error {
	if a.Creds == nil {
		a.Creds = &config.Credentials{}
	}
	a.Creds.Server = a.ServerURL
	a.Creds.AccessToken = tok.AccessToken
	a.Creds.RefreshToken = tok.RefreshToken
	return config.Save(a.CredsPath, a.Creds)
}

type tokenPair struct {
	AccessToken  string
	RefreshToken string
}

// withAuth вызывает fn с сохранённым access токеном.
//
// Если сервер ответил 401, токены один раз обновляются по refresh и
// запрос повторяется. При required=false без сохранённой сессии fn
// вызывается анонимно.
func (a *App) withAuth(ctx context.Context, required bool, fn func(token string) error) error {
	if !a.Creds.LoggedIn() {
		if required {
			return errNotLoggedIn
		}
		return fn("")
	}

	err := fn(a.Creds.AccessToken)
	if !api.IsStatus(err, http.StatusUnauthorized) {
		return err
	}

	resp, rerr := a.client().Refresh(ctx, a.Creds.RefreshToken)
	if rerr != nil {
		if api.IsStatus(rerr, http.StatusUnauthorized) {
			return fmt.Errorf("session expired, run: adhub login: %w", rerr)
		}
		return rerr
	}
	if err := a.saveTokens(tokenPair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}); err != nil {
		return err
	}
	return fn(a.Creds.AccessToken)
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// В PersistentPreRunE определяется путь к файлу учётных данных и загружаются
// сохранённые токены. Если --server не передан, используется сервер,
// на котором выполнен последний login.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:   "adhub",
		Short: "AdHub CLI: доска объявлений и отзывов",
		Long: `AdHub CLI.

Аккаунт:
  register                Регистрация (на почту придёт ссылка подтверждения)
  confirm-email <token>   Подтвердить почту
  login                   Логин (сохраняет access и refresh токены)
  refresh                 Обновить пару токенов
  logout                  Удалить сохранённые токены
  password-reset          Запросить письмо для сброса пароля
  password-reset-confirm  Установить новый пароль по uid и token из письма
  me                      Профиль текущего пользователя

Объявления и отзывы:
  ads list|get|create|update|delete
  reviews list|create|delete

Примеры:
  adhub register --email test@example.com
  adhub login --email test@example.com
  adhub ads list --title bike --page 2
  adhub ads create --title "Bike" --price 1500
  adhub reviews create --ad 3 --text "great" --rating 5
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			app.CredsPath = p

			creds, err := config.Load(app.CredsPath)
			if err != nil {
				return err
			}
			app.Creds = creds

			if !cmd.Flags().Changed("server") && creds.Server != "" {
				app.ServerURL = creds.Server
			}
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", defaultServerURL, "server base URL")
	cmd.PersistentFlags().BoolVar(&app.Insecure, "insecure", false, "skip TLS certificate verification (dev only)")

	cmd.AddCommand(NewRegisterCmd(app))
	cmd.AddCommand(NewConfirmEmailCmd(app))
	cmd.AddCommand(NewLoginCmd(app))
	cmd.AddCommand(NewRefreshCmd(app))
	cmd.AddCommand(NewLogoutCmd(app))
	cmd.AddCommand(NewPasswordResetCmd(app))
	cmd.AddCommand(NewPasswordResetConfirmCmd(app))
	cmd.AddCommand(NewMeCmd(app))
	cmd.AddCommand(NewAdsCmd(app))
	cmd.AddCommand(NewReviewsCmd(app))
	cmd.AddCommand(NewVersionCmd(app, buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке сообщение выводится в stderr, процесс завершается с кодом 1.
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
