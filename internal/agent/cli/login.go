package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Altair788/AdHub/internal/agent/config"
)

// NewLoginCmd создаёт CLI-команду для входа пользователя в систему.
//
// Команда получает пару access/refresh токенов и сохраняет их в локальный
// файл вместе с адресом сервера. Пароль без флага читается с терминала.
//
// Пример использования:
//
//	adhub login --email test@example.com
func NewLoginCmd(app *App) *cobra.Command {
	var (
		email    string
		password passwordFlags
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Логин пользователя (получить access/refresh токены)",
		Long: `Логин пользователя.

Пример:
  adhub login --email test@example.com
  adhub login --email test@example.com --password StrongPass123
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := password.get(cmd, "Password: ")
			if err != nil {
				return err
			}

			resp, err := app.client().Login(cmd.Context(), email, pw)
			if err != nil {
				return err
			}

			app.Creds = &config.Credentials{Email: email}
			if err := app.saveTokens(tokenPair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "login ok (tokens saved)")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email for login")
	password.register(cmd, "password", "password for login")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

// NewLogoutCmd удаляет сохранённые токены.
func NewLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Удалить сохранённые токены",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Clear(app.CredsPath); err != nil {
				return err
			}
			app.Creds = &config.Credentials{}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}
