package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRefreshCmd создаёт CLI-команду для обновления пары токенов.
//
// Используется сохранённый refresh токен. Сервер отзывает старую сессию,
// поэтому обе новые строки сразу записываются в файл.
//
// Пример использования:
//
//	adhub refresh
func NewRefreshCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Обновить access токен по refresh токену",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Creds == nil || app.Creds.RefreshToken == "" {
				return fmt.Errorf("no refresh_token in config, run: adhub login")
			}

			resp, err := app.client().Refresh(cmd.Context(), app.Creds.RefreshToken)
			if err != nil {
				return err
			}
			if err := app.saveTokens(tokenPair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "refresh ok (tokens updated)")
			return nil
		},
	}
}
