package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Altair788/AdHub/internal/shared/models"
)

// NewPasswordResetCmd запрашивает письмо со ссылкой сброса пароля.
func NewPasswordResetCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "password-reset",
		Short: "Запросить письмо для сброса пароля",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.client().PasswordReset(cmd.Context(), email); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "password reset email sent to %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// NewPasswordResetConfirmCmd устанавливает новый пароль по uid и token из письма.
//
// Пример использования:
//
//	adhub password-reset-confirm --uid <uid> --token <token>
func NewPasswordResetConfirmCmd(app *App) *cobra.Command {
	var (
		uid, token string
		password   passwordFlags
	)

	cmd := &cobra.Command{
		Use:   "password-reset-confirm",
		Short: "Установить новый пароль по ссылке из письма",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := password.get(cmd, "New password: ")
			if err != nil {
				return err
			}

			err = app.client().PasswordResetConfirm(cmd.Context(), models.PasswordResetConfirmRequest{
				UID:         uid,
				Token:       token,
				NewPassword: pw,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "password has been reset, login again")
			return nil
		},
	}

	cmd.Flags().StringVar(&uid, "uid", "", "uid from the reset link")
	cmd.Flags().StringVar(&token, "token", "", "token from the reset link")
	password.register(cmd, "new-password", "new password")
	_ = cmd.MarkFlagRequired("uid")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}
