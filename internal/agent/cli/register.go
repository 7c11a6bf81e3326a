package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Altair788/AdHub/internal/shared/models"
)

// NewRegisterCmd создаёт CLI-команду для регистрации нового пользователя.
//
// Аккаунт создаётся неактивным: сервер отправляет письмо со ссылкой
// подтверждения, токен из неё передаётся в confirm-email.
//
// Пример использования:
//
//	adhub register --email test@example.com --first-name Ivan
func NewRegisterCmd(app *App) *cobra.Command {
	var (
		req      models.RegisterRequest
		phone    string
		tgID     int64
		password passwordFlags
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Регистрация нового пользователя",
		Long: `Регистрация нового пользователя на сервере.

Пример:
  adhub register --email test@example.com --first-name Ivan
  echo StrongPass123 | adhub register --email test@example.com --password-stdin
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := password.get(cmd, "Password: ")
			if err != nil {
				return err
			}
			req.Password = pw
			if cmd.Flags().Changed("phone") {
				req.Phone = &phone
			}
			if cmd.Flags().Changed("tg-id") {
				req.TgID = &tgID
			}

			acc, err := app.client().Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registration successful (id=%d), check %s to confirm the account\n", acc.ID, acc.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "email for registration")
	password.register(cmd, "password", "password for registration")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&req.Country, "country", "", "country")
	cmd.Flags().StringVar(&req.TgNick, "tg-nick", "", "telegram nickname")
	cmd.Flags().Int64Var(&tgID, "tg-id", 0, "telegram id")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

// NewConfirmEmailCmd активирует аккаунт по токену из письма.
func NewConfirmEmailCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "confirm-email <token>",
		Short: "Подтвердить почту по токену из письма",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.client().ConfirmEmail(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "email confirmed, you can login now")
			return nil
		},
	}
}
