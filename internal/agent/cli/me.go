package cli

import (
	"github.com/spf13/cobra"

	"github.com/Altair788/AdHub/internal/shared/models"
)

// NewMeCmd выводит профиль текущего пользователя.
func NewMeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Профиль текущего пользователя",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var acc models.Account
			err := app.withAuth(cmd.Context(), true, func(token string) error {
				var err error
				acc, err = app.client().Me(cmd.Context(), token)
				return err
			})
			if err != nil {
				return err
			}
			return printAccount(cmd.OutOrStdout(), acc)
		},
	}
}
