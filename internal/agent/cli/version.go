package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCmd выводит версию клиента и дату сборки.
//
// С флагом --check дополнительно опрашивает /healthz сервера:
// недоступный сервер или БД дают ненулевой код выхода.
//
//	adhub version --check
func NewVersionCmd(app *App, buildVersion, buildDate string) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Показать версию и дату сборки",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version=%s\nbuild_date=%s\ngo=%s\n", buildVersion, buildDate, runtime.Version())
			if !check {
				return nil
			}

			h, err := app.client().Health(cmd.Context())
			if err != nil {
				fmt.Fprintf(out, "server=%s status=unavailable\n", app.ServerURL)
				return err
			}
			fmt.Fprintf(out, "server=%s status=%s\n", app.ServerURL, h.Status)
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "also check server health")
	return cmd
}
