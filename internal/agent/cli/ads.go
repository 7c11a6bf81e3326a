package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Altair788/AdHub/internal/shared/models"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// NewAdsCmd группирует команды работы с объявлениями.
func NewAdsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ads",
		Short: "Объявления",
	}
	cmd.AddCommand(newAdsListCmd(app))
	cmd.AddCommand(newAdsGetCmd(app))
	cmd.AddCommand(newAdsCreateCmd(app))
	cmd.AddCommand(newAdsUpdateCmd(app))
	cmd.AddCommand(newAdsDeleteCmd(app))
	return cmd
}

func newAdsListCmd(app *App) *cobra.Command {
	var (
		title string
		page  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Список объявлений (новые первыми, по 4 на странице)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var p models.Page[models.Ad]
			err := app.withAuth(cmd.Context(), false, func(token string) error {
				var err error
				p, err = app.client().ListAds(cmd.Context(), title, page, token)
				return err
			})
			if err != nil {
				return err
			}
			return printAds(cmd.OutOrStdout(), p, page)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "case-insensitive title filter")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	return cmd
}

func newAdsGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Показать объявление",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var ad models.Ad
			err = app.withAuth(cmd.Context(), true, func(token string) error {
				var err error
				ad, err = app.client().GetAd(cmd.Context(), id, token)
				return err
			})
			if err != nil {
				return err
			}
			return printAd(cmd.OutOrStdout(), ad)
		},
	}
}

func newAdsCreateCmd(app *App) *cobra.Command {
	var (
		req   models.AdRequest
		price int64
		image string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Создать объявление",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Price = &price
			if image != "" {
				req.Image = &image
			}

			var ad models.Ad
			err := app.withAuth(cmd.Context(), true, func(token string) error {
				var err error
				ad, err = app.client().CreateAd(cmd.Context(), req, token)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ad created (id=%d)\n", ad.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "ad title")
	cmd.Flags().Int64Var(&price, "price", 0, "price")
	cmd.Flags().StringVar(&req.Description, "description", "", "description")
	cmd.Flags().StringVar(&image, "image", "", "image reference")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func newAdsUpdateCmd(app *App) *cobra.Command {
	var (
		title, description, image string
		price                     int64
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Изменить объявление (только переданные поля)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var req models.AdPatchRequest
			f := cmd.Flags()
			if f.Changed("title") {
				req.Title = &title
			}
			if f.Changed("price") {
				req.Price = &price
			}
			if f.Changed("description") {
				req.Description = &description
			}
			if f.Changed("image") {
				req.Image = &image
			}
			if req == (models.AdPatchRequest{}) {
				return fmt.Errorf("nothing to update: pass at least one of --title, --price, --description, --image")
			}

			var ad models.Ad
			err = app.withAuth(cmd.Context(), true, func(token string) error {
				var err error
				ad, err = app.client().UpdateAd(cmd.Context(), id, req, token)
				return err
			})
			if err != nil {
				return err
			}
			return printAd(cmd.OutOrStdout(), ad)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().Int64Var(&price, "price", 0, "new price")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&image, "image", "", "new image reference (empty string clears it)")
	return cmd
}

func newAdsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Удалить объявление",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			err = app.withAuth(cmd.Context(), true, func(token string) error {
				return app.client().DeleteAd(cmd.Context(), id, token)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ad %d deleted\n", id)
			return nil
		},
	}
}
