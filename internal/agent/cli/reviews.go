package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Altair788/AdHub/internal/shared/models"
)

// NewReviewsCmd группирует команды работы с отзывами.
func NewReviewsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Отзывы к объявлениям",
	}
	cmd.AddCommand(newReviewsListCmd(app))
	cmd.AddCommand(newReviewsCreateCmd(app))
	cmd.AddCommand(newReviewsDeleteCmd(app))
	return cmd
}

func newReviewsListCmd(app *App) *cobra.Command {
	var (
		adID int64
		page int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Список отзывов",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var p models.Page[models.Review]
			err := app.withAuth(cmd.Context(), true, func(token string) error {
				var err error
				p, err = app.client().ListReviews(cmd.Context(), adID, page, token)
				return err
			})
			if err != nil {
				return err
			}
			return printReviews(cmd.OutOrStdout(), p, page)
		},
	}

	cmd.Flags().Int64Var(&adID, "ad", 0, "only reviews of this ad")
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	return cmd
}

func newReviewsCreateCmd(app *App) *cobra.Command {
	var req models.ReviewRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Оставить отзыв к объявлению",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Rating < 1 || req.Rating > 5 {
				return fmt.Errorf("rating must be between 1 and 5")
			}

			var rv models.Review
			err := app.withAuth(cmd.Context(), true, func(token string) error {
				var err error
				rv, err = app.client().CreateReview(cmd.Context(), req, token)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "review created (id=%d)\n", rv.ID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&req.Ad, "ad", 0, "ad id")
	cmd.Flags().StringVar(&req.Text, "text", "", "review text")
	cmd.Flags().IntVar(&req.Rating, "rating", 0, "rating 1..5")
	_ = cmd.MarkFlagRequired("ad")
	_ = cmd.MarkFlagRequired("text")
	_ = cmd.MarkFlagRequired("rating")
	return cmd
}

func newReviewsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Удалить отзыв",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			err = app.withAuth(cmd.Context(), true, func(token string) error {
				return app.client().DeleteReview(cmd.Context(), id, token)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "review %d deleted\n", id)
			return nil
		},
	}
}
