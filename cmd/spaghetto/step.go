package main

import (
	"fmt"
	"strconv"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/spaghetto/manager/internal/business"
	"github.com/spaghetto/manager/internal/common"
	"github.com/spaghetto/manager/internal/restaurant"
)

func stepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "step [weeks]",
		Short: "Advance the simulation by N weeks (default 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			weeks := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("%w: weeks must be an integer", common.ErrInvalidArgument)
				}
				weeks = n
			}

			return withRestaurant(cmd.Context(), func(r *restaurant.Restaurant) error {
				if weeks < 0 {
					// Surface the engine's validation error.
					return r.Step(weeks)
				}

				var bar *progressbar.ProgressBar
				if weeks > 12 {
					bar = progressbar.Default(int64(weeks), "simulating")
				}

				for i := 0; i < weeks; i++ {
					if err := r.Step(1); err != nil {
						return err
					}
					if bar != nil {
						_ = bar.Add(1)
					}
				}

				fmt.Printf("It is now %s (week %d). Balance: %s.\n",
					BoldStyle.Render(business.FormatDate(r.TotalWeeks())),
					r.TotalWeeks(),
					common.FormatDollars(r.Balance()))
				return nil
			})
		},
	}
}
