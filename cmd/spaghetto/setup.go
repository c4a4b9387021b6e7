package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spaghetto/manager/internal/common"
	"github.com/spaghetto/manager/internal/restaurant"
)

func setupCmd() *cobra.Command {
	var (
		balance   string
		employees int
	)
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Initialize the restaurant in the current slot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			amount, err := common.ParseDollars(balance)
			if err != nil {
				return err
			}
			if amount.IsNegative() {
				return fmt.Errorf("%w: starting balance cannot be negative", common.ErrInvalidArgument)
			}

			return withRestaurant(cmd.Context(), func(r *restaurant.Restaurant) error {
				if r.HasBalance() {
					fmt.Println(WarningStyle.Render("This slot is already set up; leaving it untouched."))
					return nil
				}
				r.SetBalance(amount)
				r.SetEmployees(employees)
				fmt.Println(SuccessStyle.Render(fmt.Sprintf(
					"Welcome to Spaghetto Manager! Starting balance %s, %d employee(s).",
					common.FormatDollars(amount), employees)))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&balance, "balance", "1000", "starting balance in dollars")
	cmd.Flags().IntVar(&employees, "employees", 1, "number of employees")
	return cmd
}
