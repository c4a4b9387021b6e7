package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spaghetto/manager/internal/common"
	"github.com/spaghetto/manager/internal/model"
	"github.com/spaghetto/manager/internal/restaurant"
)

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the restaurant's balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRestaurant(cmd.Context(), func(r *restaurant.Restaurant) error {
				if !r.HasBalance() {
					fmt.Println(WarningStyle.Render("No balance set yet; run `spaghetto setup` first."))
					return nil
				}
				fmt.Printf("Your restaurant's balance is %s.\n",
					BoldStyle.Render(common.FormatDollars(r.Balance())))
				return nil
			})
		},
	}
}

func depositCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deposit <amount>",
		Short: "Deposit money into the restaurant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := common.ParseDollars(args[0])
			if err != nil {
				return err
			}
			return withRestaurant(cmd.Context(), func(r *restaurant.Restaurant) error {
				r.Deposit("Owner deposit", amount, model.TransactionDefault, true)
				fmt.Println(SuccessStyle.Render(fmt.Sprintf("Deposited %s. Balance is now %s.",
					common.FormatDollars(amount), common.FormatDollars(r.Balance()))))
				return nil
			})
		},
	}
}

func withdrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw <amount>",
		Short: "Withdraw money from the restaurant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := common.ParseDollars(args[0])
			if err != nil {
				return err
			}
			return withRestaurant(cmd.Context(), func(r *restaurant.Restaurant) error {
				if !r.Withdraw("Owner withdrawal", amount, model.TransactionDefault, false, true) {
					fmt.Println(ErrorStyle.Render(fmt.Sprintf(
						"Insufficient funds; charged NSF fee %s instead. Balance is now %s.",
						common.FormatDollars(r.NSFFee()), common.FormatDollars(r.Balance()))))
					return nil
				}
				fmt.Println(SuccessStyle.Render(fmt.Sprintf("Withdrew %s. Balance is now %s.",
					common.FormatDollars(amount), common.FormatDollars(r.Balance()))))
				return nil
			})
		},
	}
}
