package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spaghetto/manager/internal/common"
	"github.com/spaghetto/manager/internal/inventory"
	"github.com/spaghetto/manager/internal/loans"
	"github.com/spaghetto/manager/internal/restaurant"
)

const offerMenuSize = 5

func loansCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loans",
		Short: "Manage loans and subsidies",
	}
	cmd.AddCommand(loansListCmd())
	cmd.AddCommand(loansOffersCmd())
	cmd.AddCommand(loansApplyCmd())
	return cmd
}

func loansListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active loans and their payment schedules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRestaurant(cmd.Context(), func(r *restaurant.Restaurant) error {
				fmt.Println(TitleStyle.Render("Active loans"))
				if r.Loans().Len() == 0 {
					fmt.Println(SubtleStyle.Render("(none)"))
					return nil
				}
				for _, loan := range r.Loans().All() {
					fmt.Println(BoldStyle.Render(loan.Name))
					fmt.Printf("  %s of %s at %s%% (%s interest), paid %s\n",
						common.FormatDollars(loan.Amount),
						fmt.Sprintf("%d year(s)", loan.Term),
						loan.Rate.Mul(decimal100).StringFixed(2),
						loan.InterestType, loan.PaybackType)
					fmt.Printf("  next payment %s, %d payment(s) remaining\n",
						common.FormatDollars(loan.NextPayment(false)),
						loan.RemainingPayments())
				}
				return nil
			})
		},
	}
}

func loansOffersCmd() *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "offers",
		Short: "Browse the current loan offers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRestaurant(cmd.Context(), func(r *restaurant.Restaurant) error {
				if refresh || r.Offers().Len() == 0 {
					menu := loans.NewGenerator(r.Rand()).Menu(offerMenuSize)
					r.SetOffers(inventory.New(menu...))
				}

				fmt.Println(TitleStyle.Render("Loan offers"))
				for _, loan := range r.Offers().All() {
					qualifies := SubtleStyle.Render("(not qualified)")
					if loan.Check(r) {
						qualifies = SuccessStyle.Render("(qualified)")
					}
					kind := "loan"
					if loan.IsSubsidy() {
						kind = "subsidy"
					}
					fmt.Printf("%s %s\n", BoldStyle.Render(loan.Name), qualifies)
					fmt.Printf("  %s %s", common.FormatDollars(loan.Amount), kind)
					if !loan.IsSubsidy() {
						fmt.Printf(" over %d year(s) at %s%% (%s interest), paid %s",
							loan.Term, loan.Rate.Mul(decimal100).StringFixed(2),
							loan.InterestType, loan.PaybackType)
					}
					fmt.Println()
					for _, req := range loan.Requirements {
						fmt.Printf("  requires %s\n", req)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "generate a fresh offer menu")
	return cmd
}

func loansApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <name>",
		Short: "Apply for one of the offered loans",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRestaurant(cmd.Context(), func(r *restaurant.Restaurant) error {
				loan, ok := r.Offers().Find(args[0])
				if !ok {
					fmt.Println(WarningStyle.Render("No such offer; run `spaghetto loans offers` first."))
					return nil
				}
				if !loan.Check(r) {
					fmt.Println(ErrorStyle.Render("Your restaurant does not qualify for this offer."))
					return nil
				}
				if err := r.ApplyLoan(loan); err != nil {
					return err
				}
				r.Offers().Discard(loan.Name)

				if loan.IsSubsidy() {
					fmt.Println(SuccessStyle.Render(fmt.Sprintf("Received %s subsidy!",
						common.FormatDollars(loan.Amount))))
				} else {
					fmt.Println(SuccessStyle.Render(fmt.Sprintf(
						"Received %s: %d payments of %s ahead.",
						common.FormatDollars(loan.Amount), loan.NumPayments(),
						common.FormatDollars(loan.NormalPayment()))))
				}
				return nil
			})
		},
	}
}
