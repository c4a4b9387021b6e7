package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spaghetto/manager/internal/business"
	"github.com/spaghetto/manager/internal/common"
	"github.com/spaghetto/manager/internal/model"
	"github.com/spaghetto/manager/internal/restaurant"
)

func historyCmd() *cobra.Command {
	var (
		limit int
		after int
		kind  string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var ttype model.TransactionType
			switch kind {
			case "":
			case "purchase":
				ttype = model.TransactionPurchase
			case "sales":
				ttype = model.TransactionSales
			case "loan":
				ttype = model.TransactionLoan
			case "subsidy":
				ttype = model.TransactionSubsidy
			case "default":
				ttype = model.TransactionDefault
			default:
				return fmt.Errorf("%w: unknown transaction type %q", common.ErrInvalidArgument, kind)
			}

			return withRestaurant(cmd.Context(), func(r *restaurant.Restaurant) error {
				txs := r.Transactions(business.TransactionQuery{
					Limit: limit,
					After: after,
					Type:  ttype,
				})
				if len(txs) == 0 {
					fmt.Println(SubtleStyle.Render("There are no matching transactions."))
					return nil
				}
				for _, t := range txs {
					fmt.Printf("%s : %s : %s\n",
						SubtleStyle.Render(business.FormatDate(t.Week)),
						common.FormatDollars(t.Dollars), t.Title)
				}

				fmt.Printf("\nMonthly revenue %s, monthly expenses %s.\n",
					common.FormatDollars(r.MonthlyRevenue()),
					common.FormatDollars(r.MonthlyExpenses()))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "show at most N most recent transactions")
	cmd.Flags().IntVar(&after, "after", 0, "only transactions at or after this week")
	cmd.Flags().StringVar(&kind, "type", "", "filter by type (purchase, sales, loan, subsidy, default)")
	return cmd
}
