package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spaghetto/manager/internal/common"
	"github.com/spaghetto/manager/internal/model"
	"github.com/spaghetto/manager/internal/restaurant"
)

func inventoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory [query]",
		Short: "List the inventory, or look up one item",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRestaurant(cmd.Context(), func(r *restaurant.Restaurant) error {
				if len(args) == 1 {
					ledger, ok := r.Inventory().Find(args[0])
					if !ok {
						fmt.Println(WarningStyle.Render(fmt.Sprintf("No single item matches %q.", args[0])))
						return nil
					}
					fmt.Println(BoldStyle.Render(ledger.String()))
					for _, lot := range ledger.Lots() {
						fmt.Printf("  %d @ %s each\n", lot.Quantity, common.FormatDollars(lot.Price))
					}
					fmt.Printf("  total value %s\n", common.FormatDollars(ledger.Value()))
					return nil
				}

				fmt.Println(TitleStyle.Render("Inventory"))
				if r.Inventory().Len() == 0 {
					fmt.Println(SubtleStyle.Render("(empty)"))
					return nil
				}
				for i, ledger := range r.Inventory().All() {
					fmt.Printf("%d: %s (%s)\n", i+1, ledger,
						common.FormatDollars(ledger.Value()))
				}
				return nil
			})
		},
	}
	return cmd
}

func buyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "buy <name> <quantity> <unit> <total-price>",
		Short: "Buy stock using the restaurant's balance",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := strconv.Atoi(args[1])
			if err != nil || quantity < 0 {
				return fmt.Errorf("%w: quantity must be a non-negative integer", common.ErrInvalidArgument)
			}
			price, err := common.ParseDollars(args[3])
			if err != nil {
				return err
			}

			item := model.NewItem(strings.TrimSpace(args[0]), quantity, strings.TrimSpace(args[2]), price)
			return withRestaurant(cmd.Context(), func(r *restaurant.Restaurant) error {
				ok, err := r.BuyItem(item)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println(ErrorStyle.Render(fmt.Sprintf(
						"Could not afford %s; charged NSF fee %s.",
						item, common.FormatDollars(r.NSFFee()))))
					return nil
				}
				fmt.Println(SuccessStyle.Render(fmt.Sprintf("%s purchased!", item)))
				return nil
			})
		},
	}
}
