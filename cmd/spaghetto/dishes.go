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

func dishesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dishes",
		Short: "Manage the menu",
	}
	cmd.AddCommand(dishesListCmd())
	cmd.AddCommand(dishesAddCmd())
	cmd.AddCommand(dishesRemoveCmd())
	cmd.AddCommand(dishesShowCmd())
	cmd.AddCommand(dishesCostCmd())
	return cmd
}

func dishesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the dishes on the menu",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRestaurant(cmd.Context(), func(r *restaurant.Restaurant) error {
				fmt.Println(TitleStyle.Render("Menu"))
				if r.Dishes().Len() == 0 {
					fmt.Println(SubtleStyle.Render("(no dishes yet)"))
					return nil
				}
				for i, dish := range r.Dishes().All() {
					sales := "no projection yet"
					if dish.Sales != nil {
						sales = fmt.Sprintf("%d sold last month", *dish.Sales)
					}
					fmt.Printf("%d: %s: %s (%s)\n", i+1, dish.Name,
						common.FormatDollars(dish.Price), SubtleStyle.Render(sales))
				}
				return nil
			})
		},
	}
}

// parseIngredient parses "Flour:2:cup" into a requirement item.
func parseIngredient(s string) (model.Item, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return model.Item{}, fmt.Errorf("%w: ingredient %q must be name:quantity:unit",
			common.ErrInvalidArgument, s)
	}
	quantity, err := strconv.Atoi(parts[1])
	if err != nil || quantity < 0 {
		return model.Item{}, fmt.Errorf("%w: ingredient %q has a bad quantity",
			common.ErrInvalidArgument, s)
	}
	return model.Item{Name: parts[0], Quantity: quantity, Unit: parts[2]}, nil
}

func dishesAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <price> <ingredient>...",
		Short: "Add a dish (ingredients as name:quantity:unit)",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			price, err := common.ParseDollars(args[1])
			if err != nil {
				return err
			}
			items := make([]model.Item, 0, len(args)-2)
			for _, arg := range args[2:] {
				item, err := parseIngredient(arg)
				if err != nil {
					return err
				}
				items = append(items, item)
			}

			return withRestaurant(cmd.Context(), func(r *restaurant.Restaurant) error {
				r.AddDish(model.NewDish(args[0], price, items))
				fmt.Println(SuccessStyle.Render("Your dish has been created!"))
				return nil
			})
		},
	}
}

func dishesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a dish by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRestaurant(cmd.Context(), func(r *restaurant.Restaurant) error {
				dish, ok := r.Dishes().Find(args[0])
				if !ok {
					fmt.Println(WarningStyle.Render("That dish name does not exist!"))
					return nil
				}
				if err := r.RemoveDish(dish.Name); err != nil {
					return err
				}
				fmt.Println(SuccessStyle.Render(fmt.Sprintf("Deleted %s!", dish.Name)))
				return nil
			})
		},
	}
}

func dishesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a dish's ingredients and last month's figures",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRestaurant(cmd.Context(), func(r *restaurant.Restaurant) error {
				dish, ok := r.Dishes().Find(args[0])
				if !ok {
					fmt.Println(WarningStyle.Render("That dish name does not exist!"))
					return nil
				}

				fmt.Println(TitleStyle.Render(dish.Name))
				fmt.Printf("Price: %s\n", common.FormatDollars(dish.Price))
				fmt.Println("Ingredients:")
				for _, item := range dish.Items {
					fmt.Printf("  %d %s of %s\n", item.Quantity,
						common.Plural(item.Unit, item.Quantity), item.Name)
				}
				if dish.Sales != nil {
					fmt.Printf("Last month: %d sold, revenue %s, expenses %s\n",
						*dish.Sales,
						common.FormatDollars(dish.Revenue()),
						common.FormatDollars(dish.Expenses()))
				}
				return nil
			})
		},
	}
}

func dishesCostCmd() *cobra.Command {
	var average bool
	cmd := &cobra.Command{
		Use:   "cost <name> [servings]",
		Short: "Estimate the ingredient cost of a dish",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			servings := 1
			if len(args) == 2 {
				n, err := strconv.Atoi(args[1])
				if err != nil || n <= 0 {
					return fmt.Errorf("%w: servings must be a positive integer", common.ErrInvalidArgument)
				}
				servings = n
			}

			return withRestaurant(cmd.Context(), func(r *restaurant.Restaurant) error {
				dish, ok := r.Dishes().Find(args[0])
				if !ok {
					fmt.Println(WarningStyle.Render("That dish name does not exist!"))
					return nil
				}
				cost, err := r.CostOfDish(dish, servings, average, true)
				if err != nil {
					return err
				}
				fmt.Printf("%d serving(s) of %s cost %s to make.\n",
					servings, dish.Name, common.FormatDollars(common.RoundDollars(cost)))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&average, "average", false, "use average unit cost instead of cheapest-lot cost")
	return cmd
}
