package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
)

func newShopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Work with the household shopping list",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List shopping items",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, func(a *app) error {
					items := a.store.ShoppingItems()
					return render(cmd, items, func(w io.Writer) {
						var rows [][]string
						for _, it := range items {
							rows = append(rows, []string{it.ID, it.Name, money(it.Price), string(it.Status), it.AddedBy, it.BoughtBy})
						}
						table(w, []string{"ID", "NAME", "PRICE", "STATUS", "ADDED BY", "BOUGHT BY"}, rows)
					})
				})
			},
		},
		&cobra.Command{
			Use:   "add <name> [price]",
			Short: "Add a pending item",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				price := 0.0
				if len(args) == 2 {
					p, err := strconv.ParseFloat(args[1], 64)
					if err != nil {
						return fmt.Errorf("invalid price %q", args[1])
					}
					price = p
				}
				return withApp(cmd, func(a *app) error {
					item, err := a.store.AddShoppingItem(args[0], price)
					if err != nil {
						return describeErr(err)
					}
					return done(cmd, item, "added %s (%s)", item.Name, item.ID)
				})
			},
		},
		&cobra.Command{
			Use:   "buy <id>",
			Short: "Mark an item bought by the current user",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, func(a *app) error {
					if _, ok := a.store.CurrentUser(); !ok {
						return errNeedLogin
					}
					if !a.store.MarkBought(args[0]) {
						return fmt.Errorf("no pending item %s", args[0])
					}
					return done(cmd, nil, "bought %s", args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "rm <id>",
			Short: "Remove an item",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, func(a *app) error {
					if !a.store.RemoveShoppingItem(args[0]) {
						return fmt.Errorf("no item %s", args[0])
					}
					return done(cmd, nil, "removed %s", args[0])
				})
			},
		},
	)
	return cmd
}
