package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

type costsView struct {
	Items     []types.RecurringCost `json:"items"`
	Total     float64               `json:"monthlyTotal"`
	PerMember float64               `json:"perMember"`
}

func newCostsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "costs",
		Short: "Show recurring monthly costs and the per-member share",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				v := costsView{
					Items:     a.store.RecurringCosts(),
					Total:     a.store.MonthlyRecurringTotal(),
					PerMember: a.store.RecurringCostShare(),
				}
				return render(cmd, v, func(w io.Writer) {
					var rows [][]string
					for _, c := range v.Items {
						rows = append(rows, []string{c.ID, c.Name, money(c.Amount), strconv.FormatBool(c.IsActive)})
					}
					table(w, []string{"ID", "NAME", "AMOUNT", "ACTIVE"}, rows)
					fmt.Fprintf(w, "total %s, per member %s\n", money(v.Total), money(v.PerMember))
				})
			})
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name> <amount>",
			Short: "Add an active monthly cost",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				amount, err := strconv.ParseFloat(args[1], 64)
				if err != nil {
					return fmt.Errorf("invalid amount %q", args[1])
				}
				return withApp(cmd, func(a *app) error {
					c, err := a.store.AddRecurringCost(args[0], amount)
					if err != nil {
						return describeErr(err)
					}
					return done(cmd, c, "added %s (%s)", c.Name, c.ID)
				})
			},
		},
		&cobra.Command{
			Use:   "toggle <id>",
			Short: "Switch a cost on or off",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, func(a *app) error {
					if !a.store.ToggleRecurringCost(args[0]) {
						return fmt.Errorf("no cost %s", args[0])
					}
					return done(cmd, nil, "toggled %s", args[0])
				})
			},
		},
	)
	return cmd
}
