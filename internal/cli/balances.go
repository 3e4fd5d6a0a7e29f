package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/flatshare/internal/store"
)

type balancesView struct {
	Balances []store.Balance  `json:"balances"`
	Debts    []store.DebtEdge `json:"debts"`
}

func newBalancesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Show who owes whom for bought items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				v := balancesView{Balances: a.store.Balances(), Debts: a.store.DebtEdges()}
				return render(cmd, v, func(w io.Writer) {
					var rows [][]string
					for _, b := range v.Balances {
						rows = append(rows, []string{b.Name, money(b.Paid), money(b.Share), money(b.Amount)})
					}
					table(w, []string{"MEMBER", "PAID", "SHARE", "BALANCE"}, rows)
					for _, d := range v.Debts {
						fmt.Fprintf(w, "%s owes %s %s\n", d.From, d.To, money(d.Amount))
					}
				})
			})
		},
	}
}

func newSettleCmd() *cobra.Command {
	var with string
	cmd := &cobra.Command{
		Use:   "settle",
		Short: "Clear bought items from the ledger",
		Long: "Without --with every bought item of the household is removed, zeroing all balances.\n" +
			"With --with only the items that member paid for are removed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				if _, ok := a.store.CurrentHousehold(); !ok {
					return errNeedLogin
				}
				var n int
				if with != "" {
					n = a.store.SettleWith(with)
				} else {
					n = a.store.SettleAllDebts()
				}
				return done(cmd, map[string]int{"settled": n}, "settled %d purchases", n)
			})
		},
	}
	cmd.Flags().StringVar(&with, "with", "", "settle only purchases paid by this member")
	return cmd
}
