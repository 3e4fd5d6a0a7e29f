package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/flatshare/pkg/types"
)

func newUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List every registered user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				users := a.store.Users()
				return render(cmd, users, func(w io.Writer) {
					var rows [][]string
					for _, u := range users {
						rows = append(rows, []string{u.ID, u.Name, u.Email, string(u.Role), u.HouseholdID, fmt.Sprint(u.Points), u.LevelTitle()})
					}
					table(w, []string{"ID", "NAME", "EMAIL", "ROLE", "HOUSEHOLD", "POINTS", "LEVEL"}, rows)
				})
			})
		},
	}
}

func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <name> <email> <password>",
		Short: "Register a new member",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				u, ok := a.store.Register(args[0], args[1], args[2])
				if !ok {
					return fmt.Errorf("email %s is already registered", args[1])
				}
				return done(cmd, u, "registered %s (%s)", u.Name, u.ID)
			})
		},
	}
}

func newJoinCmd() *cobra.Command {
	var request bool
	cmd := &cobra.Command{
		Use:   "join <code>",
		Short: "Join a household by its code",
		Long:  "Join a household directly, or with --request ask its members for approval.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				if _, ok := a.store.CurrentUser(); !ok {
					return errNeedLogin
				}
				if request {
					req, ok := a.store.RequestToJoin(args[0])
					if !ok {
						return fmt.Errorf("cannot request to join %s", args[0])
					}
					return done(cmd, req, "join request %s sent", req.ID)
				}
				if !a.store.JoinHouseholdByCode(args[0]) {
					return fmt.Errorf("no household with code %s", args[0])
				}
				h, _ := a.store.CurrentHousehold()
				return done(cmd, h, "joined %s", h.Name)
			})
		},
	}
	cmd.Flags().BoolVar(&request, "request", false, "send a join request instead of joining")
	return cmd
}

// describeErr turns store sentinel errors into CLI guidance.
func describeErr(err error) error {
	switch {
	case errors.Is(err, types.ErrNoSession):
		return errNeedLogin
	case errors.Is(err, types.ErrNoHousehold):
		return fmt.Errorf("%w: join or create a household first", err)
	}
	return err
}
