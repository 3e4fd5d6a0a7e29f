package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative operations (admin or super-admin only)",
	}

	var yes bool
	nuke := &cobra.Command{
		Use:   "nuke",
		Short: "Delete all content, keeping users and households",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to delete all content without --yes")
			}
			return withAdmin(cmd, func(a *app) error {
				a.store.NukeAllContent()
				return done(cmd, nil, "all content deleted")
			})
		},
	}
	nuke.Flags().BoolVar(&yes, "yes", false, "confirm deletion")

	cmd.AddCommand(
		&cobra.Command{
			Use:       "maintenance <on|off>",
			Short:     "Switch maintenance mode",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{"on", "off"},
			RunE: func(cmd *cobra.Command, args []string) error {
				var on bool
				switch strings.ToLower(args[0]) {
				case "on":
					on = true
				case "off":
				default:
					return fmt.Errorf("expected on or off, got %q", args[0])
				}
				return withAdmin(cmd, func(a *app) error {
					a.store.SetMaintenanceMode(on)
					return done(cmd, nil, "maintenance mode %s", strings.ToLower(args[0]))
				})
			},
		},
		&cobra.Command{
			Use:   "broadcast [message]",
			Short: "Set the broadcast message, or clear it when no message is given",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				msg := ""
				if len(args) == 1 {
					msg = args[0]
				}
				return withAdmin(cmd, func(a *app) error {
					a.store.SetBroadcast(msg)
					return done(cmd, nil, "broadcast updated")
				})
			},
		},
		&cobra.Command{
			Use:   "log",
			Short: "Show the notification log",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withAdmin(cmd, func(a *app) error {
					entries := a.store.Log()
					return render(cmd, entries, func(w io.Writer) {
						for _, e := range entries {
							fmt.Fprintf(w, "%s  %s\n", e.At.Format("2006-01-02 15:04"), e.Message)
						}
					})
				})
			},
		},
		nuke,
	)
	return cmd
}

// withAdmin is withApp for commands that need an elevated user.
func withAdmin(cmd *cobra.Command, fn func(a *app) error) error {
	return withApp(cmd, func(a *app) error {
		if err := a.requireElevated(); err != nil {
			return err
		}
		return fn(a)
	})
}
