package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
)

func newTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Work with household chores",
	}

	var assignee string
	var points int
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a chore",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				t, err := a.store.AddTask(args[0], assignee, points)
				if err != nil {
					return describeErr(err)
				}
				return done(cmd, t, "added %s (%s)", t.Title, t.ID)
			})
		},
	}
	add.Flags().StringVar(&assignee, "to", "", "member name to assign")
	add.Flags().IntVar(&points, "points", 10, "points awarded on completion")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List chores",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, func(a *app) error {
					tasks := a.store.Tasks()
					return render(cmd, tasks, func(w io.Writer) {
						var rows [][]string
						for _, t := range tasks {
							rows = append(rows, []string{t.ID, t.Title, t.AssignedTo, strconv.FormatBool(t.Completed), fmt.Sprint(t.Points), fmt.Sprint(t.Streak)})
						}
						table(w, []string{"ID", "TITLE", "ASSIGNEE", "DONE", "POINTS", "STREAK"}, rows)
					})
				})
			},
		},
		add,
		&cobra.Command{
			Use:   "done <id>",
			Short: "Toggle a chore's completion",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, func(a *app) error {
					if !a.store.ToggleTask(args[0]) {
						return fmt.Errorf("no task %s", args[0])
					}
					return done(cmd, nil, "toggled %s", args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "rotate",
			Short: "Hand every chore to the next member and reopen it",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, func(a *app) error {
					n := a.store.RotateTasks()
					return done(cmd, map[string]int{"rotated": n}, "rotated %d chores", n)
				})
			},
		},
	)
	return cmd
}

func newLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Rank household members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				board := a.store.Leaderboard()
				return render(cmd, board, func(w io.Writer) {
					var rows [][]string
					for i, e := range board {
						rows = append(rows, []string{fmt.Sprint(i + 1), e.Name, fmt.Sprint(e.Score), fmt.Sprint(e.Points), e.Level, string(e.Badge)})
					}
					table(w, []string{"#", "NAME", "SCORE", "POINTS", "LEVEL", "BADGE"}, rows)
				})
			})
		},
	}
}
