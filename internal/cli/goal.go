package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/daytally/internal/i18n"
	"github.com/sadopc/daytally/internal/timefmt"
	"github.com/sadopc/daytally/internal/validate"
)

func (a *app) goalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage today's goal",
	}
	cmd.AddCommand(
		a.goalTargetCmd("set", "Set a new goal for today", false),
		a.goalTargetCmd("edit", "Change the target of today's goal", true),
		&cobra.Command{
			Use:   "complete",
			Short: "Mark today's goal as done",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if a.goals.Current() == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "No goal set.")
					return nil
				}
				return a.goals.Complete()
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove today's goal",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				return a.goals.Clear()
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show today's goal and progress",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if a.goals.Current() == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "No goal set.")
					return nil
				}
				a.tracker.Refresh()
				a.printStatus(cmd.OutOrStdout())
				return nil
			},
		},
	)
	return cmd
}

// goalTargetCmd builds "goal set" and "goal edit", which take hours and
// optional minutes.
func (a *app) goalTargetCmd(use, short string, edit bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <hours> [minutes]",
		Short: short,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes := ""
			if len(args) == 2 {
				minutes = args[1]
			}
			h, m, err := validate.ParseGoal(args[0], minutes)
			if err == nil {
				err = validate.Goal(h, m)
			}
			if err != nil {
				return a.rejected(err)
			}

			if edit {
				if a.goals.Current() == nil {
					return fmt.Errorf("no goal to edit; use goal set")
				}
				err = a.goals.Edit(h, m)
			} else {
				err = a.goals.Set(h, m)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n",
				a.t(i18n.DailyGoal), timefmt.HoursMinutes(h, m), timefmt.Minutes(h*60+m))
			return nil
		},
	}
}
