package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/sadopc/daytally/internal/i18n"
	"github.com/sadopc/daytally/internal/timefmt"
	"github.com/sadopc/daytally/internal/tracker"
	"github.com/sadopc/daytally/internal/validate"
)

func (a *app) startCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start tracking",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if cur, ok := a.tracker.Current(); ok {
				fmt.Fprintf(out, "Already tracking since %s\n", timefmt.WallClock(cur.StartTime()))
				return nil
			}
			if err := a.tracker.Start(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Started at %s\n", timefmt.WallClock(a.clock.Now()))
			return nil
		},
	}
}

func (a *app) stopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop tracking",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if !a.tracker.Tracking() {
				fmt.Fprintln(out, "Not tracking.")
				return nil
			}
			if err := a.tracker.Stop(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Stopped at %s\n", timefmt.WallClock(a.clock.Now()))
			fmt.Fprintf(out, "%s: %s\n", a.t(i18n.TotalTime), timefmt.Clock(a.tracker.Total()))
			return nil
		},
	}
}

func (a *app) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show today's total, the running interval and goal progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.tracker.Refresh()
			a.printStatus(cmd.OutOrStdout())
			return nil
		},
	}
}

func (a *app) printStatus(out io.Writer) {
	total := a.tracker.Total()
	if cur, ok := a.tracker.Current(); ok {
		fmt.Fprintf(out, "● %s (%s %s)\n", a.t(i18n.Running), a.t(i18n.StartTime), timefmt.WallClock(cur.StartTime()))
	} else {
		fmt.Fprintf(out, "■ %s\n", a.t(i18n.Stopped))
	}
	fmt.Fprintf(out, "%s: %s\n", a.t(i18n.TotalTime), timefmt.Clock(total))

	g := a.goals.Current()
	if g == nil {
		return
	}
	p, _ := a.goals.Progress(total)
	fmt.Fprintf(out, "%s: %s (%.0f%%)\n", a.t(i18n.DailyGoal), timefmt.Minutes(g.TotalMinutes), p.Percent)
	if p.Reached {
		fmt.Fprintln(out, a.t(i18n.GoalReached))
		if p.Overtime > 0 {
			fmt.Fprintf(out, "%s: %s\n", a.t(i18n.Overtime), timefmt.Compact(p.Overtime))
		}
		return
	}
	fmt.Fprintf(out, "%s: %s\n", a.t(i18n.Remaining), timefmt.Compact(p.Remaining))
	if a.tracker.Tracking() {
		fmt.Fprintf(out, "%s %s\n", a.t(i18n.EstimatedCompletion), timefmt.WallClock(p.ETA))
	}
}

func (a *app) addCmd() *cobra.Command {
	var start, end, date string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a finished or open interval by hand",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := a.clock.Now()
			day := now
			if date != "" {
				d, err := timefmt.ParseDayKey(date)
				if err != nil {
					return err
				}
				day = d
			}

			s, err := validate.ParseClock(start, day)
			if err != nil {
				return a.rejected(err)
			}
			e, err := validate.ParseOptionalClock(end, day)
			if err != nil {
				return a.rejected(err)
			}
			if err := validate.Interval(s, e, now, true); err != nil {
				return a.rejected(err)
			}

			iv, err := a.tracker.Add(s, e)
			if errors.Is(err, tracker.ErrOpenNotLast) {
				return a.rejected(err)
			}
			if err != nil {
				return err
			}
			if e != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s - %s (%s)\n",
					timefmt.WallClock(s), timefmt.WallClock(*e), timefmt.Clock(iv.Duration()))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s - %s\n", timefmt.WallClock(s), a.t(i18n.InProgress))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "end time (HH:MM); leave empty for an open interval")
	cmd.Flags().StringVar(&date, "date", "", "day of the interval (YYYY-MM-DD, default today)")
	cmd.MarkFlagRequired("start")
	return cmd
}

func (a *app) resetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear today's intervals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				err := huh.NewConfirm().
					Title(a.t(i18n.ConfirmClear)).
					Affirmative(a.t(i18n.ClearAll)).
					Negative(a.t(i18n.Cancel)).
					Value(&yes).
					Run()
				if err != nil {
					return err
				}
			}
			if !yes {
				return nil
			}
			if err := a.tracker.Reset(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared today's intervals.")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// rejected turns a validation error into a localized message.
func (a *app) rejected(err error) error {
	return errors.New(i18n.Error(a.lang, err))
}
