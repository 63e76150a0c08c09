package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sadopc/daytally/internal/export"
	"github.com/sadopc/daytally/internal/tracker"
)

func (a *app) exportCmd() *cobra.Command {
	var (
		all    bool
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export intervals as CSV or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			days := []string{a.tracker.SessionDay()}
			if all {
				days = a.tracker.DayKeys()
			}

			var write func(io.Writer) error
			switch format {
			case "csv":
				reports := export.BuildReport(a.tracker, days, a.clock.Now())
				write = func(w io.Writer) error {
					return export.ToCSV(w, reports, export.LabelsFor(a.lang))
				}
			case "json":
				snapshot := a.tracker.Snapshot()
				if !all {
					today := snapshot[days[0]]
					if today == nil {
						today = []tracker.Interval{}
					}
					snapshot = tracker.Days{days[0]: today}
				}
				write = func(w io.Writer) error { return export.ToJSON(w, snapshot) }
			default:
				return fmt.Errorf("unknown format %q (want csv or json)", format)
			}

			if out == "" {
				return write(cmd.OutOrStdout())
			}
			if err := export.WriteFile(out, write); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "export every recorded day instead of today")
	cmd.Flags().StringVar(&format, "format", "csv", "output format: csv or json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to a file instead of stdout")
	return cmd
}
