package export

import (
	"encoding/csv"
	"io"

	"github.com/sadopc/daytally/internal/timefmt"
)

// ToCSV writes one row per interval and a total row per day under a
// Date,Start,End,Duration header.
func ToCSV(out io.Writer, reports []DayReport, l Labels) error {
	w := csv.NewWriter(out)

	if err := w.Write([]string{l.Date, l.Start, l.End, l.Duration}); err != nil {
		return err
	}

	for _, r := range reports {
		for _, row := range r.Rows {
			end := l.InProgress
			if row.End != nil {
				end = timefmt.WallClock(*row.End)
			}
			rec := []string{
				r.Date,
				timefmt.WallClock(row.Start),
				end,
				timefmt.Clock(row.Duration),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		if err := w.Write([]string{r.Date, "", l.DayTotal, timefmt.Clock(r.Total)}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
