package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sadopc/daytally/internal/i18n"
	"github.com/sadopc/daytally/internal/timefmt"
	"github.com/sadopc/daytally/internal/tracker"
)

// Source is where report rows are read from. *tracker.Store satisfies it.
type Source interface {
	ForDay(day string) []tracker.Interval
	SessionDay() string
}

type Row struct {
	Start    time.Time
	End      *time.Time
	Duration time.Duration
}

type DayReport struct {
	Date  string
	Rows  []Row
	Total time.Duration
}

// BuildReport collects the given days in order. The running interval (open
// and last on the session day) counts up to now; any other open interval
// counts as zero, matching the tracker's totals.
func BuildReport(src Source, days []string, now time.Time) []DayReport {
	session := src.SessionDay()
	reports := make([]DayReport, 0, len(days))
	for _, day := range days {
		list := src.ForDay(day)
		r := DayReport{Date: day, Rows: make([]Row, 0, len(list))}
		for i, iv := range list {
			row := Row{Start: iv.StartTime()}
			if end, ok := iv.EndTime(); ok {
				row.End = &end
				row.Duration = iv.Duration()
			} else if day == session && i == len(list)-1 && now.After(row.Start) {
				row.Duration = now.Sub(row.Start)
			}
			r.Total += row.Duration
			r.Rows = append(r.Rows, row)
		}
		reports = append(reports, r)
	}
	return reports
}

// Labels are the localized column and marker texts of a CSV report.
type Labels struct {
	Date       string
	Start      string
	End        string
	Duration   string
	DayTotal   string
	InProgress string
}

func LabelsFor(lang i18n.Lang) Labels {
	return Labels{
		Date:       i18n.T(lang, i18n.Date),
		Start:      i18n.T(lang, i18n.StartTime),
		End:        i18n.T(lang, i18n.EndTime),
		Duration:   i18n.T(lang, i18n.Duration),
		DayTotal:   i18n.T(lang, i18n.DayTotal),
		InProgress: i18n.T(lang, i18n.InProgress),
	}
}

// Filename suggests a file name for an export taken at now.
func Filename(ext string, all bool, now time.Time) string {
	scope := "today"
	if all {
		scope = "history"
	}
	return fmt.Sprintf("daytally-%s-%s.%s", scope, timefmt.DayKey(now), ext)
}

// WriteFile creates path and hands it to write.
func WriteFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
