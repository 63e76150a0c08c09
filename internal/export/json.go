package export

import (
	"encoding/json"
	"io"

	"github.com/sadopc/daytally/internal/tracker"
)

// ToJSON writes the raw day-keyed mapping, the same layout the store keeps.
func ToJSON(out io.Writer, days tracker.Days) error {
	if days == nil {
		days = tracker.Days{}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(days)
}
