package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/flowdeck/internal/store"
)

// ToCSV writes one row per archived day.
func ToCSV(logs []store.DayLog, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Day", "Mood", "Mode", "Tasks", "Done", "Committed", "Committed+Done", "Archived At"}); err != nil {
		return err
	}

	for _, l := range logs {
		row := []string{
			l.DayKey,
			string(l.Mood),
			string(l.Mode),
			fmt.Sprintf("%d", len(l.Tasks)),
			fmt.Sprintf("%d", l.DoneCount()),
			fmt.Sprintf("%d", l.CommittedCount()),
			fmt.Sprintf("%d", l.CommittedDoneCount()),
			l.ArchivedAt.Local().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
