package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/flowdeck/internal/store"
)

type jsonExport struct {
	ExportedAt string    `json:"exported_at"`
	Count      int       `json:"count"`
	Days       []jsonDay `json:"days"`
}

type jsonDay struct {
	DayKey         string       `json:"day_key"`
	Mood           string       `json:"mood"`
	Mode           string       `json:"mode"`
	DoneCount      int          `json:"done_count"`
	CommittedCount int          `json:"committed_count"`
	ArchivedAt     string       `json:"archived_at"`
	Tasks          []store.Task `json:"tasks"`
}

// ToJSON writes the full archive including per-day task snapshots.
func ToJSON(logs []store.DayLog, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(logs),
	}

	for _, l := range logs {
		export.Days = append(export.Days, jsonDay{
			DayKey:         l.DayKey,
			Mood:           string(l.Mood),
			Mode:           string(l.Mode),
			DoneCount:      l.DoneCount(),
			CommittedCount: l.CommittedCount(),
			ArchivedAt:     l.ArchivedAt.UTC().Format(time.RFC3339),
			Tasks:          l.Tasks,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
