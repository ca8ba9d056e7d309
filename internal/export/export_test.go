package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sadopc/flowdeck/internal/store"
)

func sampleLogs() []store.DayLog {
	now := time.Now().UTC().Truncate(time.Second)
	return []store.DayLog{
		{
			DayKey: "2026-08-31",
			Mood:   store.MoodGood,
			Mode:   store.ModeScrum,
			Tasks: []store.Task{
				{ID: "a", Title: "ship release", Status: store.StatusDone, Focus: store.FocusWork, CommittedToday: true},
				{ID: "b", Title: "read paper", Status: store.StatusTodo, Focus: store.FocusLearning},
			},
			ArchivedAt: now,
		},
		{
			DayKey:     "2026-08-30",
			Mood:       store.MoodHard,
			Mode:       store.ModeKanban,
			Tasks:      nil, // empty day
			ArchivedAt: now.Add(-24 * time.Hour),
		},
	}
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.csv")

	if err := ToCSV(sampleLogs(), path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("rows = %d; want header + 2", len(records))
	}
	if records[0][0] != "Day" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][0] != "2026-08-31" || records[1][1] != "good" {
		t.Errorf("row = %v", records[1])
	}
	// Done count for the first day is 1 of 2 tasks.
	if records[1][3] != "2" || records[1][4] != "1" {
		t.Errorf("counts = tasks %s done %s; want 2 1", records[1][3], records[1][4])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(nil, path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if len(data) == 0 {
		t.Fatal("header should still be written")
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")

	if err := ToJSON(sampleLogs(), path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var got jsonExport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Count != 2 || len(got.Days) != 2 {
		t.Fatalf("count = %d days = %d; want 2 2", got.Count, len(got.Days))
	}
	day := got.Days[0]
	if day.DayKey != "2026-08-31" || day.Mood != "good" || day.Mode != "scrum" {
		t.Errorf("day = %+v", day)
	}
	if day.DoneCount != 1 || day.CommittedCount != 1 {
		t.Errorf("counts = %d/%d; want 1/1", day.DoneCount, day.CommittedCount)
	}
	if len(day.Tasks) != 2 || day.Tasks[0].Title != "ship release" {
		t.Errorf("snapshot lost: %+v", day.Tasks)
	}
}
