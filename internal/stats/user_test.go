package stats

import (
	"testing"
	"time"
)

func entry(id string, score float64, subject, category string, day int) HistoryEntry {
	return HistoryEntry{
		ID:              id,
		Score:           score,
		Completed:       true,
		CreatedAt:       time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
		SubjectDetails:  NameRef{Name: subject},
		CategoryDetails: NameRef{Name: category},
	}
}

func TestBuildUserStatsAverage(t *testing.T) {
	history := []HistoryEntry{
		entry("t2", 100, "Algebra", "Math", 2),
		entry("t1", 80, "Algebra", "Math", 1),
	}

	got := BuildUserStats(history)
	if got.TotalTests != 2 {
		t.Fatalf("totalTests = %d, want 2", got.TotalTests)
	}
	if got.AvgScore != 90 {
		t.Fatalf("avgScore = %v, want 90", got.AvgScore)
	}
}

func TestBuildUserStatsEmptyHistory(t *testing.T) {
	got := BuildUserStats(nil)
	if got.TotalTests != 0 {
		t.Fatalf("totalTests = %d, want 0", got.TotalTests)
	}
	if got.AvgScore != 0 {
		t.Fatalf("avgScore = %v, want 0", got.AvgScore)
	}
	if len(got.TestsByCategory) != 0 {
		t.Fatalf("testsByCategory should be empty, got %v", got.TestsByCategory)
	}
}

func TestBuildUserStatsNesting(t *testing.T) {
	history := []HistoryEntry{
		entry("t3", 70, "Geometry", "Math", 3),
		entry("t2", 40, "Algebra", "Math", 2),
		entry("t1", 90, "Optics", "Physics", 1),
	}

	got := BuildUserStats(history)

	mathStats, ok := got.TestsByCategory["Math"]
	if !ok {
		t.Fatalf("missing Math category: %v", got.TestsByCategory)
	}
	if mathStats.Tests != 2 {
		t.Errorf("Math tests = %d, want 2", mathStats.Tests)
	}
	if len(mathStats.Subjects["Geometry"]) != 1 || len(mathStats.Subjects["Algebra"]) != 1 {
		t.Errorf("unexpected Math subjects: %v", mathStats.Subjects)
	}

	physicsStats, ok := got.TestsByCategory["Physics"]
	if !ok || physicsStats.Tests != 1 {
		t.Fatalf("unexpected Physics stats: %+v", physicsStats)
	}

	optics := physicsStats.Subjects["Optics"]
	if optics[0].ID != "t1" || optics[0].Score != 90 {
		t.Errorf("unexpected Optics entry: %+v", optics[0])
	}
	if !optics[0].Date.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected Optics date: %v", optics[0].Date)
	}
}

func TestBuildUserStatsPreservesHistoryOrderWithinSubject(t *testing.T) {
	// history arrives newest first; nested lists keep that order
	history := []HistoryEntry{
		entry("t2", 60, "Algebra", "Math", 5),
		entry("t1", 30, "Algebra", "Math", 1),
	}

	got := BuildUserStats(history)
	algebra := got.TestsByCategory["Math"].Subjects["Algebra"]
	if len(algebra) != 2 {
		t.Fatalf("got %d Algebra entries, want 2", len(algebra))
	}
	if algebra[0].ID != "t2" || algebra[1].ID != "t1" {
		t.Fatalf("Algebra order = [%s %s], want [t2 t1]", algebra[0].ID, algebra[1].ID)
	}
}
