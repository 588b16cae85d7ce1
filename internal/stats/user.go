package stats

import "time"

type NameRef struct {
	Name string `json:"name"`
}

// HistoryEntry is one completed test in a user's chronological history,
// joined to its subject and category names.
type HistoryEntry struct {
	ID              string    `json:"_id"`
	Score           float64   `json:"score"`
	Completed       bool      `json:"completed"`
	CreatedAt       time.Time `json:"createdAt"`
	SubjectDetails  NameRef   `json:"subjectDetails"`
	CategoryDetails NameRef   `json:"categoryDetails"`
}

type TestScore struct {
	ID    string    `json:"id"`
	Score float64   `json:"score"`
	Date  time.Time `json:"date"`
}

type CategoryStats struct {
	Tests    int                    `json:"tests"`
	Subjects map[string][]TestScore `json:"subjects"`
}

type UserStats struct {
	TotalTests      int                       `json:"totalTests"`
	AvgScore        float64                   `json:"avgScore"`
	TestsByCategory map[string]*CategoryStats `json:"testsByCategory"`
}

// BuildUserStats computes per-user totals and the category -> subject ->
// tests nesting from an already-ordered history (newest first). AvgScore is
// 0 when the history is empty.
func BuildUserStats(history []HistoryEntry) UserStats {
	totalTests := len(history)

	sum := 0.0
	for _, entry := range history {
		sum += entry.Score
	}
	avgScore := 0.0
	if totalTests > 0 {
		avgScore = sum / float64(totalTests)
	}

	testsByCategory := make(map[string]*CategoryStats)
	for _, entry := range history {
		categoryName := entry.CategoryDetails.Name
		subjectName := entry.SubjectDetails.Name

		category, ok := testsByCategory[categoryName]
		if !ok {
			category = &CategoryStats{Subjects: make(map[string][]TestScore)}
			testsByCategory[categoryName] = category
		}

		category.Tests++
		category.Subjects[subjectName] = append(category.Subjects[subjectName], TestScore{
			ID:    entry.ID,
			Score: entry.Score,
			Date:  entry.CreatedAt,
		})
	}

	return UserStats{
		TotalTests:      totalTests,
		AvgScore:        avgScore,
		TestsByCategory: testsByCategory,
	}
}
