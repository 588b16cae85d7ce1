package stats

import (
	"math"
	"testing"
	"time"
)

func record(id, userID, userName, subjID, subjName, catID, catName string, score float64, completed bool) TestRecord {
	return TestRecord{
		ID:           id,
		Score:        score,
		Completed:    completed,
		CreatedAt:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		UserID:       userID,
		UserName:     userName,
		SubjectID:    subjID,
		SubjectName:  subjName,
		CategoryID:   catID,
		CategoryName: catName,
	}
}

func TestBuildCategoriesBreakdownGrouping(t *testing.T) {
	records := []TestRecord{
		record("t1", "u1", "Alice", "s1", "Algebra", "c1", "Math", 80, true),
		record("t2", "u2", "Bob", "s1", "Algebra", "c1", "Math", 60, true),
		record("t3", "u1", "Alice", "s2", "Geometry", "c1", "Math", 100, false),
		record("t4", "u3", "Carol", "s3", "Optics", "c2", "Physics", 40, true),
	}

	breakdown := BuildCategoriesBreakdown(records)
	if len(breakdown) != 2 {
		t.Fatalf("got %d category groups, want 2", len(breakdown))
	}

	mathGroup := breakdown[0]
	if mathGroup.ID.CategoryID != "c1" || mathGroup.ID.CategoryName != "Math" {
		t.Fatalf("unexpected first category key: %+v", mathGroup.ID)
	}
	if len(mathGroup.Subjects) != 2 {
		t.Fatalf("Math: got %d subject groups, want 2", len(mathGroup.Subjects))
	}
	if mathGroup.TotalTests != 3 {
		t.Errorf("Math totalTests = %d, want 3", mathGroup.TotalTests)
	}
	if mathGroup.TotalUniqueUsers != 2 {
		t.Errorf("Math totalUniqueUsers = %d, want 2", mathGroup.TotalUniqueUsers)
	}

	algebra := mathGroup.Subjects[0]
	if algebra.Name != "Algebra" {
		t.Fatalf("first Math subject = %q, want Algebra", algebra.Name)
	}
	if algebra.TestCount != 2 {
		t.Errorf("Algebra testCount = %d, want 2", algebra.TestCount)
	}
	if algebra.AvgScore != 70 {
		t.Errorf("Algebra avgScore = %v, want 70", algebra.AvgScore)
	}
	if algebra.UsersCount != 2 {
		t.Errorf("Algebra usersCount = %d, want 2", algebra.UsersCount)
	}
	if len(algebra.Tests) != 2 || algebra.Tests[0].ID != "t1" || algebra.Tests[0].User.Name != "Alice" {
		t.Errorf("unexpected Algebra tests: %+v", algebra.Tests)
	}

	geometry := mathGroup.Subjects[1]
	if geometry.Name != "Geometry" || geometry.TestCount != 1 || geometry.AvgScore != 100 {
		t.Errorf("unexpected Geometry group: %+v", geometry)
	}
	if geometry.Tests[0].Completed {
		t.Errorf("Geometry test completed flag should carry through as false")
	}

	physics := breakdown[1]
	if physics.ID.CategoryName != "Physics" || physics.TotalTests != 1 || physics.TotalUniqueUsers != 1 {
		t.Errorf("unexpected Physics group: %+v", physics)
	}
}

func TestBuildCategoriesBreakdownDeduplicatesUsersAcrossSubjects(t *testing.T) {
	// u1 appears in both subjects of c1; the category-level distinct count
	// must deduplicate after grouping, not sum per-subject counts.
	records := []TestRecord{
		record("t1", "u1", "Alice", "s1", "Algebra", "c1", "Math", 50, true),
		record("t2", "u1", "Alice", "s2", "Geometry", "c1", "Math", 50, true),
		record("t3", "u2", "Bob", "s2", "Geometry", "c1", "Math", 50, true),
	}

	breakdown := BuildCategoriesBreakdown(records)
	if len(breakdown) != 1 {
		t.Fatalf("got %d category groups, want 1", len(breakdown))
	}

	group := breakdown[0]
	perSubjectSum := 0
	for _, subject := range group.Subjects {
		perSubjectSum += subject.UsersCount
	}
	if perSubjectSum != 3 {
		t.Fatalf("per-subject user counts sum = %d, want 3", perSubjectSum)
	}
	if group.TotalUniqueUsers != 2 {
		t.Fatalf("totalUniqueUsers = %d, want 2 (deduplicated)", group.TotalUniqueUsers)
	}
}

func TestBuildCategoriesBreakdownSortedByCategoryName(t *testing.T) {
	records := []TestRecord{
		record("t1", "u1", "Alice", "s1", "Optics", "c2", "Physics", 10, true),
		record("t2", "u1", "Alice", "s2", "Algebra", "c1", "Math", 20, true),
		record("t3", "u1", "Alice", "s3", "Cells", "c3", "Biology", 30, true),
	}

	breakdown := BuildCategoriesBreakdown(records)
	got := []string{}
	for _, group := range breakdown {
		got = append(got, group.ID.CategoryName)
	}

	want := []string{"Biology", "Math", "Physics"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("category order = %v, want %v", got, want)
		}
	}
}

func TestBuildCategoriesBreakdownIncludesIncompleteTests(t *testing.T) {
	records := []TestRecord{
		record("t1", "u1", "Alice", "s1", "Algebra", "c1", "Math", 100, true),
		record("t2", "u2", "Bob", "s1", "Algebra", "c1", "Math", 0, false),
	}

	breakdown := BuildCategoriesBreakdown(records)
	algebra := breakdown[0].Subjects[0]
	if algebra.TestCount != 2 {
		t.Fatalf("testCount = %d, want 2 (incomplete tests participate)", algebra.TestCount)
	}
	if math.Abs(algebra.AvgScore-50) > 1e-9 {
		t.Fatalf("avgScore = %v, want 50", algebra.AvgScore)
	}
}

func TestBuildCategoriesBreakdownEmpty(t *testing.T) {
	breakdown := BuildCategoriesBreakdown(nil)
	if len(breakdown) != 0 {
		t.Fatalf("got %d groups for no records, want 0", len(breakdown))
	}
}
