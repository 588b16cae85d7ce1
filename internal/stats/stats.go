// Package stats derives the admin reporting rollups from the joined
// Test/Subject/Category/User graph. The detailed breakdown is a two-phase
// fold: tests group to subject level first, then subject groups fold up to
// category level. Distinct-user counts are recomputed by deduplication at
// each level because per-subject set sizes do not add up to the category's
// logical user set.
package stats

import (
	"sort"
	"time"
)

// TestRecord is one test joined to its owning user, subject, and the
// subject's category. Identifiers are hex strings.
type TestRecord struct {
	ID           string
	Score        float64
	Completed    bool
	CreatedAt    time.Time
	UserID       string
	UserName     string
	SubjectID    string
	SubjectName  string
	CategoryID   string
	CategoryName string
}

type UserRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

type TestSummary struct {
	ID        string    `json:"_id"`
	Score     float64   `json:"score"`
	Completed bool      `json:"completed"`
	User      UserRef   `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

type SubjectGroup struct {
	ID         string        `json:"_id"`
	Name       string        `json:"name"`
	TestCount  int           `json:"testCount"`
	AvgScore   float64       `json:"avgScore"`
	UsersCount int           `json:"usersCount"`
	Tests      []TestSummary `json:"tests"`
}

type CategoryKey struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

type CategoryGroup struct {
	ID               CategoryKey    `json:"_id"`
	Subjects         []SubjectGroup `json:"subjects"`
	TotalTests       int            `json:"totalTests"`
	TotalUniqueUsers int            `json:"totalUniqueUsers"`
}

type subjectAcc struct {
	key      CategoryKey
	group    SubjectGroup
	scoreSum float64
	users    map[string]struct{}
}

// BuildCategoriesBreakdown folds test records into subject groups and the
// subject groups into category groups, sorted by category name ascending.
// All tests participate regardless of completion state; averages at this
// level are over every test in the group.
func BuildCategoriesBreakdown(records []TestRecord) []CategoryGroup {
	subjects := make(map[string]*subjectAcc)
	var subjectOrder []string

	for _, rec := range records {
		key := rec.CategoryID + "/" + rec.SubjectID
		acc, ok := subjects[key]
		if !ok {
			acc = &subjectAcc{
				key: CategoryKey{CategoryID: rec.CategoryID, CategoryName: rec.CategoryName},
				group: SubjectGroup{
					ID:   rec.SubjectID,
					Name: rec.SubjectName,
				},
				users: make(map[string]struct{}),
			}
			subjects[key] = acc
			subjectOrder = append(subjectOrder, key)
		}

		acc.group.Tests = append(acc.group.Tests, TestSummary{
			ID:        rec.ID,
			Score:     rec.Score,
			Completed: rec.Completed,
			User:      UserRef{ID: rec.UserID, Name: rec.UserName},
			CreatedAt: rec.CreatedAt,
		})
		acc.group.TestCount++
		acc.scoreSum += rec.Score
		acc.users[rec.UserID] = struct{}{}
	}

	categories := make(map[string]*CategoryGroup)
	categoryUsers := make(map[string]map[string]struct{})
	var categoryOrder []string

	for _, key := range subjectOrder {
		acc := subjects[key]
		acc.group.AvgScore = acc.scoreSum / float64(acc.group.TestCount)
		acc.group.UsersCount = len(acc.users)

		catID := acc.key.CategoryID
		group, ok := categories[catID]
		if !ok {
			group = &CategoryGroup{ID: acc.key}
			categories[catID] = group
			categoryUsers[catID] = make(map[string]struct{})
			categoryOrder = append(categoryOrder, catID)
		}

		group.Subjects = append(group.Subjects, acc.group)
		group.TotalTests += acc.group.TestCount
		for _, test := range acc.group.Tests {
			categoryUsers[catID][test.User.ID] = struct{}{}
		}
	}

	breakdown := make([]CategoryGroup, 0, len(categoryOrder))
	for _, catID := range categoryOrder {
		group := categories[catID]
		group.TotalUniqueUsers = len(categoryUsers[catID])
		sort.Slice(group.Subjects, func(i, j int) bool {
			return group.Subjects[i].Name < group.Subjects[j].Name
		})
		breakdown = append(breakdown, *group)
	}

	sort.Slice(breakdown, func(i, j int) bool {
		return breakdown[i].ID.CategoryName < breakdown[j].ID.CategoryName
	})

	return breakdown
}
