package handlers

import (
	"context"
	"net/http"

	models "github.com/codewithgaurave/testAppBackend/internal/models"
	"github.com/codewithgaurave/testAppBackend/internal/stats"
	httpClient "github.com/codewithgaurave/testAppBackend/internal/utility/http"

	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type overallStats struct {
	TotalTests      int64   `json:"totalTests"`
	TotalTestTakers int     `json:"totalTestTakers"`
	OverallAvgScore float64 `json:"overallAvgScore"`
}

type detailedStatsResponse struct {
	CategoriesBreakdown []stats.CategoryGroup `json:"categoriesBreakdown"`
	OverallStats        overallStats          `json:"overallStats"`
}

// GetDetailedStats builds the category/subject rollup over every test plus
// global scalars over completed tests. The rollup itself is an in-memory
// fold; the scalars are computed store-side like the rest of the counting in
// this package.
func GetDetailedStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	records, err := loadTestRecords(ctx)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Failed to fetch statistics", err)
		return
	}

	breakdown := stats.BuildCategoriesBreakdown(records)

	totalTests, err := testCollection.CountDocuments(ctx, bson.M{"completed": true})
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Failed to fetch statistics", err)
		return
	}

	testTakers, err := testCollection.Distinct(ctx, "user", bson.M{"completed": true})
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Failed to fetch statistics", err)
		return
	}

	overallAvgScore, err := averageCompletedScore(ctx)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Failed to fetch statistics", err)
		return
	}

	httpClient.RespondJSON(w, http.StatusOK, detailedStatsResponse{
		CategoriesBreakdown: breakdown,
		OverallStats: overallStats{
			TotalTests:      totalTests,
			TotalTestTakers: len(testTakers),
			OverallAvgScore: overallAvgScore,
		},
	})
}

type userSummary struct {
	ID    primitive.ObjectID `bson:"_id" json:"_id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
	Role  string             `bson:"role" json:"role"`
}

type userStatsResponse struct {
	User        userSummary          `json:"user"`
	Stats       stats.UserStats      `json:"stats"`
	TestHistory []stats.HistoryEntry `json:"testHistory"`
}

// GetUserTestStats reports one user's completed-test history and the
// category/subject nesting derived from it.
func GetUserTestStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userId"))
	if err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	var user userSummary
	opts := options.FindOne().SetProjection(bson.M{"name": 1, "email": 1, "role": 1})
	err = userCollection.FindOne(ctx, bson.M{"_id": userID}, opts).Decode(&user)
	if err == mongo.ErrNoDocuments {
		httpClient.RespondError(w, http.StatusNotFound, "User not found", nil)
		return
	}
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Failed to fetch user statistics", err)
		return
	}

	history, err := loadUserHistory(ctx, userID)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Failed to fetch user statistics", err)
		return
	}

	httpClient.RespondJSON(w, http.StatusOK, userStatsResponse{
		User:        user,
		Stats:       stats.BuildUserStats(history),
		TestHistory: history,
	})
}

// loadTestRecords joins every test to its subject, category, and user. Tests
// with a dangling reference are dropped, matching inner-join semantics.
func loadTestRecords(ctx context.Context) ([]stats.TestRecord, error) {
	cur, err := testCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	tests := []models.Test{}
	if err := cur.All(ctx, &tests); err != nil {
		return nil, err
	}

	subjects, err := allSubjects(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := allCategories(ctx)
	if err != nil {
		return nil, err
	}
	users, err := allUsers(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]stats.TestRecord, 0, len(tests))
	for _, test := range tests {
		subject, ok := subjects[test.Subject]
		if !ok {
			continue
		}
		category, ok := categories[subject.Category]
		if !ok {
			continue
		}
		user, ok := users[test.User]
		if !ok {
			continue
		}

		name, _ := userIdentity(user)

		records = append(records, stats.TestRecord{
			ID:           test.ID.Hex(),
			Score:        test.Score,
			Completed:    test.Completed,
			CreatedAt:    test.CreatedAt,
			UserID:       user.ID.Hex(),
			UserName:     name,
			SubjectID:    subject.ID.Hex(),
			SubjectName:  subject.Name,
			CategoryID:   category.ID.Hex(),
			CategoryName: category.Name,
		})
	}
	return records, nil
}

func loadUserHistory(ctx context.Context, userID primitive.ObjectID) ([]stats.HistoryEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := testCollection.Find(ctx, bson.M{"user": userID, "completed": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	tests := []models.Test{}
	if err := cur.All(ctx, &tests); err != nil {
		return nil, err
	}

	subjects, err := allSubjects(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := allCategories(ctx)
	if err != nil {
		return nil, err
	}

	history := make([]stats.HistoryEntry, 0, len(tests))
	for _, test := range tests {
		subject, ok := subjects[test.Subject]
		if !ok {
			continue
		}
		category, ok := categories[subject.Category]
		if !ok {
			continue
		}

		history = append(history, stats.HistoryEntry{
			ID:              test.ID.Hex(),
			Score:           test.Score,
			Completed:       test.Completed,
			CreatedAt:       test.CreatedAt,
			SubjectDetails:  stats.NameRef{Name: subject.Name},
			CategoryDetails: stats.NameRef{Name: category.Name},
		})
	}
	return history, nil
}

func averageCompletedScore(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "completed", Value: true}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "avgScore", Value: bson.D{{Key: "$avg", Value: "$score"}}},
		}}},
	}

	cur, err := testCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var results []struct {
		AvgScore float64 `bson:"avgScore"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].AvgScore, nil
}

func allSubjects(ctx context.Context) (map[primitive.ObjectID]models.Subject, error) {
	cur, err := subjectCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	subjects := make(map[primitive.ObjectID]models.Subject)
	for cur.Next(ctx) {
		var subject models.Subject
		if err := cur.Decode(&subject); err != nil {
			return nil, err
		}
		subjects[subject.ID] = subject
	}
	return subjects, cur.Err()
}

func allCategories(ctx context.Context) (map[primitive.ObjectID]models.Category, error) {
	cur, err := categoryCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	categories := make(map[primitive.ObjectID]models.Category)
	for cur.Next(ctx) {
		var category models.Category
		if err := cur.Decode(&category); err != nil {
			return nil, err
		}
		categories[category.ID] = category
	}
	return categories, cur.Err()
}

func allUsers(ctx context.Context) (map[primitive.ObjectID]models.User, error) {
	opts := options.Find().SetProjection(bson.M{"password": 0})
	cur, err := userCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := make(map[primitive.ObjectID]models.User)
	for cur.Next(ctx) {
		var user models.User
		if err := cur.Decode(&user); err != nil {
			return nil, err
		}
		users[user.ID] = user
	}
	return users, cur.Err()
}
