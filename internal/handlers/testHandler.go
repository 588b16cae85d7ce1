package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	database "github.com/codewithgaurave/testAppBackend/database"
	models "github.com/codewithgaurave/testAppBackend/internal/models"
	"github.com/codewithgaurave/testAppBackend/internal/scoring"
	httpClient "github.com/codewithgaurave/testAppBackend/internal/utility/http"

	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var testCollection *mongo.Collection = database.OpenCollection(database.Client, "test")

type subjectRef struct {
	ID   primitive.ObjectID `json:"_id"`
	Name string             `json:"name"`
}

// populatedTest is a Test with its subject reference resolved to {_id, name}.
type populatedTest struct {
	ID        primitive.ObjectID `json:"_id"`
	User      primitive.ObjectID `json:"user"`
	Subject   subjectRef         `json:"subject"`
	Answers   []models.Answer    `json:"answers"`
	Score     float64            `json:"score"`
	Completed bool               `json:"completed"`
	CreatedAt time.Time          `json:"createdAt"`
}

func CreateTest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	cu, ok := currentUser(r)
	if !ok {
		httpClient.RespondError(w, http.StatusUnauthorized, "Not authorized", nil)
		return
	}

	var input struct {
		Subject string `json:"subject"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	subjectID, err := primitive.ObjectIDFromHex(input.Subject)
	if err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid subject ID", nil)
		return
	}

	test := models.Test{
		ID:        primitive.NewObjectID(),
		User:      cu.ID,
		Subject:   subjectID,
		Answers:   []models.Answer{},
		Score:     0,
		Completed: false,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := testCollection.InsertOne(ctx, test); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	httpClient.RespondJSON(w, http.StatusCreated, test)
}

type submittedAnswer struct {
	Question       string `json:"question"`
	SelectedOption string `json:"selectedOption"`
}

// SubmitTest grades the submitted answers and completes the test. The
// not-completed -> completed transition is a conditional update keyed on the
// current state, so a concurrent duplicate submission loses and gets the
// conflict response instead of double-scoring.
func SubmitTest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	cu, ok := currentUser(r)
	if !ok {
		httpClient.RespondError(w, http.StatusUnauthorized, "Not authorized", nil)
		return
	}

	testID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid test ID", nil)
		return
	}

	var test models.Test
	err = testCollection.FindOne(ctx, bson.M{"_id": testID}).Decode(&test)
	if err == mongo.ErrNoDocuments {
		httpClient.RespondError(w, http.StatusNotFound, "Test not found", nil)
		return
	}
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	// ownership and completion are judged before the payload is even parsed
	if test.User != cu.ID {
		httpClient.RespondError(w, http.StatusUnauthorized, "Not authorized", nil)
		return
	}
	if test.Completed {
		httpClient.RespondError(w, http.StatusBadRequest, "Test already completed", nil)
		return
	}

	var input struct {
		Answers []submittedAnswer `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(input.Answers) == 0 {
		httpClient.RespondError(w, http.StatusBadRequest, "At least one answer is required", nil)
		return
	}

	answers := make([]models.Answer, 0, len(input.Answers))
	questionIDs := make([]primitive.ObjectID, 0, len(input.Answers))
	for _, submitted := range input.Answers {
		questionID, err := primitive.ObjectIDFromHex(submitted.Question)
		if err != nil {
			httpClient.RespondError(w, http.StatusBadRequest, "Invalid question ID", nil)
			return
		}
		answers = append(answers, models.Answer{
			Question:       questionID,
			SelectedOption: submitted.SelectedOption,
		})
		questionIDs = append(questionIDs, questionID)
	}

	cur, err := questionCollection.Find(ctx, bson.M{"_id": bson.M{"$in": questionIDs}})
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	defer cur.Close(ctx)

	questions := make(map[primitive.ObjectID]models.Question)
	for cur.Next(ctx) {
		var question models.Question
		if err := cur.Decode(&question); err != nil {
			httpClient.RespondError(w, http.StatusInternalServerError, "Server error", err)
			return
		}
		questions[question.ID] = question
	}
	if err := cur.Err(); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	score, _ := scoring.Grade(answers, questions)

	// completed:false in the filter makes the transition atomic
	update := bson.M{"$set": bson.M{
		"answers":   answers,
		"score":     score,
		"completed": true,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var graded models.Test
	err = testCollection.FindOneAndUpdate(ctx, bson.M{"_id": testID, "completed": false}, update, opts).Decode(&graded)
	if err == mongo.ErrNoDocuments {
		httpClient.RespondError(w, http.StatusBadRequest, "Test already completed", nil)
		return
	}
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	httpClient.RespondJSON(w, http.StatusOK, graded)
}

func GetTestsByUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	cu, ok := currentUser(r)
	if !ok {
		httpClient.RespondError(w, http.StatusUnauthorized, "Not authorized", nil)
		return
	}

	tests, err := findTests(ctx, bson.M{"user": cu.ID})
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Failed to fetch tests", err)
		return
	}

	httpClient.RespondJSON(w, http.StatusOK, tests)
}

// GetAllTests returns every test for admins and the caller's own tests for
// everyone else.
func GetAllTests(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	cu, ok := currentUser(r)
	if !ok {
		httpClient.RespondError(w, http.StatusUnauthorized, "Not authorized", nil)
		return
	}

	filter := bson.M{"user": cu.ID}
	if cu.IsAdmin() {
		filter = bson.M{}
	}

	tests, err := findTests(ctx, filter)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Failed to fetch tests", err)
		return
	}

	httpClient.RespondJSON(w, http.StatusOK, tests)
}

func findTests(ctx context.Context, filter bson.M) ([]populatedTest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := testCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	tests := []models.Test{}
	if err := cur.All(ctx, &tests); err != nil {
		return nil, err
	}

	return populateSubjects(ctx, tests)
}

func populateSubjects(ctx context.Context, tests []models.Test) ([]populatedTest, error) {
	subjectIDs := make([]primitive.ObjectID, 0, len(tests))
	seen := make(map[primitive.ObjectID]struct{})
	for _, test := range tests {
		if _, ok := seen[test.Subject]; !ok {
			seen[test.Subject] = struct{}{}
			subjectIDs = append(subjectIDs, test.Subject)
		}
	}

	subjects := make(map[primitive.ObjectID]string)
	if len(subjectIDs) > 0 {
		cur, err := subjectCollection.Find(ctx, bson.M{"_id": bson.M{"$in": subjectIDs}})
		if err != nil {
			return nil, err
		}
		defer cur.Close(ctx)

		for cur.Next(ctx) {
			var subject models.Subject
			if err := cur.Decode(&subject); err != nil {
				return nil, err
			}
			subjects[subject.ID] = subject.Name
		}
		if err := cur.Err(); err != nil {
			return nil, err
		}
	}

	populated := make([]populatedTest, 0, len(tests))
	for _, test := range tests {
		populated = append(populated, populatedTest{
			ID:        test.ID,
			User:      test.User,
			Subject:   subjectRef{ID: test.Subject, Name: subjects[test.Subject]},
			Answers:   test.Answers,
			Score:     test.Score,
			Completed: test.Completed,
			CreatedAt: test.CreatedAt,
		})
	}
	return populated, nil
}
