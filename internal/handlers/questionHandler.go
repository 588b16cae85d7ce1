package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	database "github.com/codewithgaurave/testAppBackend/database"
	models "github.com/codewithgaurave/testAppBackend/internal/models"
	httpClient "github.com/codewithgaurave/testAppBackend/internal/utility/http"

	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var questionCollection *mongo.Collection = database.OpenCollection(database.Client, "question")

func CreateQuestion(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	cu, ok := currentUser(r)
	if !ok {
		httpClient.RespondError(w, http.StatusUnauthorized, "Not authorized", nil)
		return
	}

	var input models.QuestionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := input.Validate(); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	subjectID, err := primitive.ObjectIDFromHex(input.Subject)
	if err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid subject ID", nil)
		return
	}

	question := models.Question{
		ID:            primitive.NewObjectID(),
		Text:          input.Text,
		Options:       input.Options,
		CorrectOption: input.CorrectOption,
		Subject:       subjectID,
		CreatedBy:     cu.ID,
		CreatedAt:     time.Now().UTC(),
	}

	if _, err := questionCollection.InsertOne(ctx, question); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	httpClient.RespondJSON(w, http.StatusCreated, question)
}

func GetQuestionsBySubject(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	subjectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "subjectId"))
	if err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid subject ID", nil)
		return
	}

	cur, err := questionCollection.Find(ctx, bson.M{"subject": subjectID})
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Failed to fetch questions", err)
		return
	}
	defer cur.Close(ctx)

	questions := []models.Question{}
	if err := cur.All(ctx, &questions); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Failed to fetch questions", err)
		return
	}

	httpClient.RespondJSON(w, http.StatusOK, questions)
}

func GetAllQuestions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	cur, err := questionCollection.Find(ctx, bson.M{})
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Failed to fetch questions", err)
		return
	}
	defer cur.Close(ctx)

	questions := []models.Question{}
	if err := cur.All(ctx, &questions); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Failed to fetch questions", err)
		return
	}

	httpClient.RespondJSON(w, http.StatusOK, questions)
}
