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

var subjectCollection *mongo.Collection = database.OpenCollection(database.Client, "subject")

type subjectInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func CreateSubject(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	cu, ok := currentUser(r)
	if !ok {
		httpClient.RespondError(w, http.StatusUnauthorized, "Not authorized", nil)
		return
	}

	var input subjectInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if input.Name == "" {
		httpClient.RespondError(w, http.StatusBadRequest, "Subject name is required", nil)
		return
	}

	categoryID, err := primitive.ObjectIDFromHex(input.Category)
	if err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid category ID", nil)
		return
	}

	subject := models.Subject{
		ID:          primitive.NewObjectID(),
		Name:        input.Name,
		Description: input.Description,
		Category:    categoryID,
		CreatedBy:   cu.ID,
		CreatedAt:   time.Now().UTC(),
	}

	if _, err := subjectCollection.InsertOne(ctx, subject); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	httpClient.RespondJSON(w, http.StatusCreated, subject)
}

func GetAllSubjects(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	cur, err := subjectCollection.Find(ctx, bson.M{})
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Failed to fetch subjects", err)
		return
	}
	defer cur.Close(ctx)

	subjects := []models.Subject{}
	if err := cur.All(ctx, &subjects); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Failed to fetch subjects", err)
		return
	}

	httpClient.RespondJSON(w, http.StatusOK, subjects)
}

func GetSubjectsByCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	categoryID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "categoryId"))
	if err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid category ID", nil)
		return
	}

	cur, err := subjectCollection.Find(ctx, bson.M{"category": categoryID})
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Failed to fetch subjects", err)
		return
	}
	defer cur.Close(ctx)

	subjects := []models.Subject{}
	if err := cur.All(ctx, &subjects); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Failed to fetch subjects", err)
		return
	}

	httpClient.RespondJSON(w, http.StatusOK, subjects)
}

func GetSubjectByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid subject ID", nil)
		return
	}

	var subject models.Subject
	err = subjectCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&subject)
	if err == mongo.ErrNoDocuments {
		httpClient.RespondError(w, http.StatusNotFound, "Subject not found", nil)
		return
	}
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	httpClient.RespondJSON(w, http.StatusOK, subject)
}
