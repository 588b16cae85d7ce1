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

var categoryCollection *mongo.Collection = database.OpenCollection(database.Client, "category")

func CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	cu, ok := currentUser(r)
	if !ok {
		httpClient.RespondError(w, http.StatusUnauthorized, "Not authorized", nil)
		return
	}

	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if validationErr := validate.Struct(category); validationErr != nil {
		httpClient.RespondErrorDetail(w, http.StatusBadRequest, "Fields not valid", validationErr.Error())
		return
	}

	alreadyExists, err := categoryCollection.CountDocuments(ctx, bson.M{"name": category.Name})
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	if alreadyExists > 0 {
		httpClient.RespondError(w, http.StatusBadRequest, "Category already exists", nil)
		return
	}

	category.ID = primitive.NewObjectID()
	category.CreatedBy = cu.ID
	category.CreatedAt = time.Now().UTC()

	if _, err := categoryCollection.InsertOne(ctx, category); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	httpClient.RespondJSON(w, http.StatusCreated, category)
}

func GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	cur, err := categoryCollection.Find(ctx, bson.M{})
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Failed to fetch categories", err)
		return
	}
	defer cur.Close(ctx)

	categories := []models.Category{}
	if err := cur.All(ctx, &categories); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Failed to fetch categories", err)
		return
	}

	httpClient.RespondJSON(w, http.StatusOK, categories)
}

func GetCategoryByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid category ID", nil)
		return
	}

	var category models.Category
	err = categoryCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err == mongo.ErrNoDocuments {
		httpClient.RespondError(w, http.StatusNotFound, "Category not found", nil)
		return
	}
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	httpClient.RespondJSON(w, http.StatusOK, category)
}
