package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	database "github.com/codewithgaurave/testAppBackend/database"
	models "github.com/codewithgaurave/testAppBackend/internal/models"
	utility "github.com/codewithgaurave/testAppBackend/internal/utility"
	httpClient "github.com/codewithgaurave/testAppBackend/internal/utility/http"

	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

var validate = validator.New()
var userCollection *mongo.Collection = database.OpenCollection(database.Client, "user")

const requestTimeout = 10 * time.Second

type authResponse struct {
	ID    primitive.ObjectID `json:"_id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Role  string             `json:"role"`
	Token string             `json:"token"`
}

// HashPassword encrypts the password before it is stored.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword checks the input password against the stored hash.
func VerifyPassword(providedPassword string, hashedPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(providedPassword)) == nil
}

// userIdentity reads name and email off a stored user without assuming the
// pointers are set; hand-provisioned documents may omit either field.
func userIdentity(user models.User) (string, string) {
	name, email := "", ""
	if user.Name != nil {
		name = *user.Name
	}
	if user.Email != nil {
		email = *user.Email
	}
	return name, email
}

func Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if validationErr := validate.Struct(user); validationErr != nil {
		httpClient.RespondErrorDetail(w, http.StatusBadRequest, "Fields not valid", validationErr.Error())
		return
	}

	alreadyExists, err := userCollection.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	if alreadyExists > 0 {
		httpClient.RespondError(w, http.StatusBadRequest, "User already exists", nil)
		return
	}

	hashed, err := HashPassword(*user.Password)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	user.Password = &hashed

	user.ID = primitive.NewObjectID()
	// admins are provisioned directly in the store
	user.Role = models.RoleUser
	user.CreatedAt = time.Now().UTC()

	if _, err := userCollection.InsertOne(ctx, user); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	token, err := utility.GenerateToken(*user.Name, *user.Email, user.ID.Hex(), user.Role)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	httpClient.RespondJSON(w, http.StatusCreated, authResponse{
		ID:    user.ID,
		Name:  *user.Name,
		Email: *user.Email,
		Role:  user.Role,
		Token: token,
	})
}

func Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var user models.User
	err := userCollection.FindOne(ctx, bson.M{"email": credentials.Email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		httpClient.RespondError(w, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	if user.Password == nil || !VerifyPassword(credentials.Password, *user.Password) {
		httpClient.RespondError(w, http.StatusUnauthorized, "Invalid email or password", nil)
		return
	}

	name, email := userIdentity(user)
	token, err := utility.GenerateToken(name, email, user.ID.Hex(), user.Role)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	httpClient.RespondJSON(w, http.StatusOK, authResponse{
		ID:    user.ID,
		Name:  name,
		Email: email,
		Role:  user.Role,
		Token: token,
	})
}

func GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	cu, ok := currentUser(r)
	if !ok {
		httpClient.RespondError(w, http.StatusUnauthorized, "Not authorized", nil)
		return
	}

	var user models.User
	opts := options.FindOne().SetProjection(bson.M{"password": 0})
	err := userCollection.FindOne(ctx, bson.M{"_id": cu.ID}, opts).Decode(&user)
	if err == mongo.ErrNoDocuments {
		httpClient.RespondError(w, http.StatusNotFound, "User not found", nil)
		return
	}
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	httpClient.RespondJSON(w, http.StatusOK, user)
}

func GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"password": 0})
	cur, err := userCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Failed to fetch users", err)
		return
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Failed to fetch users", err)
		return
	}

	httpClient.RespondJSON(w, http.StatusOK, users)
}
