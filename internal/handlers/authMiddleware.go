package handlers

import (
	"context"
	"net/http"
	"strings"

	models "github.com/codewithgaurave/testAppBackend/internal/models"
	utility "github.com/codewithgaurave/testAppBackend/internal/utility"
	httpClient "github.com/codewithgaurave/testAppBackend/internal/utility/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Protect validates the bearer token and injects the authenticated identity
// into the request context. Handlers downstream read it back with
// currentUser(r).
func Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			httpClient.RespondError(w, http.StatusUnauthorized, "Not authorized, no token", nil)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httpClient.RespondError(w, http.StatusUnauthorized, "Not authorized, token failed", nil)
			return
		}

		claims, errMsg := utility.ValidateToken(parts[1])
		if errMsg != "" {
			httpClient.RespondError(w, http.StatusUnauthorized, "Not authorized, token failed", nil)
			return
		}

		uid, err := primitive.ObjectIDFromHex(claims.Uid)
		if err != nil {
			httpClient.RespondError(w, http.StatusUnauthorized, "Not authorized, token failed", err)
			return
		}

		cu := models.CurrentUser{
			ID:    uid,
			Name:  claims.Name,
			Email: claims.Email,
			Role:  claims.Role,
		}

		ctx := context.WithValue(r.Context(), models.ContextUser, cu)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Admin gates a route to admin-role callers. It must run after Protect.
func Admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cu, ok := r.Context().Value(models.ContextUser).(models.CurrentUser)
		if !ok || !cu.IsAdmin() {
			httpClient.RespondError(w, http.StatusForbidden, "Not authorized as an admin", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func currentUser(r *http.Request) (models.CurrentUser, bool) {
	cu, ok := r.Context().Value(models.ContextUser).(models.CurrentUser)
	return cu, ok
}
