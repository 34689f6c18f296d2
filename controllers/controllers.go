package controllers

import (
	"errors"
	"net/http"

	"fixmyward-be/models"
	"fixmyward-be/services"

	"github.com/gin-gonic/gin"
)

var (
	authService  *services.AuthService
	issueService *services.IssueService
)

// Init wires the handler package to its services. Called once from
// main before routes are registered.
func Init(auth *services.AuthService, issues *services.IssueService) {
	authService = auth
	issueService = issues
}

// currentUser loads the full user record for the id the auth
// middleware stored on the context.
func currentUser(c *gin.Context) (*models.User, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return nil, false
	}

	user, err := authService.UserByID(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return nil, false
	}
	return user, true
}

// writeServiceError maps service errors to HTTP responses
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": "User with this email already exists"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
