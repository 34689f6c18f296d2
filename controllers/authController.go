package controllers

import (
	"log"
	"net/http"
	"os"

	"fixmyward-be/models"
	authUtils "fixmyward-be/utils"

	"github.com/gin-gonic/gin"
)

// RegisterUser handles citizen/councillor signup
func RegisterUser(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required,max=50"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Role     string `json:"role" binding:"required"`
		WardID   string `json:"wardId" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidRole(models.UserRole(input.Role)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	user, err := authService.Signup(c.Request.Context(), input.Name, input.Email, input.Password, models.UserRole(input.Role), input.WardID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	setAuthCookie(c, user)

	c.JSON(http.StatusCreated, gin.H{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"role":      user.Role,
		"wardId":    user.WardID,
		"createdAt": user.CreatedAt,
	})
}

// LoginUser handles user login
func LoginUser(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := authService.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	setAuthCookie(c, user)

	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"role":      user.Role,
		"wardId":    user.WardID,
		"createdAt": user.CreatedAt,
	})
}

// GetMe retrieves the authenticated user's information
func GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	ward := models.WardByID(user.WardID)
	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"role":      user.Role,
		"wardId":    user.WardID,
		"ward":      ward,
		"createdAt": user.CreatedAt,
	})
}

// LogoutUser clears the persisted session and the auth_token cookie
func LogoutUser(c *gin.Context) {
	if err := authService.Logout(c.Request.Context()); err != nil {
		log.Println("Error clearing session:", err)
	}

	environment := os.Getenv("GO_ENV")
	domain := os.Getenv("DOMAIN")

	c.SetCookie("auth_token", "", -1, "/", domain, environment == "production", true)
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

func setAuthCookie(c *gin.Context, user *models.User) {
	token, err := authUtils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		log.Println("Error generating token:", err)
		return
	}

	environment := os.Getenv("GO_ENV")
	domain := os.Getenv("DOMAIN")

	// For production, don't set domain to allow cross-origin cookies
	if environment == "production" {
		domain = ""
	}

	cookie := &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		MaxAge:   3600 * 72,
		Path:     "/",
		Domain:   domain,
		Secure:   environment == "production",
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	}
	http.SetCookie(c.Writer, cookie)
}
