package controllers

import (
	"net/http"

	"fixmyward-be/models"

	"github.com/gin-gonic/gin"
)

// GetWards returns the static ward registry, used by the signup form
func GetWards(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"wards": models.BengaluruWards,
	})
}
