package routes

import (
	"fixmyward-be/controllers"

	"github.com/gin-gonic/gin"
)

// WardRoutes sets up the ward registry routes
func WardRoutes(r *gin.Engine) {
	ward := r.Group("/api/ward")
	{
		ward.GET("", controllers.GetWards)
	}
}
