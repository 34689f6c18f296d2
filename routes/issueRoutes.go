package routes

import (
	"fixmyward-be/controllers"
	"fixmyward-be/middlewares"

	"github.com/gin-gonic/gin"
)

// dailyReportLimit caps how many issues one citizen can file per day
const dailyReportLimit = 10

// IssueRoutes sets up the issue lifecycle routes
func IssueRoutes(r *gin.Engine) {
	issue := r.Group("/api/issue")
	issue.Use(middlewares.AuthMiddleware())
	{
		issue.POST("/create", middlewares.ReportRateLimiter(dailyReportLimit), controllers.CreateIssue)
		issue.GET("/mine", controllers.GetMyIssues)
		issue.GET("/ward", controllers.GetWardIssues)
		issue.GET("/:id", controllers.GetIssue)
		issue.PATCH("/:id/status", controllers.UpdateIssueStatus)
		issue.POST("/:id/analyze", controllers.AnalyzeIssue)
	}
}
