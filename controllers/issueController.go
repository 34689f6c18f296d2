package controllers

import (
	"net/http"
	"sort"
	"strings"

	"fixmyward-be/models"

	"github.com/gin-gonic/gin"
)

// CreateIssue files a new report against the caller's ward. Citizens
// only; the ward snapshot and optional auto-categorization happen in
// the service.
func CreateIssue(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if user.Role != models.RoleCitizen {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only citizens can report issues"})
		return
	}

	var input struct {
		Title       string  `json:"title" binding:"required,max=200"`
		Description string  `json:"description" binding:"required,max=1000"`
		Category    string  `json:"category" binding:"required"`
		ImageURL    *string `json:"imageUrl,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidCategory(models.IssueCategory(input.Category)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	issue, err := issueService.Report(c.Request.Context(), user, input.Title, input.Description, models.IssueCategory(input.Category), input.ImageURL)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, issue)
}

// GetMyIssues returns the caller's own reports, newest first
func GetMyIssues(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	issues, err := issueService.ListForCitizen(c.Request.Context(), user)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"issues":      issues,
		"totalIssues": len(issues),
	})
}

// GetWardIssues returns the caller's ward queue. Councillors only.
// Supports ?status= (single value), ?search= over title/description
// and ?sort=oldest|newest.
func GetWardIssues(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if user.Role != models.RoleCouncillor {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only councillors can view the ward queue"})
		return
	}

	var statusFilter *models.IssueStatus
	if status := c.Query("status"); status != "" && status != "ALL" {
		s := models.IssueStatus(status)
		if !models.ValidStatus(s) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		statusFilter = &s
	}

	issues, err := issueService.ListForWard(c.Request.Context(), user.WardID, statusFilter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	if search := c.Query("search"); search != "" {
		needle := strings.ToLower(search)
		filtered := make([]models.Issue, 0, len(issues))
		for _, issue := range issues {
			if strings.Contains(strings.ToLower(issue.Title), needle) ||
				strings.Contains(strings.ToLower(issue.Description), needle) {
				filtered = append(filtered, issue)
			}
		}
		issues = filtered
	}

	// Service order is newest first.
	if c.DefaultQuery("sort", "newest") == "oldest" {
		sort.SliceStable(issues, func(i, j int) bool {
			return issues[i].CreatedAt.Before(issues[j].CreatedAt)
		})
	}

	ward := models.WardByID(user.WardID)
	c.JSON(http.StatusOK, gin.H{
		"ward":        ward,
		"issues":      issues,
		"totalIssues": len(issues),
	})
}

// GetIssue retrieves a single issue visible to the caller
func GetIssue(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	issue, err := issueService.Get(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, issue)
}

// UpdateIssueStatus moves an issue to a new lifecycle state.
// Councillors of the issue's ward only.
func UpdateIssueStatus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := models.IssueStatus(input.Status)
	if !models.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	issue, err := issueService.UpdateStatus(c.Request.Context(), user, c.Param("id"), status)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, issue)
}

// AnalyzeIssue attaches advisory analysis to an issue. Idempotent: an
// already-analyzed issue is returned as is.
func AnalyzeIssue(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	issue, err := issueService.AttachAnalysis(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, issue)
}
