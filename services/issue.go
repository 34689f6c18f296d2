package services

import (
	"context"
	"sort"
	"time"
	"unicode/utf8"

	"fixmyward-be/models"
	"fixmyward-be/store"

	"github.com/google/uuid"
)

// Descriptions longer than this, counted in runes, are sent for
// auto-categorization.
const autoCategorizeMinLen = 10

// IssueService implements the issue lifecycle: report, role-scoped
// listing, status triage and one-shot AI annotation.
type IssueService struct {
	store    store.Store
	advisory AdvisoryClient
}

func NewIssueService(s store.Store, advisory AdvisoryClient) *IssueService {
	return &IssueService{store: s, advisory: advisory}
}

// Report files a new issue for the reporting user's ward. Ward and
// councillor names are snapshotted from the registry so the record
// keeps them even if the registry changes later. When the description
// is long enough, the advisory client may override the caller-selected
// category; an unrecognized suggestion keeps the caller's choice.
func (s *IssueService) Report(ctx context.Context, user *models.User, title, description string, category models.IssueCategory, imageURL *string) (*models.Issue, error) {
	if !models.ValidCategory(category) {
		category = models.Other
	}

	if utf8.RuneCountInString(description) > autoCategorizeMinLen {
		suggested := s.advisory.SuggestCategory(ctx, description)
		// Only the label decides; a fallback "Other" is recognized and
		// overrides the selection like any other suggestion.
		if models.ValidCategory(models.IssueCategory(suggested.Text)) {
			category = models.IssueCategory(suggested.Text)
		}
	}

	ward := models.WardByID(user.WardID)
	now := time.Now()
	issue := models.Issue{
		ID:             uuid.NewString(),
		Title:          title,
		Description:    description,
		Category:       category,
		Status:         models.Pending,
		ReportedBy:     user.ID,
		ReportedByName: user.Name,
		WardID:         user.WardID,
		WardName:       ward.Name,
		CouncillorName: ward.Councillor,
		ImageURL:       imageURL,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.store.AppendIssue(ctx, issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// ListForCitizen returns the user's own reports, newest first.
func (s *IssueService) ListForCitizen(ctx context.Context, user *models.User) ([]models.Issue, error) {
	all, err := s.store.ListIssues(ctx)
	if err != nil {
		return nil, err
	}

	issues := make([]models.Issue, 0, len(all))
	for _, issue := range all {
		if issue.ReportedBy == user.ID {
			issues = append(issues, issue)
		}
	}
	sortNewestFirst(issues)
	return issues, nil
}

// ListForWard returns a ward's issues, newest first, optionally
// restricted to a single status.
func (s *IssueService) ListForWard(ctx context.Context, wardID string, status *models.IssueStatus) ([]models.Issue, error) {
	all, err := s.store.ListIssues(ctx)
	if err != nil {
		return nil, err
	}

	issues := make([]models.Issue, 0, len(all))
	for _, issue := range all {
		if issue.WardID != wardID {
			continue
		}
		if status != nil && issue.Status != *status {
			continue
		}
		issues = append(issues, issue)
	}
	sortNewestFirst(issues)
	return issues, nil
}

// Get returns a single issue visible to the actor: citizens see only
// their own reports, councillors only their ward.
func (s *IssueService) Get(ctx context.Context, actor *models.User, issueID string) (*models.Issue, error) {
	issue, err := s.store.FindIssueByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, ErrNotFound
	}
	if !canView(actor, issue) {
		return nil, ErrForbidden
	}
	return issue, nil
}

// UpdateStatus moves an issue to a new lifecycle state. Only a
// councillor of the issue's ward may do this; the transition table
// currently allows every move, including reopening resolved issues.
func (s *IssueService) UpdateStatus(ctx context.Context, actor *models.User, issueID string, newStatus models.IssueStatus) (*models.Issue, error) {
	issue, err := s.store.FindIssueByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, ErrNotFound
	}
	if actor.Role != models.RoleCouncillor || actor.WardID != issue.WardID {
		return nil, ErrForbidden
	}
	if !models.CanTransition(issue.Status, newStatus) {
		return nil, ErrForbidden
	}

	issue.Status = newStatus
	if err := s.store.ReplaceIssue(ctx, *issue); err != nil {
		return nil, err
	}
	return s.store.FindIssueByID(ctx, issueID)
}

// AttachAnalysis annotates an issue with advisory text. The analysis
// is write-once: a second call returns the issue unchanged without
// touching the advisory client. Fallback text from a failed call is
// stored verbatim, same as real output.
func (s *IssueService) AttachAnalysis(ctx context.Context, actor *models.User, issueID string) (*models.Issue, error) {
	issue, err := s.store.FindIssueByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, ErrNotFound
	}
	if actor.Role != models.RoleCouncillor || actor.WardID != issue.WardID {
		return nil, ErrForbidden
	}
	if issue.AIAnalysis != nil {
		return issue, nil
	}

	result := s.advisory.Analyze(ctx, issue.Title, issue.Description)
	issue.AIAnalysis = &result.Text
	if err := s.store.ReplaceIssue(ctx, *issue); err != nil {
		return nil, err
	}
	return s.store.FindIssueByID(ctx, issueID)
}

func canView(actor *models.User, issue *models.Issue) bool {
	switch actor.Role {
	case models.RoleCitizen:
		return issue.ReportedBy == actor.ID
	case models.RoleCouncillor:
		return issue.WardID == actor.WardID
	}
	return false
}

func sortNewestFirst(issues []models.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].CreatedAt.After(issues[j].CreatedAt)
	})
}
