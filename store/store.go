package store

import (
	"context"

	"fixmyward-be/models"
)

// Store is the persistence contract the auth and issue services depend
// on. Three logical collections: users (append-only), issues (append
// plus full-record replace) and a single optional session user. Reads
// return materialized snapshots; writers replace whole records. No
// cross-collection transactions.
type Store interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	AppendUser(ctx context.Context, user models.User) error
	// FindUserByEmail returns the first user with the given email, or
	// nil when none exists.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)

	ListIssues(ctx context.Context) ([]models.Issue, error)
	AppendIssue(ctx context.Context, issue models.Issue) error
	// ReplaceIssue overwrites the stored record matching issue.ID,
	// refreshing UpdatedAt as a side effect. Unknown ids are a no-op.
	ReplaceIssue(ctx context.Context, issue models.Issue) error
	FindIssueByID(ctx context.Context, id string) (*models.Issue, error)

	GetSession(ctx context.Context) (*models.User, error)
	SetSession(ctx context.Context, user *models.User) error
	ClearSession(ctx context.Context) error
}
