package store

import (
	"context"
	"sync"
	"time"

	"fixmyward-be/models"
)

// MemoryStore keeps all three collections in process memory. It backs
// the tests and serves as a zero-dependency fallback when no MongoDB
// is configured.
type MemoryStore struct {
	mu      sync.Mutex
	users   []models.User
	issues  []models.Issue
	session *models.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *MemoryStore) AppendUser(ctx context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, user)
	return nil
}

func (s *MemoryStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].Email == email {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) ListIssues(ctx context.Context) ([]models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Issue, len(s.issues))
	copy(out, s.issues)
	return out, nil
}

func (s *MemoryStore) AppendIssue(ctx context.Context, issue models.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issues = append(s.issues, issue)
	return nil
}

func (s *MemoryStore) ReplaceIssue(ctx context.Context, issue models.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.issues {
		if s.issues[i].ID == issue.ID {
			issue.UpdatedAt = time.Now()
			s.issues[i] = issue
			return nil
		}
	}
	// Unknown id: no-op by contract.
	return nil
}

func (s *MemoryStore) FindIssueByID(ctx context.Context, id string) (*models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.issues {
		if s.issues[i].ID == id {
			is := s.issues[i]
			return &is, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) GetSession(ctx context.Context) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, nil
	}
	u := *s.session
	return &u, nil
}

func (s *MemoryStore) SetSession(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user == nil {
		s.session = nil
		return nil
	}
	u := *user
	s.session = &u
	return nil
}

func (s *MemoryStore) ClearSession(ctx context.Context) error {
	return s.SetSession(ctx, nil)
}
