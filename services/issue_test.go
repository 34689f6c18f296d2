package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"fixmyward-be/models"
	"fixmyward-be/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAdvisory is a canned AdvisoryClient for tests.
type fakeAdvisory struct {
	analysis     Advisory
	category     Advisory
	analyzeCalls int
	suggestCalls int
}

func (f *fakeAdvisory) Analyze(ctx context.Context, title, description string) Advisory {
	f.analyzeCalls++
	return f.analysis
}

func (f *fakeAdvisory) SuggestCategory(ctx context.Context, description string) Advisory {
	f.suggestCalls++
	return f.category
}

func newTestService(advisory AdvisoryClient) (*IssueService, *store.MemoryStore) {
	st := store.NewMemoryStore()
	if advisory == nil {
		advisory = &fakeAdvisory{
			analysis: Advisory{Text: "Urgency: Low"},
			category: Advisory{Text: string(models.Other)},
		}
	}
	return NewIssueService(st, advisory), st
}

func citizen(id, name, wardID string) *models.User {
	return &models.User{ID: id, Name: name, Role: models.RoleCitizen, WardID: wardID}
}

func councillor(id, wardID string) *models.User {
	return &models.User{ID: id, Name: "Councillor " + id, Role: models.RoleCouncillor, WardID: wardID}
}

func TestIssueService_Report_WardSnapshot(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)

	reporter := citizen("c1", "Citizen One", "3")
	issue, err := svc.Report(ctx, reporter, "Broken streetlight",
		"The light on 5th cross has been out for two weeks", models.Other, nil)
	require.NoError(t, err)

	assert.Equal(t, "Attur Ward", issue.WardName)
	assert.Equal(t, "Mr. Suresh B", issue.CouncillorName)
	assert.Equal(t, models.Pending, issue.Status)
	assert.Equal(t, "c1", issue.ReportedBy)
	assert.Equal(t, "Citizen One", issue.ReportedByName)
	assert.Equal(t, issue.CreatedAt, issue.UpdatedAt)
	assert.NotEmpty(t, issue.ID)
}

func TestIssueService_Report_UnknownWardFallsBack(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)

	issue, err := svc.Report(ctx, citizen("c1", "Citizen One", "999"), "Overflowing bin",
		"Garbage has not been collected", models.Waste, nil)
	require.NoError(t, err)

	assert.Equal(t, models.BengaluruWards[0].Name, issue.WardName)
	assert.Equal(t, models.BengaluruWards[0].Councillor, issue.CouncillorName)
}

func TestIssueService_Report_AutoCategorize(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		description string
		suggestion  Advisory
		selected    models.IssueCategory
		want        models.IssueCategory
		wantCalls   int
	}{
		{
			name:        "recognized suggestion overrides selection",
			description: "Huge pothole near the market entrance",
			suggestion:  Advisory{Text: string(models.Roads)},
			selected:    models.Other,
			want:        models.Roads,
			wantCalls:   1,
		},
		{
			name:        "unrecognized suggestion keeps selection",
			description: "Something strange is going on here",
			suggestion:  Advisory{Text: "Public Transport"},
			selected:    models.Parks,
			want:        models.Parks,
			wantCalls:   1,
		},
		{
			// The fallback label "Other" is itself recognized, so a
			// failed categorization call still overrides the selection.
			name:        "fallback suggestion overrides selection",
			description: "No water supply since Monday morning",
			suggestion:  Advisory{Text: CategoryFallback, Fallback: true},
			selected:    models.Water,
			want:        models.Other,
			wantCalls:   1,
		},
		{
			name:        "short description skips the advisory call",
			description: "Too short",
			suggestion:  Advisory{Text: string(models.Roads)},
			selected:    models.Water,
			want:        models.Water,
			wantCalls:   0,
		},
		{
			// 9 runes but 27 bytes; the threshold counts characters.
			name:        "short multibyte description skips the advisory call",
			description: strings.Repeat("ದ", 9),
			suggestion:  Advisory{Text: string(models.Roads)},
			selected:    models.Water,
			want:        models.Water,
			wantCalls:   0,
		},
		{
			name:        "long multibyte description triggers the advisory call",
			description: strings.Repeat("ದ", 11),
			suggestion:  Advisory{Text: string(models.Roads)},
			selected:    models.Water,
			want:        models.Roads,
			wantCalls:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advisory := &fakeAdvisory{category: tt.suggestion}
			svc := NewIssueService(store.NewMemoryStore(), advisory)

			issue, err := svc.Report(ctx, citizen("c1", "Citizen One", "1"), "Title", tt.description, tt.selected, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, issue.Category)
			assert.Equal(t, tt.wantCalls, advisory.suggestCalls)
		})
	}
}

func TestIssueService_ListForCitizen(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(nil)

	base := time.Now().Add(-time.Hour)
	seed := []models.Issue{
		{ID: "a", ReportedBy: "c1", WardID: "1", CreatedAt: base},
		{ID: "other", ReportedBy: "c2", WardID: "1", CreatedAt: base.Add(time.Minute)},
		{ID: "b", ReportedBy: "c1", WardID: "1", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, issue := range seed {
		require.NoError(t, st.AppendIssue(ctx, issue))
	}

	issues, err := svc.ListForCitizen(ctx, citizen("c1", "Citizen One", "1"))
	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, "b", issues[0].ID, "newest report comes first")
	assert.Equal(t, "a", issues[1].ID)
}

func TestIssueService_ListForWard(t *testing.T) {
	ctx := context.Background()
	svc, st := newTestService(nil)

	base := time.Now().Add(-time.Hour)
	seed := []models.Issue{
		{ID: "p1", WardID: "2", Status: models.Pending, CreatedAt: base},
		{ID: "r1", WardID: "2", Status: models.Resolved, CreatedAt: base.Add(time.Minute)},
		{ID: "p2", WardID: "2", Status: models.Pending, CreatedAt: base.Add(2 * time.Minute)},
		{ID: "elsewhere", WardID: "5", Status: models.Pending, CreatedAt: base.Add(3 * time.Minute)},
	}
	for _, issue := range seed {
		require.NoError(t, st.AppendIssue(ctx, issue))
	}

	all, err := svc.ListForWard(ctx, "2", nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"p2", "r1", "p1"}, []string{all[0].ID, all[1].ID, all[2].ID})

	pending := models.Pending
	filtered, err := svc.ListForWard(ctx, "2", &pending)
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	for _, issue := range filtered {
		assert.Equal(t, models.Pending, issue.Status)
	}
}

func TestIssueService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)

	issue, err := svc.Report(ctx, citizen("c1", "Citizen One", "4"), "Dry taps",
		"No water supply since Monday morning", models.Water, nil)
	require.NoError(t, err)
	before := issue.UpdatedAt

	updated, err := svc.UpdateStatus(ctx, councillor("co1", "4"), issue.ID, models.InProgress)
	require.NoError(t, err)
	assert.Equal(t, models.InProgress, updated.Status)
	assert.True(t, updated.UpdatedAt.After(before), "status change must refresh UpdatedAt")
	assert.Equal(t, issue.CreatedAt, updated.CreatedAt)

	// Every state is reachable from every other, including reopening.
	updated, err = svc.UpdateStatus(ctx, councillor("co1", "4"), issue.ID, models.Resolved)
	require.NoError(t, err)
	updated, err = svc.UpdateStatus(ctx, councillor("co1", "4"), issue.ID, models.Pending)
	require.NoError(t, err)
	assert.Equal(t, models.Pending, updated.Status)
}

func TestIssueService_UpdateStatus_Authorization(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)

	issue, err := svc.Report(ctx, citizen("c1", "Citizen One", "4"), "Dry taps",
		"No water supply since Monday morning", models.Water, nil)
	require.NoError(t, err)

	// Councillor of another ward.
	_, err = svc.UpdateStatus(ctx, councillor("co2", "5"), issue.ID, models.Resolved)
	assert.ErrorIs(t, err, ErrForbidden)

	// The reporting citizen themselves.
	_, err = svc.UpdateStatus(ctx, citizen("c1", "Citizen One", "4"), issue.ID, models.Resolved)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.UpdateStatus(ctx, councillor("co1", "4"), "missing", models.Resolved)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIssueService_AttachAnalysis_Idempotent(t *testing.T) {
	ctx := context.Background()
	advisory := &fakeAdvisory{analysis: Advisory{Text: "Urgency: High. Inspect the junction box first."}}
	svc := NewIssueService(store.NewMemoryStore(), advisory)

	issue, err := svc.Report(ctx, citizen("c1", "Citizen One", "4"), "Dark street",
		"Street lights are out on the whole block", models.Lighting, nil)
	require.NoError(t, err)

	analyzed, err := svc.AttachAnalysis(ctx, councillor("co1", "4"), issue.ID)
	require.NoError(t, err)
	require.NotNil(t, analyzed.AIAnalysis)
	assert.Equal(t, "Urgency: High. Inspect the junction box first.", *analyzed.AIAnalysis)
	assert.Equal(t, 1, advisory.analyzeCalls)

	// Second call is a no-op and never reaches the advisory client.
	again, err := svc.AttachAnalysis(ctx, councillor("co1", "4"), issue.ID)
	require.NoError(t, err)
	require.NotNil(t, again.AIAnalysis)
	assert.Equal(t, *analyzed.AIAnalysis, *again.AIAnalysis)
	assert.Equal(t, 1, advisory.analyzeCalls)
}

func TestIssueService_AttachAnalysis_StoresFallback(t *testing.T) {
	ctx := context.Background()
	advisory := &fakeAdvisory{analysis: Advisory{Text: AnalysisFallback, Fallback: true}}
	svc := NewIssueService(store.NewMemoryStore(), advisory)

	issue, err := svc.Report(ctx, citizen("c1", "Citizen One", "4"), "Dark street",
		"Street lights are out on the whole block", models.Lighting, nil)
	require.NoError(t, err)

	analyzed, err := svc.AttachAnalysis(ctx, councillor("co1", "4"), issue.ID)
	require.NoError(t, err)
	require.NotNil(t, analyzed.AIAnalysis)
	assert.Equal(t, AnalysisFallback, *analyzed.AIAnalysis)
}

func TestIssueService_AttachAnalysis_Authorization(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)

	issue, err := svc.Report(ctx, citizen("c1", "Citizen One", "4"), "Dark street",
		"Street lights are out on the whole block", models.Lighting, nil)
	require.NoError(t, err)

	_, err = svc.AttachAnalysis(ctx, councillor("co2", "5"), issue.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.AttachAnalysis(ctx, citizen("c1", "Citizen One", "4"), issue.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestIssueService_Get_Visibility(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(nil)

	issue, err := svc.Report(ctx, citizen("c1", "Citizen One", "4"), "Dry taps",
		"No water supply since Monday morning", models.Water, nil)
	require.NoError(t, err)

	got, err := svc.Get(ctx, citizen("c1", "Citizen One", "4"), issue.ID)
	require.NoError(t, err)
	assert.Equal(t, issue.ID, got.ID)

	got, err = svc.Get(ctx, councillor("co1", "4"), issue.ID)
	require.NoError(t, err)
	assert.Equal(t, issue.ID, got.ID)

	// Another citizen of the same ward cannot see it.
	_, err = svc.Get(ctx, citizen("c2", "Citizen Two", "4"), issue.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// A councillor of another ward cannot see it.
	_, err = svc.Get(ctx, councillor("co2", "5"), issue.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}
