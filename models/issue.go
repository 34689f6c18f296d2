package models

import (
	"time"
)

// IssueCategory enum
type IssueCategory string

const (
	Roads    IssueCategory = "Roads & Potholes"
	Lighting IssueCategory = "Street Lighting"
	Waste    IssueCategory = "Waste & Sanitation"
	Water    IssueCategory = "Water Supply"
	Parks    IssueCategory = "Parks & Recreation"
	Other    IssueCategory = "Other"
)

// Categories lists every recognized category, in display order.
var Categories = []IssueCategory{Roads, Lighting, Waste, Water, Parks, Other}

// ValidCategory reports whether c is one of the recognized categories
func ValidCategory(c IssueCategory) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// IssueStatus enum
type IssueStatus string

const (
	Pending    IssueStatus = "PENDING"
	InProgress IssueStatus = "IN_PROGRESS"
	Resolved   IssueStatus = "RESOLVED"
	Rejected   IssueStatus = "REJECTED"
)

// ValidStatus reports whether s is one of the four lifecycle states
func ValidStatus(s IssueStatus) bool {
	switch s {
	case Pending, InProgress, Resolved, Rejected:
		return true
	}
	return false
}

// statusTransitions is the explicit transition table. Every state is
// reachable from every other, including Resolved back to Pending;
// reopening a resolved issue is permitted behavior, not a bug.
var statusTransitions = map[IssueStatus]map[IssueStatus]bool{
	Pending:    {Pending: true, InProgress: true, Resolved: true, Rejected: true},
	InProgress: {Pending: true, InProgress: true, Resolved: true, Rejected: true},
	Resolved:   {Pending: true, InProgress: true, Resolved: true, Rejected: true},
	Rejected:   {Pending: true, InProgress: true, Resolved: true, Rejected: true},
}

// CanTransition reports whether an issue may move from one status to another
func CanTransition(from, to IssueStatus) bool {
	return statusTransitions[from][to]
}

// Issue represents a civic issue reported by a citizen against a ward.
// WardName and CouncillorName are snapshots taken from the ward registry
// at creation time; they stay as recorded even if the registry changes.
type Issue struct {
	ID             string        `bson:"id" json:"id"`
	Title          string        `bson:"title" json:"title"`
	Description    string        `bson:"description" json:"description"`
	Category       IssueCategory `bson:"category" json:"category"`
	Status         IssueStatus   `bson:"status" json:"status"`
	ReportedBy     string        `bson:"reportedBy" json:"reportedBy"`
	ReportedByName string        `bson:"reportedByName" json:"reportedByName"`
	WardID         string        `bson:"wardId" json:"wardId"`
	WardName       string        `bson:"wardName" json:"wardName"`
	CouncillorName string        `bson:"councillorName" json:"councillorName"`
	ImageURL       *string       `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	AIAnalysis     *string       `bson:"aiAnalysis,omitempty" json:"aiAnalysis,omitempty"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt" json:"updatedAt"`
}
