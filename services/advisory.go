package services

import "context"

// Fallback values returned when the advisory call fails. Failures are
// swallowed here and never propagated to callers.
const (
	AnalysisFallback = "Error generating AI analysis."
	CategoryFallback = "Other"
)

// Advisory is the tagged result of an advisory call. Fallback marks
// text that came from the failure path rather than the model, so
// callers can tell the two apart even though the current flow stores
// both verbatim.
type Advisory struct {
	Text     string
	Fallback bool
}

// AdvisoryClient is the external text-generation collaborator. Both
// calls are best-effort: implementations convert every failure into
// the fixed fallback value instead of returning an error.
type AdvisoryClient interface {
	// Analyze produces an urgency/first-steps/root-cause narrative for
	// an issue.
	Analyze(ctx context.Context, title, description string) Advisory
	// SuggestCategory returns one of the recognized category labels,
	// or an arbitrary string the caller is expected to validate.
	SuggestCategory(ctx context.Context, description string) Advisory
}
