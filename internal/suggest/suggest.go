// Package suggest asks a generative-AI provider for activity suggestions
// matching a mood.
package suggest

import "context"

// Suggester produces a short activity list for the given mood description.
type Suggester interface {
	SuggestActivities(ctx context.Context, mood string) (string, error)
}
