// Package ai defines the text-generation boundary the concierge talks to.
package ai

import "context"

// TextGenerator produces free-form text for a prompt. Implementations must
// respect context cancellation; the concierge always calls with a deadline.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
