package driven

import "context"

// TextExtractor converts raw file bytes into plain text.
// Malformed input fails with domain.ErrUnreadablePDF; the document is
// never registered on extraction failure.
type TextExtractor interface {
	// Extract returns the plain text content of the file.
	Extract(ctx context.Context, data []byte) (string, error)
}
