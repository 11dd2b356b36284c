package logging

import "context"

type contextKey string

const (
	boardKey    contextKey = "board"
	documentKey contextKey = "document"
)

// WithBoard adds a board name to the context.
func WithBoard(ctx context.Context, board string) context.Context {
	return context.WithValue(ctx, boardKey, board)
}

// WithDocument adds a document path to the context.
func WithDocument(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, documentKey, path)
}

// GetBoard retrieves the board name from the context.
// Returns empty string if not present.
func GetBoard(ctx context.Context) string {
	if b, ok := ctx.Value(boardKey).(string); ok {
		return b
	}
	return ""
}

// GetDocument retrieves the document path from the context.
// Returns empty string if not present.
func GetDocument(ctx context.Context) string {
	if p, ok := ctx.Value(documentKey).(string); ok {
		return p
	}
	return ""
}
