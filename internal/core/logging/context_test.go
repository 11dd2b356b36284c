package logging

import (
	"context"
	"testing"
)

func TestBoardContext(t *testing.T) {
	ctx := WithBoard(context.Background(), "work")
	if got := GetBoard(ctx); got != "work" {
		t.Errorf("GetBoard() = %q, want %q", got, "work")
	}

	if got := GetBoard(context.Background()); got != "" {
		t.Errorf("GetBoard() on empty context = %q, want empty", got)
	}
}

func TestDocumentContext(t *testing.T) {
	ctx := WithDocument(context.Background(), "inbox/today.md")
	if got := GetDocument(ctx); got != "inbox/today.md" {
		t.Errorf("GetDocument() = %q, want %q", got, "inbox/today.md")
	}

	if got := GetDocument(context.Background()); got != "" {
		t.Errorf("GetDocument() on empty context = %q, want empty", got)
	}
}
