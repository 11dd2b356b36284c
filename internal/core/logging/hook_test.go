package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestContextHook_Run(t *testing.T) {
	tests := []struct {
		name      string
		setupCtx  func() context.Context
		wantKeys  []string
		wantEmpty []string
	}{
		{
			name: "both board and document",
			setupCtx: func() context.Context {
				ctx := context.Background()
				ctx = WithBoard(ctx, "work")
				ctx = WithDocument(ctx, "inbox/today.md")
				return ctx
			},
			wantKeys: []string{"board", "document"},
		},
		{
			name: "only board",
			setupCtx: func() context.Context {
				return WithBoard(context.Background(), "work")
			},
			wantKeys:  []string{"board"},
			wantEmpty: []string{"document"},
		},
		{
			name: "only document",
			setupCtx: func() context.Context {
				return WithDocument(context.Background(), "inbox/today.md")
			},
			wantKeys:  []string{"document"},
			wantEmpty: []string{"board"},
		},
		{
			name:      "no context values",
			setupCtx:  context.Background,
			wantEmpty: []string{"board", "document"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf).Hook(ContextHook{})

			logger.Info().Ctx(tt.setupCtx()).Msg("test")

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("failed to parse log: %v", err)
			}

			for _, key := range tt.wantKeys {
				if _, ok := entry[key]; !ok {
					t.Errorf("expected key %q in log output", key)
				}
			}
			for _, key := range tt.wantEmpty {
				if _, ok := entry[key]; ok {
					t.Errorf("did not expect key %q in log output", key)
				}
			}
		})
	}
}
