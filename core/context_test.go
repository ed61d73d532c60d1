package core

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalysisIDContext(t *testing.T) {
	tests := []struct {
		name   string
		ctx    context.Context
		wantID int64
		wantOK bool
	}{
		{"unset", context.Background(), 0, false},
		{"set", withAnalysisID(context.Background(), 42), 42, true},
		{"zero is untracked", withAnalysisID(context.Background(), 0), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := getAnalysisID(tt.ctx)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestCommandContext(t *testing.T) {
	assert.Equal(t, "unknown", commandFromContext(context.Background()))
	assert.Equal(t, "unknown", commandFromContext(withCommand(context.Background(), "")))
	assert.Equal(t, CommandTrends, commandFromContext(withCommand(context.Background(), CommandTrends)))
}

// TestContextConcurrentAccess tests that context values can be safely accessed concurrently.
func TestContextConcurrentAccess(t *testing.T) {
	ctx := withCommand(context.Background(), CommandImpact)
	ctx = withAnalysisID(ctx, 12345)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			analysisID, ok := getAnalysisID(ctx)
			assert.True(t, ok, "Goroutine %d: getAnalysisID should return true", id)
			assert.Equal(t, int64(12345), analysisID, "Goroutine %d", id)
			assert.Equal(t, CommandImpact, commandFromContext(ctx), "Goroutine %d", id)
		}(i)
	}
	wg.Wait()
}
