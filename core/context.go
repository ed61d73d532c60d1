package core

import "context"

// Context keys for run options
type contextKey string

const (
	analysisIDKey contextKey = "analysisID"
	commandKey    contextKey = "command"
)

// withAnalysisID sets the tracked run ID in the context
func withAnalysisID(ctx context.Context, analysisID int64) context.Context {
	return context.WithValue(ctx, analysisIDKey, analysisID)
}

// getAnalysisID returns the tracked run ID from context
func getAnalysisID(ctx context.Context) (int64, bool) {
	val := ctx.Value(analysisIDKey)
	if val == nil {
		return 0, false
	}
	id, ok := val.(int64)
	return id, ok && id > 0
}

// withCommand sets the name of the running command in the context
func withCommand(ctx context.Context, command string) context.Context {
	return context.WithValue(ctx, commandKey, command)
}

// commandFromContext returns the running command, or "unknown" when unset
func commandFromContext(ctx context.Context) string {
	if command, ok := ctx.Value(commandKey).(string); ok && command != "" {
		return command
	}
	return "unknown"
}
