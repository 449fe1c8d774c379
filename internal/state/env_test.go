package state

import (
	"context"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestContextWithEnv(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
	if env.Log == nil {
		t.Error("Environment has no logger")
	}
	if env.Uptime() < 0 {
		t.Errorf("Uptime() = %v, want non-negative", env.Uptime())
	}
}

func TestEnvFromContext_Missing(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when env not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_RedirectStdLog(t *testing.T) {
	env := &LocalEnv{Log: zaptest.NewLogger(t)}

	env.RedirectStdLog()
	if env.restoreStdLog == nil {
		t.Fatal("Expected restoreStdLog to be set")
	}
	env.RestoreStdLog()
	if env.restoreStdLog != nil {
		t.Error("Expected restoreStdLog to be cleared")
	}
}
