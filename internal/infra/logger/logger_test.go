package logger

import "testing"

func TestNewPerEnvironment(t *testing.T) {
	for _, env := range []string{"development", "production", "test"} {
		log, err := New(env, "info")
		if err != nil {
			t.Fatalf("env %s: %v", env, err)
		}
		if log == nil {
			t.Fatalf("env %s: nil logger", env)
		}
		_ = log.Sync()
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("production", "shouting"); err == nil {
		t.Fatalf("unknown level must fail")
	}
}
