package logger

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedAudit() (*Audit, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	return NewAudit(zap.New(core)), logs
}

func fieldValue(t *testing.T, entry observer.LoggedEntry, key string) string {
	t.Helper()

	for _, field := range entry.Context {
		if field.Key == key {
			return field.String
		}
	}
	t.Fatalf("field %q not found in entry %+v", key, entry)
	return ""
}

func TestAudit_Success(t *testing.T) {
	audit, logs := newObservedAudit()

	audit.Success("User log in", "user u1 logged in")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Level != zapcore.InfoLevel {
		t.Fatalf("level = %v, want info", entry.Level)
	}
	if fieldValue(t, entry, "feature") != "User log in" {
		t.Fatal("missing feature tag")
	}
	if fieldValue(t, entry, "outcome") != "success" {
		t.Fatal("missing outcome tag")
	}
	if fieldValue(t, entry, "detail") != "user u1 logged in" {
		t.Fatal("missing detail")
	}
}

func TestAudit_Failure(t *testing.T) {
	audit, logs := newObservedAudit()

	audit.Failure("Check token", "access token expired")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if fieldValue(t, entries[0], "outcome") != "failure" {
		t.Fatal("missing outcome tag")
	}
}

func TestAudit_ErrorLevel(t *testing.T) {
	audit, logs := newObservedAudit()

	audit.Error("Create product", errors.New("connection refused"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Level != zapcore.ErrorLevel {
		t.Fatalf("level = %v, want error", entries[0].Level)
	}
	if fieldValue(t, entries[0], "outcome") != "error" {
		t.Fatal("missing outcome tag")
	}
}
