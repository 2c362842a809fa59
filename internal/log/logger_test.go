package log

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerStampsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf, Level: slog.LevelDebug, Component: ComponentLedger})
	l.Info("saved", FieldRevision, 3)
	out := buf.String()
	if !strings.Contains(out, "component=ledger") || !strings.Contains(out, "revision=3") {
		t.Fatalf("unexpected log line %q", out)
	}

	buf.Reset()
	l.WithComponent(ComponentStorage).Warn("slow")
	if !strings.Contains(buf.String(), "component=storage") {
		t.Fatalf("expected storage component, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogFields(t *testing.T) {
	f := NewFields().WithOperation("create").WithError(errors.New("boom")).WithTransaction("id1", "kopi", 20000, "expense", "makan")
	if f[FieldError] != "boom" || f[FieldAmount] != int64(20000) {
		t.Fatalf("unexpected fields %v", f)
	}
	if len(f.ToSlice()) != len(f)*2 {
		t.Fatalf("slice length mismatch")
	}
}
