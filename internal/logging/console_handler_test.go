package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func newTestConsole(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(level)
	return slog.New(newPrettyHandler(&buf, lvl, false)), &buf
}

func TestConsoleHeaderShowsComponentAndSubject(t *testing.T) {
	logger, buf := newTestConsole(slog.LevelInfo)
	logger = NewComponentLogger(logger, "reportrun").With(String(FieldRunID, "0123456789abcdef"), String(FieldDataset, "May"))

	logger.Info("period loaded", Int("rows", 12))

	out := buf.String()
	if !strings.Contains(out, "INFO [reportrun] run 01234567 · May – period loaded") {
		t.Fatalf("unexpected header: %q", out)
	}
	if !strings.Contains(out, "    - Rows: 12") {
		t.Fatalf("expected rows field, got %q", out)
	}
	if strings.Contains(out, "Run Id") || strings.Contains(out, "Dataset:") {
		t.Fatalf("subject fields should not repeat as bullets: %q", out)
	}
}

func TestConsoleHighlightsWarningFieldsFirst(t *testing.T) {
	logger, buf := newTestConsole(slog.LevelInfo)

	WarnWithContext(logger, "identifiers missing from master", "unknown_ids",
		Int(FieldCount, 2),
		Strings(FieldSample, []string{"X1", "X2"}),
	)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) < 4 {
		t.Fatalf("expected header plus fields, got %q", buf.String())
	}
	if !strings.Contains(lines[0], "WARN") {
		t.Fatalf("expected WARN header, got %q", lines[0])
	}
	if lines[1] != "    - Event: unknown_ids" {
		t.Fatalf("expected event first, got %q", lines[1])
	}
	if !strings.Contains(buf.String(), "    - Sample: X1, X2") {
		t.Fatalf("expected joined sample, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "    - Impact: report generated with warnings") {
		t.Fatalf("expected default impact, got %q", buf.String())
	}
}

func TestConsoleDebugListsRawKeys(t *testing.T) {
	logger, buf := newTestConsole(slog.LevelDebug)
	logger.Debug("columns resolved", String("config_path", "/tmp/x.toml"))

	if !strings.Contains(buf.String(), "    config_path: /tmp/x.toml") {
		t.Fatalf("expected raw debug key, got %q", buf.String())
	}
}

func TestConsoleHidesDebugOnlyKeysAtInfo(t *testing.T) {
	logger, buf := newTestConsole(slog.LevelInfo)
	logger.Info("config loaded", String("config_path", "/tmp/x.toml"))

	if strings.Contains(buf.String(), "/tmp/x.toml") {
		t.Fatalf("expected config_path hidden at info, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "+ 1 more field hidden") {
		t.Fatalf("expected hidden marker, got %q", buf.String())
	}
}

func TestConsoleInfoFieldsPrintTextUnquoted(t *testing.T) {
	logger, buf := newTestConsole(slog.LevelInfo)

	WarnWithContext(logger, "period dataset not supplied", "period_missing",
		String(FieldErrorHint, "supply the period file"),
	)

	out := buf.String()
	if !strings.Contains(out, "    - Hint: supply the period file\n") {
		t.Fatalf("expected unquoted hint, got %q", out)
	}
	if strings.Contains(out, `"`) {
		t.Fatalf("info fields must not be quoted, got %q", out)
	}
}

func TestConsoleDebugQuotesAmbiguousText(t *testing.T) {
	logger, buf := newTestConsole(slog.LevelDebug)
	logger.Debug("dataset loaded", String("note", "two words"), Int("rows", 3))

	out := buf.String()
	if !strings.Contains(out, `    note: "two words"`) {
		t.Fatalf("expected quoted debug value, got %q", out)
	}
	if !strings.Contains(out, "    rows: 3") {
		t.Fatalf("expected bare number, got %q", out)
	}
}

func TestValueFormatting(t *testing.T) {
	tests := []struct {
		value       slog.Value
		plain, raw string
	}{
		{slog.StringValue("check the input workbooks"), "check the input workbooks", `"check the input workbooks"`},
		{slog.StringValue("March"), "March", "March"},
		{slog.StringValue(""), "", `""`},
		{slog.IntValue(42), "42", "42"},
		{slog.AnyValue([]string{"A1", "B2"}), "A1, B2", `"A1, B2"`},
	}
	for _, tt := range tests {
		if got := plainValue(tt.value); got != tt.plain {
			t.Fatalf("plainValue(%v) = %q, want %q", tt.value, got, tt.plain)
		}
		if got := formatValue(tt.value); got != tt.raw {
			t.Fatalf("formatValue(%v) = %q, want %q", tt.value, got, tt.raw)
		}
	}
}
