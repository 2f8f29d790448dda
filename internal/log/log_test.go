package log_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/ghettovoice/iri/internal/log"
)

func TestNoop(t *testing.T) {
	t.Parallel()

	if log.Noop.Enabled(context.Background(), slog.LevelError) {
		t.Error("noop logger enabled for error level")
	}
	log.Noop.Error("discarded")
}

func TestPresets(t *testing.T) {
	t.Parallel()

	if log.Def == nil || log.Dev == nil {
		t.Fatal("preset loggers are nil")
	}
	if !log.Def.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("default logger disabled for debug level")
	}
}

func TestCalcValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))

	calls := 0
	v := log.CalcValue(func() any {
		calls++
		return "computed"
	})
	if calls != 0 {
		t.Fatalf("value computed eagerly, calls = %v", calls)
	}
	l.Info("m", slog.Any("v", v))
	if calls != 1 {
		t.Errorf("calls = %v, want 1", calls)
	}
	if !strings.Contains(buf.String(), "v=computed") {
		t.Errorf("log output %q misses %q", buf.String(), "v=computed")
	}
}

func TestStringValue(t *testing.T) {
	t.Parallel()

	if got := log.StringValue([]byte("abc")).LogValue(); got.String() != "abc" {
		t.Errorf("log.StringValue = %q, want %q", got.String(), "abc")
	}
	if got := log.StringValue("abc").LogValue(); got.Kind() != slog.KindString {
		t.Errorf("log.StringValue kind = %v, want %v", got.Kind(), slog.KindString)
	}
}
