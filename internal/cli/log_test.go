package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level   log.Level
		debug   bool
		wantOut bool
	}{
		{log.InfoLevel, false, true},
		{log.InfoLevel, true, false},
		{log.DebugLevel, true, true},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		logger := newLogger(&buf, tt.level)
		if tt.debug {
			logger.Debug("record")
		} else {
			logger.Info("record")
		}
		if got := strings.Contains(buf.String(), "record"); got != tt.wantOut {
			t.Errorf("level %s, debug=%v: output = %v, want %v", tt.level, tt.debug, got, tt.wantOut)
		}
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Fatal("a bare context should yield the default logger")
	}

	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), logger)
	if loggerFromContext(ctx) != logger {
		t.Error("loggerFromContext should return the attached logger")
	}
}

func TestStepDone(t *testing.T) {
	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, log.InfoLevel))

	s := startStep(ctx, "export")
	time.Sleep(5 * time.Millisecond)
	s.done("format", "mtx")

	out := buf.String()
	for _, want := range []string{"export", "took=", "format=mtx"} {
		if !strings.Contains(out, want) {
			t.Errorf("step output %q missing %q", out, want)
		}
	}
	if s.elapsed() < 5*time.Millisecond {
		t.Errorf("elapsed() = %v, want at least 5ms", s.elapsed())
	}
}

func TestCLISetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatal("debug output at info level")
	}

	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Error("debug output missing after SetLogLevel(LogDebug)")
	}
}

func TestVerboseShowsCacheEvents(t *testing.T) {
	testEnv(t)
	input := writeEdges(t)

	var logs bytes.Buffer
	c := New(&logs, LogDebug)
	root := c.RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&logs)
	root.SetArgs([]string{"stats", input, "--top", "0"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(logs.String(), "cache miss") {
		t.Errorf("debug log missing cache events:\n%s", logs.String())
	}
}
