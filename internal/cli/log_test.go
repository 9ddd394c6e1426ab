package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("Loaded 4 senses")

	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(buf.String()) {
		t.Errorf("log line %q does not start with an HH:MM:SS.ms timestamp", buf.String())
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("Round 1: 3 nodes, 2 edges") }, true},
		{"expansion debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("expanded", "sense", "01213223-n") }, false},
		{"expansion debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("expanded", "sense", "01213223-n") }, true},
		{"retry warning at info level", log.InfoLevel, func(l *log.Logger) { l.Warn("connection failed, retrying") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.start = time.Now().Add(-1500 * time.Millisecond)

	prog.done("Imported 4 senses into redis")

	got := buf.String()
	if !regexp.MustCompile(`Imported 4 senses into redis \(1\.5\d*s\)`).MatchString(got) {
		t.Errorf("progress line = %q, want message with elapsed time", got)
	}
}

func TestExportLogsProgress(t *testing.T) {
	captureOut(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var logs bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetArgs([]string{"export", "hire", "--db", hireDB, "--depth", "1", "-o", filepath.Join(t.TempDir(), "hire.json")})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("export error: %v", err)
	}

	got := logs.String()
	for _, want := range []string{"Round 1: 3 nodes, ", "Explored 3 nodes, "} {
		if !strings.Contains(got, want) {
			t.Errorf("log output missing %q:\n%s", want, got)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)

	if got := loggerFromContext(withLogger(context.Background(), custom)); got != custom {
		t.Error("loggerFromContext should return the attached logger")
	}
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("loggerFromContext should fall back to log.Default()")
	}
}
