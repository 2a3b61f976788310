package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/user/textplate/pkg/ports"
)

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		level   ports.LogLevel
		wantOut []string
		wantErr []string
	}{
		{ports.LevelDebug, []string{"debug 1", "info 2"}, []string{"warn 3", "error 4"}},
		{ports.LevelInfo, []string{"info 2"}, []string{"warn 3", "error 4"}},
		{ports.LevelWarn, nil, []string{"warn 3", "error 4"}},
		{ports.LevelQuiet, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var out, errOut bytes.Buffer
			l := NewConsoleWriter(tt.level, &out, &errOut)

			l.Debug("debug %d", 1)
			l.Info("info %d", 2)
			l.Warn("warn %d", 3)
			l.Error("error %d", 4)

			assertLines(t, "stdout", out.String(), tt.wantOut)
			assertLines(t, "stderr", errOut.String(), tt.wantErr)
		})
	}
}

func TestConsoleLogger_WithComponent(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewConsoleWriter(ports.LevelInfo, &out, &errOut).WithComponent("fit")

	l.Info("component message %d", 42)

	if got := strings.TrimSpace(out.String()); got != "[fit] component message 42" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestNoopLogger(t *testing.T) {
	var l ports.Logger = NewNoop()
	l = l.WithComponent("x")
	l.Error("nothing %d", 1)
}

func assertLines(t *testing.T, stream, got string, want []string) {
	t.Helper()
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(got), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) != len(want) {
		t.Fatalf("%s: expected %v, got %v", stream, want, lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("%s line %d: expected %q, got %q", stream, i, want[i], lines[i])
		}
	}
}
