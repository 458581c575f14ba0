package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type staticChecker bool

func (s staticChecker) IsVerbose() bool { return bool(s) }

func TestLogger_VerboseGating(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		log     func(*Logger)
		want    string
	}{
		{"debug hidden", false, func(l *Logger) { l.Debug("hidden") }, ""},
		{"info hidden", false, func(l *Logger) { l.Info("hidden") }, ""},
		{"warn shown", false, func(l *Logger) { l.Warn("careful %d", 1) }, "WARN [cli] careful 1"},
		{"error shown", false, func(l *Logger) { l.Error("boom") }, "ERROR [cli] boom"},
		{"debug verbose", true, func(l *Logger) { l.Debug("trace") }, "DEBUG [cli] trace"},
		{"info verbose", true, func(l *Logger) { l.Info("note") }, "INFO [cli] note"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewWithWriter("cli", staticChecker(tt.verbose), &buf)
			tt.log(l)

			got := buf.String()
			if tt.want == "" {
				if got != "" {
					t.Errorf("expected no output, got %q", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("expected %q in %q", tt.want, got)
			}
		})
	}
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("service", staticChecker(true), &buf)

	l.InfoWithFields("done", []Field{Count(4), Status(200), Mode("automatic"), Error(errors.New("x"))})

	got := buf.String()
	want := "[count=4 status=200 mode=automatic error=x]"
	if !strings.Contains(got, want) {
		t.Errorf("expected %q in %q", want, got)
	}
}

func TestLogger_ComponentSharesOutput(t *testing.T) {
	var first, second bytes.Buffer
	parent := NewWithWriter("cli", staticChecker(true), &first)
	child := parent.WithComponent("history")

	child.Warn("one")
	parent.SetOutput(&second)
	child.Warn("two")

	if !strings.Contains(first.String(), "[history] one") {
		t.Errorf("first writer missing line: %q", first.String())
	}
	if !strings.Contains(second.String(), "[history] two") {
		t.Errorf("redirect not shared with child: %q", second.String())
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing")
	l.WithComponent("x").Warn("nothing")
}
