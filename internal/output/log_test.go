package output

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSetupLoggingLevels(t *testing.T) {
	var buf bytes.Buffer

	SetupLoggingTo(&buf, false)
	Debug("hidden", "k", "v")
	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("debug message logged at info level: %q", buf.String())
	}

	buf.Reset()
	SetupLoggingTo(&buf, true)
	Debug("shown", "k", "v")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("debug message missing at debug level: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "k=v") {
		t.Errorf("key/value pair missing: %q", buf.String())
	}
}

func TestRunWithSpinnerWithoutTTY(t *testing.T) {
	interactive = func() bool { return false }
	t.Cleanup(func() { interactive = IsTTY })

	want := errors.New("boom")
	err := RunWithSpinner(context.Background(), "working", func(context.Context) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Errorf("RunWithSpinner() error = %v, want %v", err, want)
	}
}
