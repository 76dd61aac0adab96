package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupLoggingWritesLeveledLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := SetupLogging(path)
	if err != nil {
		t.Fatalf("SetupLogging: %v", err)
	}
	if !IsDebugMode() {
		t.Fatalf("expected debug mode with a log file")
	}
	Debugf("window=%d", 24)
	Warnf("no data for %s", "0581")
	cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "DEBUG window=24") || !strings.Contains(out, "WARN no data for 0581") {
		t.Fatalf("unexpected log contents:\n%s", out)
	}
}

func TestSetupLoggingDisabled(t *testing.T) {
	cleanup, err := SetupLogging("")
	if err != nil {
		t.Fatalf("SetupLogging: %v", err)
	}
	defer cleanup()
	if IsDebugMode() {
		t.Fatalf("debug mode should be off without a file")
	}
	Debugf("dropped %d", 1)
}
