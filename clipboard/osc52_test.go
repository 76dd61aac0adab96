package clipboard

import (
	"bytes"
	"encoding/base64"
	"testing"
)

func TestWriteOSC52(t *testing.T) {
	var buf bytes.Buffer
	if err := writeOSC52(&buf, "2024M01\t144000"); err != nil {
		t.Fatalf("writeOSC52: %v", err)
	}
	want := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte("2024M01\t144000")) + "\x07"
	if buf.String() != want {
		t.Fatalf("got %q want %q", buf.String(), want)
	}
}

func TestOSC52UnsupportedOnDumbTerminal(t *testing.T) {
	t.Setenv("TERM", "dumb")
	if osc52Supported() {
		t.Fatal("TERM=dumb must disable OSC52")
	}
	if err := copyOSC52("x"); err == nil {
		t.Fatal("expected error")
	}
}
