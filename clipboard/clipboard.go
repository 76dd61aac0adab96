package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"

	"github.com/andareed/siftly-popchart/logging"
)

// Copy puts text on the system clipboard. When no native clipboard tool is
// available (ssh sessions, bare Wayland without wl-copy) it falls back to an
// OSC52 escape sequence written to the terminal.
func Copy(text string) error {
	if !clipboard.Unsupported {
		err := clipboard.WriteAll(text)
		if err == nil {
			logging.Infof("Clipboard: copied %d bytes via system clipboard", len(text))
			return nil
		}
		logging.Warnf("Clipboard: system clipboard failed: %v", err)
	}
	if err := copyOSC52(text); err != nil {
		return errors.Join(errors.New("no clipboard available"), err)
	}
	return nil
}
