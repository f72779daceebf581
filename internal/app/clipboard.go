package app

import (
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// systemClipboard implements gallery.Clipboard. It prefers the native
// clipboard and falls back to an OSC 52 escape sequence, which most
// terminals honour even over SSH where no native clipboard exists.
type systemClipboard struct {
	out io.Writer
	// native is clipboard.WriteAll, swapped out in tests.
	native func(string) error
	// unsupported mirrors clipboard.Unsupported at construction time.
	unsupported bool
}

func newSystemClipboard(out io.Writer) *systemClipboard {
	return &systemClipboard{
		out:         out,
		native:      clipboard.WriteAll,
		unsupported: clipboard.Unsupported,
	}
}

func (c *systemClipboard) WriteAll(text string) error {
	var nativeErr error
	if !c.unsupported {
		if nativeErr = c.native(text); nativeErr == nil {
			return nil
		}
		appLog.Debug("native clipboard failed, using osc52", "error", nativeErr)
	}
	if c.out == nil {
		return errors.Join(nativeErr, errors.New("no terminal for osc52 clipboard"))
	}
	if _, err := fmt.Fprint(c.out, osc52.New(text)); err != nil {
		return errors.Join(nativeErr, err)
	}
	return nil
}
