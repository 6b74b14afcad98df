// Package desktop bridges to the user's graphical session: the file manager
// and the system clipboard.
package desktop

import (
	"os"

	"github.com/atotto/clipboard"
	"github.com/hightemp/process-manager/monitor/domain"
	"github.com/pkg/errors"
	"github.com/skratchdot/open-golang/open"
)

// Opener opens paths with the platform's default handler (xdg-open, open,
// or explorer).
type Opener struct {
	start func(path string) error
}

func NewOpener() domain.Opener {
	return &Opener{start: open.Start}
}

func (o *Opener) Open(path string) error {
	if _, err := os.Stat(path); err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	if err := o.start(path); err != nil {
		return errors.Wrapf(err, "launch file manager for %s", path)
	}
	return nil
}

type Clipboard struct {
	write func(text string) error
}

func NewClipboard() domain.Clipboard {
	return &Clipboard{write: clipboard.WriteAll}
}

func (c *Clipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return domain.ErrUnsupported("clipboard")
	}
	return errors.Wrap(c.write(text), "write clipboard")
}
