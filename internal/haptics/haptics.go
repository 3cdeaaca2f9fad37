// Package haptics abstracts the fire-and-forget feedback pulse emitted when
// the home city changes.
package haptics

import (
	"fmt"
	"io"
)

type Driver interface {
	Pulse()
}

type Noop struct{}

func NewNoop() Driver { return Noop{} }

func (Noop) Pulse() {}

// Console rings the terminal bell, the closest a CLI gets to a haptic tap.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) Driver { return Console{w: w} }

func (c Console) Pulse() {
	fmt.Fprint(c.w, "\a")
}
