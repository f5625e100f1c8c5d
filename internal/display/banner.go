package display

import (
	"fmt"
	"io"

	"github.com/backmassage/spinefit/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, term.Magenta)
	fmt.Fprint(w, `           _            __ _ _
 ___ _ __ (_)_ __   ___ / _(_) |_
/ __| '_ \| | '_ \ / _ \ |_| | __|
\__ \ |_) | | | | |  __/  _| | |_
|___/ .__/|_|_| |_|\___|_| |_|\__|
    |_|
`)
	fmt.Fprintln(w, term.NC)
}
