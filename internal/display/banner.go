package display

import (
	"fmt"
	"os"

	"github.com/backmassage/scribemaster/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Magenta != "" {
		fmt.Fprint(os.Stderr, term.Magenta)
	}
	fmt.Fprint(os.Stderr, ` ____            _ _           __  __           _
/ ___|  ___ _ __(_) |__   ___ |  \/  | __ _ ___| |_ ___ _ __
\___ \ / __| '__| | '_ \ / _ \| |\/| |/ _`+"`"+` / __| __/ _ \ '__|
 ___) | (__| |  | | |_) |  __/| |  | | (_| \__ \ ||  __/ |
|____/ \___|_|  |_|_.__/ \___|_|  |_|\__,_|___/\__\___|_|
`)
	if term.Magenta != "" {
		fmt.Fprintln(os.Stderr, term.NC)
	}
}
