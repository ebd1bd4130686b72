package term

import (
	"os"
	"slices"

	"github.com/jarvisfriends/replxx/pkg/sys"
)

// IsATTY returns whether the file refers to a terminal.
func IsATTY(f *os.File) bool {
	return sys.IsATTY(f.Fd())
}

// unsupportedTerms lists values of $TERM for which escape sequences cannot be
// relied on.
var unsupportedTerms = []string{"dumb", "cons25", "emacs"}

// IsUnsupportedTerm reports whether the terminal named by $TERM lacks the
// escape sequences needed for line editing.
func IsUnsupportedTerm() bool {
	return slices.Contains(unsupportedTerms, os.Getenv("TERM"))
}
