// Package buildinfo contains build information.
//
// Build information should be set during compilation by passing
// -ldflags "-X github.com/jarvisfriends/replxx/pkg/buildinfo.Var=value" to
// "go build".
package buildinfo

import (
	"fmt"
	"os"
	"runtime"

	"github.com/jarvisfriends/replxx/pkg/prog"
)

// Version identifies the version of replxx. On development commits, it
// identifies the next release.
const Version = "v0.1.0"

// VersionSuffix is appended to Version in the output of "replxx -version" to
// build the full version string.
var VersionSuffix = "-dev.unknown"

// Program is the buildinfo subprogram. It runs when -version is given.
type Program struct{}

// Run implements prog.Program.
func (Program) Run(fds [3]*os.File, f *prog.Flags, _ []string) error {
	if !f.Version {
		return prog.ErrNotSuitable
	}
	fmt.Fprintln(fds[1], "Version:", Version+VersionSuffix)
	fmt.Fprintln(fds[1], "Go version:", runtime.Version())
	return nil
}
