// Replxx is an interactive line reader demonstrating the line editor. It
// answers every line, and understands a few dot commands; type .help to list
// them.
package main

import (
	"os"

	"github.com/jarvisfriends/replxx/pkg/buildinfo"
	"github.com/jarvisfriends/replxx/pkg/prog"
	"github.com/jarvisfriends/replxx/pkg/repl"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(buildinfo.Program{}, repl.Program{})))
}
