// Package repl is the interactive subprogram of replxx. It reads lines with
// the line editor and answers them, and understands a few dot commands.
package repl

import (
	"fmt"
	"os"

	"github.com/jarvisfriends/replxx/pkg/cli"
	"github.com/jarvisfriends/replxx/pkg/logutil"
	"github.com/jarvisfriends/replxx/pkg/prog"
	"github.com/jarvisfriends/replxx/pkg/store"
)

var logger = logutil.GetLogger("[repl] ")

// Program is the interactive subprogram. It always runs.
type Program struct{}

// Run implements prog.Program.
func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if len(args) > 0 {
		return prog.BadUsage("replxx takes no arguments")
	}

	cfg := cli.DefaultConfig()
	if f.Config != "" {
		var err error
		cfg, err = cli.LoadConfig(f.Config)
		if err != nil {
			return err
		}
	}
	if f.NoColor {
		cfg.NoColor = true
	}

	icfg := &InteractConfig{Prompt: f.Prompt, Config: cfg, HistoryFile: f.History}
	if f.DB != "" {
		st, err := store.NewStore(f.DB)
		if err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
			fmt.Fprintln(fds[2], "History will not be kept in the database.")
		} else {
			defer func() {
				if err := st.Close(); err != nil {
					logger.Println("closing database:", err)
				}
			}()
			icfg.DB = st
		}
	}
	return Interact(fds, icfg)
}
