// Command tinybase is the CLI entrypoint: it validates the single
// required argument, wires the structured logger, and hands off to the
// REPL. Every fatal condition the core surfaces as a typed error is
// collapsed to a printed diagnostic and a nonzero exit status here, and
// only here — see internal/dberrors and SPEC_FULL.md §7.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tinybase/tinybase/internal/applog"
	"github.com/tinybase/tinybase/internal/dberrors"
	"github.com/tinybase/tinybase/internal/repl"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Must supply a database filename")
		os.Exit(1)
	}

	log := applog.New()
	defer log.Sync()

	if err := repl.Run(os.Args[1], os.Stdout, log); err != nil {
		var fatal *dberrors.Fatal
		if errors.As(err, &fatal) {
			fmt.Println(fatal.Diag)
		} else {
			fmt.Println(err.Error())
		}
		os.Exit(1)
	}
}
