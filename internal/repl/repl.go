// Package repl drives the interactive line-oriented shell: the prompt,
// meta-commands, and statement dispatch described in SPEC_FULL.md §6.
// Its stdout output is a strict contract — every string below is printed
// verbatim, with no trailing punctuation beyond what is shown here — so
// this package never routes output through the structured logger in
// internal/applog.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"go.uber.org/zap"

	"github.com/tinybase/tinybase/internal/btree"
	"github.com/tinybase/tinybase/internal/format"
	"github.com/tinybase/tinybase/internal/pager"
	"github.com/tinybase/tinybase/internal/vm"
)

const prompt = "db > "

// Run opens the database file at path and drives the REPL until .exit,
// EOF (Ctrl-D), interrupt (Ctrl-C), or a fatal error. REPL output goes to
// out; log receives diagnostics that are never part of that output. A
// nil return means the database was closed cleanly (exit status 0 at the
// cmd/ boundary); a non-nil return is either a *dberrors.Fatal from the
// storage core or an error from the line editor itself, returned as-is,
// and must be surfaced without an additional flush, per the resource
// model in SPEC_FULL.md §5.
func Run(path string, out io.Writer, log *zap.Logger) error {
	p, err := pager.Open(path, log)
	if err != nil {
		return err
	}
	table, err := btree.Open(p)
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{Prompt: prompt})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return table.Pager.Close()
		}
		if err != nil {
			return err
		}

		if strings.HasPrefix(line, ".") {
			if err := doMetaCommand(line, table, out); err != nil {
				if err == errExit {
					return nil
				}
				return err
			}
			continue
		}

		if err := doStatement(line, table, out); err != nil {
			return err
		}
	}
}

// errExit is an internal sentinel: doMetaCommand returns it for ".exit"
// after a clean Close, and Run treats it as "stop the loop, no error".
var errExit = fmt.Errorf("exit requested")

func doMetaCommand(line string, table *btree.Table, out io.Writer) error {
	switch line {
	case ".exit":
		if err := table.Pager.Close(); err != nil {
			return err
		}
		return errExit
	case ".constants":
		printConstants(out)
		return nil
	case ".btree":
		return printBTree(out, table)
	default:
		fmt.Fprintf(out, "Unrecognized command [%s]\n", line)
		return nil
	}
}

func doStatement(line string, table *btree.Table, out io.Writer) error {
	var stmt vm.Statement
	switch vm.PrepareStatement(line, &stmt) {
	case vm.PrepareSuccess:
		// fall through to execution below
	case vm.PrepareSyntaxError:
		fmt.Fprintln(out, "Syntax error. Could not parse statement")
		return nil
	case vm.PrepareStringTooLong:
		fmt.Fprintln(out, "String is too long")
		return nil
	case vm.PrepareNegativeID:
		fmt.Fprintln(out, "Id must be positive")
		return nil
	case vm.PrepareUnrecognizedStatement:
		fmt.Fprintf(out, "Unrecognized keyword at start of [%s]\n", line)
		return nil
	}

	result, err := vm.ExecuteStatement(&stmt, table, out)
	if err != nil {
		return err
	}
	switch result {
	case vm.ExecuteSuccess:
		fmt.Fprintln(out, "Executed")
	case vm.ExecuteDuplicateKey:
		fmt.Fprintln(out, "Error: Duplicate key")
	case vm.ExecuteTableFull:
		fmt.Fprintln(out, "Error: Table full")
	}
	return nil
}

func printConstants(out io.Writer) {
	fmt.Fprintln(out, "Constants:")
	fmt.Fprintf(out, "ROW_SIZE: %d\n", format.RowSize)
	fmt.Fprintf(out, "COMMON_NODE_HEADER_SIZE: %d\n", format.CommonNodeHeaderSize)
	fmt.Fprintf(out, "LEAF_NODE_HEADER_SIZE: %d\n", format.LeafNodeHeaderSize)
	fmt.Fprintf(out, "LEAF_NODE_CELL_SIZE: %d\n", format.LeafNodeCellSize)
	fmt.Fprintf(out, "LEAF_NODE_SPACE_FOR_CELLS: %d\n", format.LeafNodeSpaceForCells)
	fmt.Fprintf(out, "LEAF_NODE_MAX_CELLS: %d\n", format.LeafNodeMaxCells)
}

func printBTree(out io.Writer, table *btree.Table) error {
	numCells, err := btree.NumCells(table)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "leaf (size %d)\n", numCells)
	for i := uint32(0); i < numCells; i++ {
		key, err := btree.KeyAt(table, i)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  - %d : %d\n", i, key)
	}
	return nil
}
