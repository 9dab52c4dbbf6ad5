// Package vm is the executor glue: it translates a parsed statement into
// cursor operations, and turns a REPL line into a parsed statement in
// the first place. Neither half of that job touches the pager or the
// node codec directly — it only ever calls through internal/btree.
package vm

import (
	"io"
	"strconv"
	"strings"

	"github.com/tinybase/tinybase/internal/btree"
	"github.com/tinybase/tinybase/internal/format"
	"github.com/tinybase/tinybase/internal/row"
)

// StatementType distinguishes the two hardcoded statements this system
// understands. There is no general SQL grammar (see Non-goals).
type StatementType int

const (
	StatementInsert StatementType = iota
	StatementSelect
)

// Statement is the parsed form of one REPL line.
type Statement struct {
	Type        StatementType
	RowToInsert row.Row
}

// PrepareResult is the outcome of parsing a line into a Statement.
type PrepareResult int

const (
	PrepareSuccess PrepareResult = iota
	PrepareUnrecognizedStatement
	PrepareSyntaxError
	PrepareStringTooLong
	PrepareNegativeID
)

// PrepareStatement parses line into stmt. Only "insert" and "select" are
// recognized; anything else is PrepareUnrecognizedStatement.
func PrepareStatement(line string, stmt *Statement) PrepareResult {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return PrepareUnrecognizedStatement
	}

	switch fields[0] {
	case "insert":
		return prepareInsert(fields, stmt)
	case "select":
		stmt.Type = StatementSelect
		return PrepareSuccess
	default:
		return PrepareUnrecognizedStatement
	}
}

func prepareInsert(fields []string, stmt *Statement) PrepareResult {
	stmt.Type = StatementInsert

	if len(fields) != 4 {
		return PrepareSyntaxError
	}

	id, err := strconv.Atoi(fields[1])
	if err != nil {
		return PrepareSyntaxError
	}
	if id < 0 {
		return PrepareNegativeID
	}

	username, email := fields[2], fields[3]
	if len(username) > format.UsernameCap || len(email) > format.EmailCap {
		return PrepareStringTooLong
	}

	stmt.RowToInsert = row.Row{ID: uint32(id), Username: username, Email: email}
	return PrepareSuccess
}

// ExecuteResult is the outcome of running a parsed Statement against a
// table.
type ExecuteResult int

const (
	ExecuteSuccess ExecuteResult = iota
	ExecuteTableFull
	ExecuteDuplicateKey
)

// ExecuteStatement dispatches stmt to ExecuteInsert or ExecuteSelect.
// Select output is written to out in the REPL's documented
// "(id, username, email)" form, one row per line.
func ExecuteStatement(stmt *Statement, table *btree.Table, out io.Writer) (ExecuteResult, error) {
	switch stmt.Type {
	case StatementInsert:
		return ExecuteInsert(stmt, table)
	case StatementSelect:
		return ExecuteSelect(table, out)
	}
	return ExecuteSuccess, nil
}

// ExecuteInsert inserts stmt.RowToInsert keyed by its id. It rejects the
// insert with ExecuteTableFull before even searching the tree if the
// root leaf is already at capacity, and with ExecuteDuplicateKey if the
// key already exists — both are ordinary return values, never a fatal
// error.
func ExecuteInsert(stmt *Statement, table *btree.Table) (ExecuteResult, error) {
	numCells, err := btree.NumCells(table)
	if err != nil {
		return 0, err
	}
	if numCells >= format.LeafNodeMaxCells {
		return ExecuteTableFull, nil
	}

	keyToInsert := stmt.RowToInsert.ID
	cursor, err := btree.Find(table, keyToInsert)
	if err != nil {
		return 0, err
	}

	if cursor.CellNum() < numCells {
		keyAtCell, err := cursor.Key()
		if err != nil {
			return 0, err
		}
		if keyAtCell == keyToInsert {
			return ExecuteDuplicateKey, nil
		}
	}

	if err := btree.LeafInsert(cursor, keyToInsert, stmt.RowToInsert); err != nil {
		return 0, err
	}
	return ExecuteSuccess, nil
}

// ExecuteSelect walks the whole table in key order, writing each row to
// out.
func ExecuteSelect(table *btree.Table, out io.Writer) (ExecuteResult, error) {
	cursor, err := btree.Start(table)
	if err != nil {
		return 0, err
	}

	for !cursor.EndOfTable {
		r, err := cursor.Row()
		if err != nil {
			return 0, err
		}
		if _, err := io.WriteString(out, r.String()+"\n"); err != nil {
			return 0, err
		}
		if err := cursor.Advance(); err != nil {
			return 0, err
		}
	}
	return ExecuteSuccess, nil
}
